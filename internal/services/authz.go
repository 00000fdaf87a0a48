package services

import (
	"database/sql"
	"errors"

	"gymcore-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

// Identity is the authenticated caller as established by the token layer.
type Identity struct {
	UserID string
	Email  string
	Role   models.Role
}

// Caller is an Identity plus the scoping id the policy needs. ProfessorID is
// set only for professor-role callers.
type Caller struct {
	Identity
	ProfessorID string
}

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type ResourceKind string

const (
	KindStudent ResourceKind = "student"
	KindHistory ResourceKind = "history"
	KindFile    ResourceKind = "file"
	KindPhoto   ResourceKind = "photo"
)

// Resource is the ownership view of a target entity: the user id of the
// student it belongs to and the professor that owns the student. Both are
// stored on the entity (or one hop away on its student); no deeper traversal.
type Resource struct {
	Kind          ResourceKind
	StudentUserID string
	ProfessorID   string
}

// Stable deny reasons. Reported as 403 and never conflated with 404: handlers
// resolve the target first and 404 on absence before consulting the policy.
const (
	ReasonNotYourStudent  = "not your student"
	ReasonNotYourResource = "not your resource"
	ReasonNotOwnRecord    = "not your own record"
	ReasonStudentsOnly    = "only students may manage progress photos"
	ReasonStaffOnly       = "only professors or admins may manage files"
)

// ResolveCaller turns an Identity into a Caller. For professor-role users the
// owning professor record must exist; its absence is an inconsistent-identity
// fault, not a deny.
func ResolveCaller(db *sqlx.DB, id Identity) (Caller, error) {
	caller := Caller{Identity: id}
	if id.Role != models.RoleProfessor {
		return caller, nil
	}
	var professorID string
	err := db.Get(&professorID, `SELECT id FROM professors WHERE user_id = $1`, id.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return Caller{}, ErrConfigFault("professor profile not found for user " + id.UserID)
	}
	if err != nil {
		return Caller{}, err
	}
	caller.ProfessorID = professorID
	return caller, nil
}

// Authorize is the single permission decision for every student-scoped entity.
// It is pure: all the facts it needs arrive in caller and res. Returns nil for
// allow, a 403 ServiceError carrying the deny reason otherwise.
func Authorize(caller Caller, action Action, res Resource) error {
	switch caller.Role {
	case models.RoleAdmin:
		return nil

	case models.RoleProfessor:
		// Photos are student-authored; professors only read them.
		if res.Kind == KindPhoto && action != ActionRead {
			return ErrForbidden(ReasonStudentsOnly)
		}
		if res.ProfessorID != caller.ProfessorID {
			if res.Kind == KindStudent || res.Kind == KindHistory {
				return ErrForbidden(ReasonNotYourStudent)
			}
			return ErrForbidden(ReasonNotYourResource)
		}
		return nil

	case models.RoleStudent:
		if res.Kind == KindFile && action != ActionRead {
			return ErrForbidden(ReasonStaffOnly)
		}
		if res.Kind == KindStudent && action == ActionDelete {
			return ErrForbidden(ReasonNotOwnRecord)
		}
		if res.StudentUserID != caller.UserID {
			return ErrForbidden(ReasonNotOwnRecord)
		}
		return nil
	}
	return ErrForbidden("unknown role")
}

// StudentResource builds the ownership view for a student row and the entities
// hanging off it.
func StudentResource(kind ResourceKind, st models.Student) Resource {
	return Resource{Kind: kind, StudentUserID: st.UserID, ProfessorID: st.ProfessorID}
}
