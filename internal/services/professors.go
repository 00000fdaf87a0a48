package services

import (
	"database/sql"
	"errors"
	"log"
	"time"

	"gymcore-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func GetProfessor(db *sqlx.DB, id string) (models.Professor, error) {
	var prof models.Professor
	err := db.Get(&prof, `
SELECT id, user_id, phone, specialty, is_default, created_at, updated_at
FROM professors WHERE id = $1
`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Professor{}, ErrNotFound("Professor not found")
	}
	return prof, err
}

func GetProfessorByUserID(db *sqlx.DB, userID string) (models.Professor, error) {
	var prof models.Professor
	err := db.Get(&prof, `
SELECT id, user_id, phone, specialty, is_default, created_at, updated_at
FROM professors WHERE user_id = $1
`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Professor{}, ErrNotFound("Professor not found")
	}
	return prof, err
}

func ListProfessors(db *sqlx.DB) ([]models.Professor, error) {
	profs := []models.Professor{}
	err := db.Select(&profs, `
SELECT id, user_id, phone, specialty, is_default, created_at, updated_at
FROM professors ORDER BY created_at DESC
`)
	return profs, err
}

func defaultProfessorID(db *sqlx.DB) (string, error) {
	var id string
	err := db.Get(&id, `SELECT id FROM professors WHERE is_default`)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrConfigFault("default professor not configured")
	}
	return id, err
}

// AssignProfessor resolves the professor a new student is attached to.
// Resolution order: a professor caller always gets their own id (any supplied
// candidate is ignored); otherwise the candidate is tried as a professor id,
// then as a user id owning a professor; otherwise the default professor.
// Legacy imports carry either kind of id, hence the double lookup.
func AssignProfessor(db *sqlx.DB, candidate string, caller Caller) (string, error) {
	if caller.Role == models.RoleProfessor {
		if caller.ProfessorID == "" {
			return "", ErrConfigFault("professor profile not found for user " + caller.UserID)
		}
		return caller.ProfessorID, nil
	}
	if candidate != "" {
		var id string
		err := db.Get(&id, `SELECT id FROM professors WHERE id = $1`, candidate)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return "", err
		}
		err = db.Get(&id, `SELECT id FROM professors WHERE user_id = $1`, candidate)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return "", err
		}
	}
	return defaultProfessorID(db)
}

type ProfessorInput struct {
	Phone     *string
	Specialty *string
}

func insertProfessor(tx *sqlx.Tx, userID string, input ProfessorInput) (string, error) {
	id := uuid.NewString()
	_, err := tx.Exec(`
INSERT INTO professors (id, user_id, phone, specialty, is_default, created_at, updated_at)
VALUES ($1,$2,$3,$4,FALSE,$5,$5)
`, id, userID, input.Phone, input.Specialty, time.Now().UTC())
	return id, err
}

type CreateProfessorInput struct {
	Name     string
	Email    string
	Password string
	ProfessorInput
}

// CreateProfessor provisions a user and its professor row in one transaction,
// bypassing the invite gate. Admin-only at the boundary.
func CreateProfessor(db *sqlx.DB, tokens TokenService, input CreateProfessorInput) (models.Professor, error) {
	var exists bool
	if err := db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))`, input.Email); err != nil {
		return models.Professor{}, err
	}
	if exists {
		return models.Professor{}, ErrConflict("Email already registered")
	}
	hash, err := tokens.HashPassword(input.Password)
	if err != nil {
		return models.Professor{}, err
	}
	tx, err := db.Beginx()
	if err != nil {
		return models.Professor{}, err
	}
	defer func() { _ = tx.Rollback() }()

	userID, err := insertUser(tx, input.Email, hash, input.Name, models.RoleProfessor)
	if err != nil {
		return models.Professor{}, err
	}
	professorID, err := insertProfessor(tx, userID, input.ProfessorInput)
	if err != nil {
		return models.Professor{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Professor{}, err
	}
	return GetProfessor(db, professorID)
}

func UpdateProfessor(db *sqlx.DB, id string, input ProfessorInput) (models.Professor, error) {
	if _, err := GetProfessor(db, id); err != nil {
		return models.Professor{}, err
	}
	_, err := db.Exec(`
UPDATE professors
SET phone = COALESCE($2, phone), specialty = COALESCE($3, specialty), updated_at = $4
WHERE id = $1
`, id, input.Phone, input.Specialty, time.Now().UTC())
	if err != nil {
		return models.Professor{}, err
	}
	return GetProfessor(db, id)
}

// DeleteProfessor removes a professor and its user. The system default
// professor and professors with linked students are protected.
func DeleteProfessor(db *sqlx.DB, id string) error {
	prof, err := GetProfessor(db, id)
	if err != nil {
		return err
	}
	if prof.IsDefault {
		return ErrBadRequest("The system default professor cannot be deleted")
	}
	var linked int
	if err := db.Get(&linked, `SELECT count(*) FROM students WHERE professor_id = $1`, id); err != nil {
		return err
	}
	if linked > 0 {
		return ErrConflict("Professor has linked students and cannot be deleted")
	}
	// users cascade removes the professor row.
	_, err = db.Exec(`DELETE FROM users WHERE id = $1`, prof.UserID)
	return err
}

// EnsureDefaultProfessor warns at boot when the fallback target is missing so
// the fault surfaces before the first student registration does.
func EnsureDefaultProfessor(db *sqlx.DB) error {
	var exists bool
	if err := db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM professors WHERE is_default)`); err != nil {
		return err
	}
	if !exists {
		log.Printf("WARN no default professor configured; student registration will fail until one is seeded")
	}
	return nil
}
