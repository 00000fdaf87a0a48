package services

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"gymcore-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	ReasonInviteInvalid      = "invalid code"
	ReasonInviteUsed         = "already used"
	ReasonInviteExpired      = "expired"
	ReasonInviteRoleMismatch = "role mismatch"
)

func generateInviteCode() string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("PROF-%d-%s", time.Now().UTC().Year(), strings.ToUpper(hex.EncodeToString(buf)))
}

func CreateInviteCode(db *sqlx.DB, role models.Role, createdBy string, expiresInDays *int) (models.InviteCode, error) {
	if role != models.RoleAdmin && role != models.RoleProfessor {
		return models.InviteCode{}, ErrBadRequest("Invite codes only target ADMIN or PROFESSOR")
	}
	var expiresAt *time.Time
	if expiresInDays != nil && *expiresInDays > 0 {
		exp := time.Now().UTC().AddDate(0, 0, *expiresInDays)
		expiresAt = &exp
	}
	invite := models.InviteCode{
		ID:        uuid.NewString(),
		Code:      generateInviteCode(),
		Role:      role,
		ExpiresAt: expiresAt,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
	_, err := db.Exec(`
INSERT INTO invite_codes (id, code, role, expires_at, created_by, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, invite.ID, invite.Code, invite.Role, invite.ExpiresAt, invite.CreatedBy, invite.CreatedAt)
	if err != nil {
		return models.InviteCode{}, err
	}
	return invite, nil
}

func ListInviteCodes(db *sqlx.DB) ([]models.InviteCode, error) {
	codes := []models.InviteCode{}
	err := db.Select(&codes, `
SELECT id, code, role, used_by, used_at, expires_at, created_by, created_at
FROM invite_codes ORDER BY created_at DESC
`)
	return codes, err
}

// ValidateInviteCode runs the gate checks in order, short-circuiting on the
// first failure: existence, unused, unexpired, role match. It reads only; the
// registration transaction consumes the code afterwards.
func ValidateInviteCode(db *sqlx.DB, code string, expectedRole models.Role) error {
	var invite models.InviteCode
	err := db.Get(&invite, `
SELECT id, code, role, used_by, used_at, expires_at, created_by, created_at
FROM invite_codes WHERE code = $1
`, code)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBadRequest(ReasonInviteInvalid)
	}
	if err != nil {
		return err
	}
	if invite.UsedBy != nil {
		return ErrBadRequest(ReasonInviteUsed)
	}
	if invite.ExpiresAt != nil && invite.ExpiresAt.Before(time.Now().UTC()) {
		return ErrBadRequest(ReasonInviteExpired)
	}
	if invite.Role != expectedRole {
		return ErrBadRequest(ReasonInviteRoleMismatch)
	}
	return nil
}

// consumeInviteCode marks a code used inside the registration transaction.
// The conditional predicate, not the earlier validation read, is what makes
// single use hold under concurrent registrations.
func consumeInviteCode(tx *sqlx.Tx, code, userID string) error {
	res, err := tx.Exec(`
UPDATE invite_codes SET used_by = $2, used_at = $3
WHERE code = $1 AND used_by IS NULL
`, code, userID, time.Now().UTC())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrConflict(ReasonInviteUsed)
	}
	return nil
}
