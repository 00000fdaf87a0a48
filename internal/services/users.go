package services

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"gymcore-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

func GetUser(db *sqlx.DB, id string) (models.User, error) {
	var user models.User
	err := db.Get(&user, `
SELECT id, email, password_hash, name, role, created_at, updated_at
FROM users WHERE id = $1
`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound("User not found")
	}
	return user, err
}

func GetUserByEmail(db *sqlx.DB, email string) (models.User, error) {
	var user models.User
	err := db.Get(&user, `
SELECT id, email, password_hash, name, role, created_at, updated_at
FROM users WHERE lower(email) = $1
`, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound("User not found")
	}
	return user, err
}

// isUniqueViolation reports whether err is the storage-level uniqueness
// constraint firing. The application pre-checks are a UX fast path only; this
// is the authoritative guard under concurrent requests.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func insertUser(tx *sqlx.Tx, email, passwordHash, name string, role models.Role) (string, error) {
	id := uuid.NewString()
	_, err := tx.Exec(`
INSERT INTO users (id, email, password_hash, name, role, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$6)
`, id, strings.ToLower(strings.TrimSpace(email)), passwordHash, name, role, time.Now().UTC())
	if isUniqueViolation(err) {
		return "", ErrConflict("Email already registered")
	}
	return id, err
}

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Role       models.Role
	InviteCode string
	Phone      *string
	Specialty  *string
}

// Register handles self-registration. Students need no invite code and are
// attached to the default professor; professor and admin registration is gated
// by a role-matched invite code consumed atomically with user creation.
func Register(db *sqlx.DB, tokens TokenService, input RegisterInput) (models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	role := input.Role
	if role == "" {
		role = models.RoleStudent
	}

	var exists bool
	if err := db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = $1)`, email); err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, ErrConflict("Email already registered")
	}

	if role != models.RoleStudent {
		if strings.TrimSpace(input.InviteCode) == "" {
			return models.User{}, ErrBadRequest("An invite code is required for this role")
		}
		if err := ValidateInviteCode(db, input.InviteCode, role); err != nil {
			return models.User{}, err
		}
	}

	var studentProfessorID string
	if role == models.RoleStudent {
		id, err := defaultProfessorID(db)
		if err != nil {
			return models.User{}, err
		}
		studentProfessorID = id
	}

	hash, err := tokens.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	tx, err := db.Beginx()
	if err != nil {
		return models.User{}, err
	}
	defer func() { _ = tx.Rollback() }()

	userID, err := insertUser(tx, email, hash, input.Name, role)
	if err != nil {
		return models.User{}, err
	}
	switch role {
	case models.RoleProfessor:
		if _, err := insertProfessor(tx, userID, ProfessorInput{Phone: input.Phone, Specialty: input.Specialty}); err != nil {
			return models.User{}, err
		}
	case models.RoleStudent:
		if _, err := insertStudent(tx, userID, studentProfessorID, StudentInput{Phone: input.Phone}); err != nil {
			return models.User{}, err
		}
	}
	if role != models.RoleStudent {
		if err := consumeInviteCode(tx, input.InviteCode, userID); err != nil {
			return models.User{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return models.User{}, err
	}
	return GetUser(db, userID)
}

func Login(db *sqlx.DB, tokens TokenService, email, password string) (models.User, string, int64, error) {
	user, err := GetUserByEmail(db, email)
	if err != nil {
		return models.User{}, "", 0, ErrUnauthorized("Invalid email or password")
	}
	if !tokens.VerifyPassword(password, user.PasswordHash) {
		return models.User{}, "", 0, ErrUnauthorized("Invalid email or password")
	}
	token, exp, err := tokens.CreateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return models.User{}, "", 0, err
	}
	return user, token, exp, nil
}
