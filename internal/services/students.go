package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"gymcore-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const studentColumns = `
id, user_id, professor_id, phone, height_cm, weight_kg, age, waist_cm, hip_cm,
neck_cm, daily_foods, avoided_foods, food_allergies, joint_pain, supplements,
training_days_per_week, meal_schedule, created_at, updated_at`

func GetStudent(db *sqlx.DB, id string) (models.Student, error) {
	var st models.Student
	err := db.Get(&st, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Student{}, ErrNotFound("Student not found")
	}
	return st, err
}

func GetStudentByUserID(db *sqlx.DB, userID string) (models.Student, error) {
	var st models.Student
	err := db.Get(&st, `SELECT `+studentColumns+` FROM students WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Student{}, ErrNotFound("Student not found")
	}
	return st, err
}

// ListStudents scopes the roster to the caller: admins see everyone, a
// professor sees their own students, a student sees only themself.
func ListStudents(db *sqlx.DB, caller Caller) ([]models.Student, error) {
	students := []models.Student{}
	switch caller.Role {
	case models.RoleAdmin:
		err := db.Select(&students, `SELECT `+studentColumns+` FROM students ORDER BY created_at DESC`)
		return students, err
	case models.RoleProfessor:
		err := db.Select(&students, `
SELECT `+studentColumns+` FROM students WHERE professor_id = $1 ORDER BY created_at DESC
`, caller.ProfessorID)
		return students, err
	default:
		st, err := GetStudentByUserID(db, caller.UserID)
		if err != nil {
			var serr ServiceError
			if errors.As(err, &serr) && serr.Status == 404 {
				return students, nil
			}
			return nil, err
		}
		return append(students, st), nil
	}
}

type StudentInput struct {
	Phone        *string
	HeightCm     *float64
	WeightKg     *float64
	Age          *int
	WaistCm      *float64
	HipCm        *float64
	NeckCm       *float64
	DailyFoods   []string
	AvoidedFoods []string
	Allergies    []string
	JointPain    *string
	Supplements  []string
	TrainingDays *int
	MealSchedule *string
}

func marshalList(items []string) interface{} {
	if items == nil {
		return nil
	}
	raw, _ := json.Marshal(items)
	return raw
}

func insertStudent(tx *sqlx.Tx, userID, professorID string, input StudentInput) (string, error) {
	id := uuid.NewString()
	_, err := tx.Exec(`
INSERT INTO students (
  id, user_id, professor_id, phone, height_cm, weight_kg, age, waist_cm,
  hip_cm, neck_cm, daily_foods, avoided_foods, food_allergies, joint_pain,
  supplements, training_days_per_week, meal_schedule, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$18)
`, id, userID, professorID, input.Phone, input.HeightCm, input.WeightKg, input.Age,
		input.WaistCm, input.HipCm, input.NeckCm, marshalList(input.DailyFoods),
		marshalList(input.AvoidedFoods), marshalList(input.Allergies), input.JointPain,
		marshalList(input.Supplements), input.TrainingDays, input.MealSchedule, time.Now().UTC())
	return id, err
}

type CreateStudentInput struct {
	Name        string
	Email       string
	Password    string
	ProfessorID string
	StudentInput
}

// CreateStudent provisions a user and its student row in one transaction. The
// owning professor comes from the assignment resolver, so every student ends
// up with exactly one professor even when the caller supplies none.
func CreateStudent(db *sqlx.DB, tokens TokenService, caller Caller, input CreateStudentInput) (models.Student, error) {
	var exists bool
	if err := db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))`, input.Email); err != nil {
		return models.Student{}, err
	}
	if exists {
		return models.Student{}, ErrConflict("Email already registered")
	}
	professorID, err := AssignProfessor(db, input.ProfessorID, caller)
	if err != nil {
		return models.Student{}, err
	}
	hash, err := tokens.HashPassword(input.Password)
	if err != nil {
		return models.Student{}, err
	}
	tx, err := db.Beginx()
	if err != nil {
		return models.Student{}, err
	}
	defer func() { _ = tx.Rollback() }()

	userID, err := insertUser(tx, input.Email, hash, input.Name, models.RoleStudent)
	if err != nil {
		return models.Student{}, err
	}
	studentID, err := insertStudent(tx, userID, professorID, input.StudentInput)
	if err != nil {
		return models.Student{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Student{}, err
	}
	return GetStudent(db, studentID)
}

func UpdateStudent(db *sqlx.DB, id string, input StudentInput) (models.Student, error) {
	_, err := db.Exec(`
UPDATE students
SET phone = COALESCE($2, phone),
    height_cm = COALESCE($3, height_cm),
    weight_kg = COALESCE($4, weight_kg),
    age = COALESCE($5, age),
    waist_cm = COALESCE($6, waist_cm),
    hip_cm = COALESCE($7, hip_cm),
    neck_cm = COALESCE($8, neck_cm),
    daily_foods = COALESCE($9, daily_foods),
    avoided_foods = COALESCE($10, avoided_foods),
    food_allergies = COALESCE($11, food_allergies),
    joint_pain = COALESCE($12, joint_pain),
    supplements = COALESCE($13, supplements),
    training_days_per_week = COALESCE($14, training_days_per_week),
    meal_schedule = COALESCE($15, meal_schedule),
    updated_at = $16
WHERE id = $1
`, id, input.Phone, input.HeightCm, input.WeightKg, input.Age, input.WaistCm,
		input.HipCm, input.NeckCm, marshalList(input.DailyFoods), marshalList(input.AvoidedFoods),
		marshalList(input.Allergies), input.JointPain, marshalList(input.Supplements),
		input.TrainingDays, input.MealSchedule, time.Now().UTC())
	if err != nil {
		return models.Student{}, err
	}
	return GetStudent(db, id)
}

// DeleteStudent removes the owning user; students, history, files and photos
// cascade from it.
func DeleteStudent(db *sqlx.DB, st models.Student) error {
	_, err := db.Exec(`DELETE FROM users WHERE id = $1`, st.UserID)
	return err
}
