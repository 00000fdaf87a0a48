package services

import (
	"database/sql"
	"errors"
	"strconv"
	"time"

	"gymcore-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const historyColumns = `
id, student_id, weight_kg, height_cm, waist_cm, hip_cm, neck_cm, left_arm_cm,
right_arm_cm, left_leg_cm, right_leg_cm, body_fat_pct, muscle_mass_kg, notes,
recorded_by, recorded_at, created_at`

type HistoryInput struct {
	WeightKg     *float64
	HeightCm     *float64
	WaistCm      *float64
	HipCm        *float64
	NeckCm       *float64
	LeftArmCm    *float64
	RightArmCm   *float64
	LeftLegCm    *float64
	RightLegCm   *float64
	BodyFatPct   *float64
	MuscleMassKg *float64
	Notes        *string
	RecordedAt   *time.Time
}

func GetHistoryRecord(db *sqlx.DB, id string) (models.HistoryRecord, error) {
	var rec models.HistoryRecord
	err := db.Get(&rec, `SELECT `+historyColumns+` FROM student_history WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.HistoryRecord{}, ErrNotFound("History record not found")
	}
	return rec, err
}

// CreateHistoryRecord appends a biometric record and refreshes the student's
// snapshot columns in the same transaction, keeping the mirror invariant:
// the student row always reflects the latest record's shared fields.
func CreateHistoryRecord(db *sqlx.DB, studentID, recordedBy string, input HistoryInput) (models.HistoryRecord, error) {
	recordedAt := time.Now().UTC()
	if input.RecordedAt != nil {
		recordedAt = input.RecordedAt.UTC()
	}
	id := uuid.NewString()

	tx, err := db.Beginx()
	if err != nil {
		return models.HistoryRecord{}, err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
INSERT INTO student_history (
  id, student_id, weight_kg, height_cm, waist_cm, hip_cm, neck_cm, left_arm_cm,
  right_arm_cm, left_leg_cm, right_leg_cm, body_fat_pct, muscle_mass_kg, notes,
  recorded_by, recorded_at, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
`, id, studentID, input.WeightKg, input.HeightCm, input.WaistCm, input.HipCm,
		input.NeckCm, input.LeftArmCm, input.RightArmCm, input.LeftLegCm, input.RightLegCm,
		input.BodyFatPct, input.MuscleMassKg, input.Notes, recordedBy, recordedAt, time.Now().UTC())
	if err != nil {
		return models.HistoryRecord{}, err
	}

	_, err = tx.Exec(`
UPDATE students
SET weight_kg = COALESCE($2, weight_kg),
    height_cm = COALESCE($3, height_cm),
    waist_cm = COALESCE($4, waist_cm),
    hip_cm = COALESCE($5, hip_cm),
    neck_cm = COALESCE($6, neck_cm),
    updated_at = $7
WHERE id = $1
`, studentID, input.WeightKg, input.HeightCm, input.WaistCm, input.HipCm, input.NeckCm, time.Now().UTC())
	if err != nil {
		return models.HistoryRecord{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.HistoryRecord{}, err
	}
	return GetHistoryRecord(db, id)
}

type HistoryFilters struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

func ListHistory(db *sqlx.DB, studentID string, filters HistoryFilters) ([]models.HistoryRecord, error) {
	query := `SELECT ` + historyColumns + ` FROM student_history WHERE student_id = $1`
	args := []interface{}{studentID}
	if filters.From != nil {
		args = append(args, *filters.From)
		query += ` AND recorded_at >= $2`
	}
	if filters.To != nil {
		args = append(args, *filters.To)
		if filters.From != nil {
			query += ` AND recorded_at <= $3`
		} else {
			query += ` AND recorded_at <= $2`
		}
	}
	query += ` ORDER BY recorded_at DESC`
	if filters.Limit > 0 {
		query += ` LIMIT ` + strconv.Itoa(filters.Limit)
	}
	records := []models.HistoryRecord{}
	err := db.Select(&records, query, args...)
	return records, err
}

func LatestHistory(db *sqlx.DB, studentID string) (models.HistoryRecord, error) {
	var rec models.HistoryRecord
	err := db.Get(&rec, `
SELECT `+historyColumns+` FROM student_history
WHERE student_id = $1 ORDER BY recorded_at DESC LIMIT 1
`, studentID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.HistoryRecord{}, ErrNotFound("No history recorded for this student")
	}
	return rec, err
}

func UpdateHistoryRecord(db *sqlx.DB, id string, input HistoryInput) (models.HistoryRecord, error) {
	_, err := db.Exec(`
UPDATE student_history
SET weight_kg = COALESCE($2, weight_kg),
    height_cm = COALESCE($3, height_cm),
    waist_cm = COALESCE($4, waist_cm),
    hip_cm = COALESCE($5, hip_cm),
    neck_cm = COALESCE($6, neck_cm),
    left_arm_cm = COALESCE($7, left_arm_cm),
    right_arm_cm = COALESCE($8, right_arm_cm),
    left_leg_cm = COALESCE($9, left_leg_cm),
    right_leg_cm = COALESCE($10, right_leg_cm),
    body_fat_pct = COALESCE($11, body_fat_pct),
    muscle_mass_kg = COALESCE($12, muscle_mass_kg),
    notes = COALESCE($13, notes)
WHERE id = $1
`, id, input.WeightKg, input.HeightCm, input.WaistCm, input.HipCm, input.NeckCm,
		input.LeftArmCm, input.RightArmCm, input.LeftLegCm, input.RightLegCm,
		input.BodyFatPct, input.MuscleMassKg, input.Notes)
	if err != nil {
		return models.HistoryRecord{}, err
	}
	return GetHistoryRecord(db, id)
}

func DeleteHistoryRecord(db *sqlx.DB, id string) error {
	_, err := db.Exec(`DELETE FROM student_history WHERE id = $1`, id)
	return err
}
