package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyRow(id, studentID string) *sqlmock.Rows {
	now := time.Now().UTC()
	weight := 82.5
	return sqlmock.NewRows([]string{
		"id", "student_id", "weight_kg", "height_cm", "waist_cm", "hip_cm", "neck_cm",
		"left_arm_cm", "right_arm_cm", "left_leg_cm", "right_leg_cm", "body_fat_pct",
		"muscle_mass_kg", "notes", "recorded_by", "recorded_at", "created_at",
	}).AddRow(id, studentID, weight, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, "prof-user-1", now, now)
}

// The insert and the snapshot refresh run in one transaction; a failed
// snapshot update rolls the record back too.
func TestCreateHistoryRecordMirrorsSnapshot(t *testing.T) {
	db, mock := newMockDB(t)
	weight := 82.5

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO student_history").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE students").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT (.+) FROM student_history WHERE id").
		WillReturnRows(historyRow("rec-1", "student-1"))

	rec, err := CreateHistoryRecord(db, "student-1", "prof-user-1", HistoryInput{WeightKg: &weight})
	require.NoError(t, err)
	assert.Equal(t, "student-1", rec.StudentID)
	require.NotNil(t, rec.WeightKg)
	assert.Equal(t, weight, *rec.WeightKg)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateHistoryRecordRollsBackOnSnapshotFailure(t *testing.T) {
	db, mock := newMockDB(t)
	weight := 82.5

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO student_history").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE students").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := CreateHistoryRecord(db, "student-1", "prof-user-1", HistoryInput{WeightKg: &weight})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestHistoryEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM student_history").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := LatestHistory(db, "student-1")
	var svcErr ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListHistoryAppliesFilters(t *testing.T) {
	db, mock := newMockDB(t)
	from := time.Now().UTC().Add(-30 * 24 * time.Hour)
	to := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM student_history WHERE student_id (.+) AND recorded_at >= (.+) AND recorded_at <=").
		WithArgs("student-1", from, to).
		WillReturnRows(historyRow("rec-1", "student-1"))

	records, err := ListHistory(db, "student-1", HistoryFilters{From: &from, To: &to, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
