package services

import (
	"testing"
	"time"

	"gymcore-backend-go/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func studentRow(id, userID, professorID string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "user_id", "professor_id", "phone", "height_cm", "weight_kg", "age",
		"waist_cm", "hip_cm", "neck_cm", "daily_foods", "avoided_foods", "food_allergies",
		"joint_pain", "supplements", "training_days_per_week", "meal_schedule",
		"created_at", "updated_at",
	}).AddRow(id, userID, professorID, nil, nil, nil, nil, nil, nil, nil,
		[]byte(`["oats"]`), nil, nil, nil, nil, nil, nil, now, now)
}

func TestListStudentsProfessorScoped(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM students WHERE professor_id").
		WithArgs("prof-1").
		WillReturnRows(studentRow("student-1", "user-1", "prof-1"))

	caller := Caller{Identity: Identity{UserID: "prof-user-1", Role: models.RoleProfessor}, ProfessorID: "prof-1"}
	students, err := ListStudents(db, caller)
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.Equal(t, "prof-1", students[0].ProfessorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListStudentsStudentSeesSelf(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM students WHERE user_id").
		WithArgs("student-user-1").
		WillReturnRows(studentRow("student-1", "student-user-1", "prof-1"))

	caller := Caller{Identity: Identity{UserID: "student-user-1", Role: models.RoleStudent}}
	students, err := ListStudents(db, caller)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "student-user-1", students[0].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A student with no student row yet gets an empty list, not an error.
func TestListStudentsStudentWithoutRow(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM students WHERE user_id").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	caller := Caller{Identity: Identity{UserID: "student-user-1", Role: models.RoleStudent}}
	students, err := ListStudents(db, caller)
	require.NoError(t, err)
	assert.Empty(t, students)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStudentNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM students WHERE id").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := GetStudent(db, "missing")
	var svcErr ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarshalList(t *testing.T) {
	assert.Nil(t, marshalList(nil))
	raw, ok := marshalList([]string{"a", "b"}).([]byte)
	require.True(t, ok)
	assert.JSONEq(t, `["a","b"]`, string(raw))
	empty, ok := marshalList([]string{}).([]byte)
	require.True(t, ok)
	assert.JSONEq(t, `[]`, string(empty))
}
