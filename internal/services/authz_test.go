package services

import (
	"errors"
	"testing"

	"gymcore-backend-go/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminCaller() Caller {
	return Caller{Identity: Identity{UserID: "admin-1", Role: models.RoleAdmin}}
}

func professorCaller() Caller {
	return Caller{Identity: Identity{UserID: "prof-user-1", Role: models.RoleProfessor}, ProfessorID: "prof-1"}
}

func studentCaller() Caller {
	return Caller{Identity: Identity{UserID: "student-user-1", Role: models.RoleStudent}}
}

func ownResource(kind ResourceKind) Resource {
	return Resource{Kind: kind, StudentUserID: "student-user-1", ProfessorID: "prof-1"}
}

func foreignResource(kind ResourceKind) Resource {
	return Resource{Kind: kind, StudentUserID: "student-user-2", ProfessorID: "prof-2"}
}

func denyReason(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	var svcErr ServiceError
	require.True(t, errors.As(err, &svcErr))
	require.Equal(t, 403, svcErr.Status)
	return svcErr.Message
}

func TestAuthorizeAdminAlwaysAllowed(t *testing.T) {
	for _, kind := range []ResourceKind{KindStudent, KindHistory, KindFile, KindPhoto} {
		for _, action := range []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete} {
			assert.NoError(t, Authorize(adminCaller(), action, foreignResource(kind)))
		}
	}
}

func TestAuthorizeProfessorOwnStudent(t *testing.T) {
	caller := professorCaller()
	assert.NoError(t, Authorize(caller, ActionRead, ownResource(KindStudent)))
	assert.NoError(t, Authorize(caller, ActionUpdate, ownResource(KindStudent)))
	assert.NoError(t, Authorize(caller, ActionDelete, ownResource(KindStudent)))
	assert.NoError(t, Authorize(caller, ActionCreate, ownResource(KindHistory)))
	assert.NoError(t, Authorize(caller, ActionCreate, ownResource(KindFile)))
}

func TestAuthorizeProfessorForeignStudent(t *testing.T) {
	caller := professorCaller()
	assert.Equal(t, ReasonNotYourStudent, denyReason(t, Authorize(caller, ActionRead, foreignResource(KindStudent))))
	assert.Equal(t, ReasonNotYourStudent, denyReason(t, Authorize(caller, ActionUpdate, foreignResource(KindHistory))))
	assert.Equal(t, ReasonNotYourResource, denyReason(t, Authorize(caller, ActionRead, foreignResource(KindFile))))
	assert.Equal(t, ReasonNotYourResource, denyReason(t, Authorize(caller, ActionRead, foreignResource(KindPhoto))))
}

func TestAuthorizeProfessorPhotosReadOnly(t *testing.T) {
	caller := professorCaller()
	assert.NoError(t, Authorize(caller, ActionRead, ownResource(KindPhoto)))
	assert.Equal(t, ReasonStudentsOnly, denyReason(t, Authorize(caller, ActionCreate, ownResource(KindPhoto))))
	assert.Equal(t, ReasonStudentsOnly, denyReason(t, Authorize(caller, ActionDelete, ownResource(KindPhoto))))
}

func TestAuthorizeStudentOwnRecords(t *testing.T) {
	caller := studentCaller()
	assert.NoError(t, Authorize(caller, ActionRead, ownResource(KindStudent)))
	assert.NoError(t, Authorize(caller, ActionUpdate, ownResource(KindStudent)))
	assert.NoError(t, Authorize(caller, ActionRead, ownResource(KindHistory)))
	assert.NoError(t, Authorize(caller, ActionRead, ownResource(KindFile)))
	assert.NoError(t, Authorize(caller, ActionCreate, ownResource(KindPhoto)))
	assert.NoError(t, Authorize(caller, ActionDelete, ownResource(KindPhoto)))
}

func TestAuthorizeStudentCannotDeleteOwnProfile(t *testing.T) {
	err := Authorize(studentCaller(), ActionDelete, ownResource(KindStudent))
	assert.Equal(t, ReasonNotOwnRecord, denyReason(t, err))
}

func TestAuthorizeStudentFilesReadOnly(t *testing.T) {
	caller := studentCaller()
	assert.Equal(t, ReasonStaffOnly, denyReason(t, Authorize(caller, ActionCreate, ownResource(KindFile))))
	assert.Equal(t, ReasonStaffOnly, denyReason(t, Authorize(caller, ActionDelete, ownResource(KindFile))))
}

func TestAuthorizeStudentForeignRecords(t *testing.T) {
	caller := studentCaller()
	for _, kind := range []ResourceKind{KindStudent, KindHistory, KindPhoto} {
		assert.Equal(t, ReasonNotOwnRecord, denyReason(t, Authorize(caller, ActionRead, foreignResource(kind))))
	}
	assert.Equal(t, ReasonNotOwnRecord, denyReason(t, Authorize(caller, ActionRead, foreignResource(KindFile))))
}

func TestResolveCallerProfessorLooksUpProfile(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT id FROM professors WHERE user_id").
		WithArgs("prof-user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("prof-1"))

	caller, err := ResolveCaller(db, Identity{UserID: "prof-user-1", Role: models.RoleProfessor})
	require.NoError(t, err)
	assert.Equal(t, "prof-1", caller.ProfessorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveCallerProfessorMissingProfileFaults(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT id FROM professors WHERE user_id").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := ResolveCaller(db, Identity{UserID: "prof-user-1", Role: models.RoleProfessor})
	var svcErr ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 500, svcErr.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveCallerNonProfessorSkipsLookup(t *testing.T) {
	db, mock := newMockDB(t)
	caller, err := ResolveCaller(db, Identity{UserID: "student-user-1", Role: models.RoleStudent})
	require.NoError(t, err)
	assert.Empty(t, caller.ProfessorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthorizeSameInputsSameAnswer(t *testing.T) {
	caller := professorCaller()
	res := foreignResource(KindStudent)
	first := Authorize(caller, ActionRead, res)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Authorize(caller, ActionRead, res))
	}
}
