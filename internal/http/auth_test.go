package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gymcore-backend-go/internal/models"
	"gymcore-backend-go/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokens() services.TokenService {
	return services.TokenService{
		Secret: []byte("test-secret"),
		Issuer: "gymcore-test",
		TTL:    time.Hour,
	}
}

func protectedEcho(tokens services.TokenService, extra ...func(http.Handler) http.Handler) http.Handler {
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := CurrentIdentity(r)
		WriteJSON(w, http.StatusOK, map[string]string{
			"userId": identity.UserID,
			"role":   string(identity.Role),
		})
	})
	for i := len(extra) - 1; i >= 0; i-- {
		handler = extra[i](handler)
	}
	return WithAuth(tokens)(handler)
}

func TestWithAuthMissingHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	protectedEcho(testTokens()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWithAuthMalformedToken(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	protectedEcho(testTokens()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWithAuthRejectsUnknownRoleClaim(t *testing.T) {
	tokens := testTokens()
	signed, _, err := tokens.CreateToken("user-1", "a@b.c", "SUPERUSER")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	protectedEcho(tokens).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWithAuthInjectsIdentity(t *testing.T) {
	tokens := testTokens()
	signed, _, err := tokens.CreateToken("user-1", "a@b.c", "PROFESSOR")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	protectedEcho(tokens).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"userId":"user-1","role":"PROFESSOR"}`, rec.Body.String())
}

func TestRequireRoleDeniesOtherRoles(t *testing.T) {
	tokens := testTokens()
	signed, _, err := tokens.CreateToken("user-1", "a@b.c", "STUDENT")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	protectedEcho(tokens, RequireRole(models.RoleAdmin)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAnyRoleAllowsListedRoles(t *testing.T) {
	tokens := testTokens()
	signed, _, err := tokens.CreateToken("user-1", "a@b.c", "PROFESSOR")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	protectedEcho(tokens, RequireAnyRole(models.RoleProfessor, models.RoleAdmin)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
