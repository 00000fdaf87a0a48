package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testTokenService() TokenService {
	return TokenService{
		Secret: []byte("test-secret"),
		Issuer: "gymcore-test",
		TTL:    time.Hour,
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	tokens := testTokenService()
	hash, err := tokens.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, len(hash) > 0)
	assert.Contains(t, hash, "$argon2id$")

	assert.True(t, tokens.VerifyPassword("correct horse battery staple", hash))
	assert.False(t, tokens.VerifyPassword("wrong password", hash))
}

func TestVerifyPasswordBcryptFallback(t *testing.T) {
	tokens := testTokenService()
	hash, err := bcrypt.GenerateFromPassword([]byte("legacy password"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, tokens.VerifyPassword("legacy password", string(hash)))
	assert.False(t, tokens.VerifyPassword("not it", string(hash)))
}

func TestVerifyPasswordGarbageHash(t *testing.T) {
	tokens := testTokenService()
	assert.False(t, tokens.VerifyPassword("anything", "$argon2id$broken"))
	assert.False(t, tokens.VerifyPassword("anything", "not a hash at all"))
}

func TestCreateAndParseToken(t *testing.T) {
	tokens := testTokenService()
	signed, exp, err := tokens.CreateToken("user-1", "a@b.c", "PROFESSOR")
	require.NoError(t, err)
	assert.Greater(t, exp, time.Now().Unix())

	token, claims, err := tokens.ParseToken(signed)
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "user-1", claims["sub"])
	assert.Equal(t, "a@b.c", claims["email"])
	assert.Equal(t, "PROFESSOR", claims["role"])
}

func TestParseTokenWrongSecret(t *testing.T) {
	signed, _, err := testTokenService().CreateToken("user-1", "a@b.c", "STUDENT")
	require.NoError(t, err)

	other := TokenService{Secret: []byte("different"), Issuer: "gymcore-test", TTL: time.Hour}
	_, _, err = other.ParseToken(signed)
	assert.Error(t, err)
}

func TestParseTokenWrongIssuer(t *testing.T) {
	foreign := TokenService{Secret: []byte("test-secret"), Issuer: "someone-else", TTL: time.Hour}
	signed, _, err := foreign.CreateToken("user-1", "a@b.c", "STUDENT")
	require.NoError(t, err)

	_, _, err = testTokenService().ParseToken(signed)
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	expired := TokenService{Secret: []byte("test-secret"), Issuer: "gymcore-test", TTL: -time.Minute}
	signed, _, err := expired.CreateToken("user-1", "a@b.c", "STUDENT")
	require.NoError(t, err)

	_, _, err = testTokenService().ParseToken(signed)
	assert.Error(t, err)
}
