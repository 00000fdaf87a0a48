package httpapi

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValidOK(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.c","password":"supersecret"}`))
	var body LoginRequest
	require.NoError(t, decodeValid(req, &body))
	assert.Equal(t, "a@b.c", body.Email)
}

func TestDecodeValidBadJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{`))
	var body LoginRequest
	err := decodeValid(req, &body)
	require.Error(t, err)
	assert.Equal(t, "Invalid payload", err.Error())
}

func TestDecodeValidMissingRequired(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"password":"supersecret"}`))
	var body LoginRequest
	err := decodeValid(req, &body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "required")
}

func TestDecodeValidBadEmail(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"nope","password":"supersecret"}`))
	var body LoginRequest
	err := decodeValid(req, &body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email address")
}

func TestDecodeValidShortPassword(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Ana","email":"a@b.c","password":"short"}`))
	var body RegisterRequest
	err := decodeValid(req, &body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 8")
}
