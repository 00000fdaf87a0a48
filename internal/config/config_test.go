package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/gymcore_test")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("MEDIA_BUCKET", "gymcore-media")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	cfg := Load()

	assert.Equal(t, "gymcore", cfg.JWTIssuer)
	assert.Equal(t, int64(604800), cfg.TokenTTLSeconds)
	assert.Equal(t, "us-east-1", cfg.MediaRegion)
	assert.Equal(t, int64(10<<20), cfg.MaxFileBytes)
	assert.Equal(t, int64(5<<20), cfg.MaxPhotoBytes)
	assert.Equal(t, 5, cfg.MetricsSampleSeconds)
	assert.Nil(t, cfg.CorsOrigins)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_ISSUER", "custom")
	t.Setenv("TOKEN_TTL_SECONDS", "3600")
	t.Setenv("MAX_FILE_SIZE_MB", "20")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()
	assert.Equal(t, "custom", cfg.JWTIssuer)
	assert.Equal(t, int64(3600), cfg.TokenTTLSeconds)
	assert.Equal(t, int64(20<<20), cfg.MaxFileBytes)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CorsOrigins)
}

func TestLoadBadIntFallsBack(t *testing.T) {
	setRequired(t)
	t.Setenv("TOKEN_TTL_SECONDS", "not-a-number")

	cfg := Load()
	assert.Equal(t, int64(604800), cfg.TokenTTLSeconds)
}

func TestLoadMissingRequiredPanics(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_URL", "")
	assert.Panics(t, func() { Load() })
}
