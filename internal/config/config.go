package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	DatabaseURL          string
	JWTSecret            string
	JWTIssuer            string
	TokenTTLSeconds      int64
	MediaBucket          string
	MediaRegion          string
	MediaEndpoint        string
	MediaPublicBaseURL   string
	MaxFileBytes         int64
	MaxPhotoBytes        int64
	MetricsDiskPath      string
	MetricsSampleSeconds int
	CorsOrigins          []string
}

func Load() Config {
	return Config{
		DatabaseURL:          mustEnv("DATABASE_URL"),
		JWTSecret:            mustEnv("JWT_SECRET"),
		JWTIssuer:            envOr("JWT_ISSUER", "gymcore"),
		TokenTTLSeconds:      int64(envOrInt("TOKEN_TTL_SECONDS", 604800)),
		MediaBucket:          mustEnv("MEDIA_BUCKET"),
		MediaRegion:          envOr("MEDIA_REGION", "us-east-1"),
		MediaEndpoint:        envOr("MEDIA_ENDPOINT", ""),
		MediaPublicBaseURL:   envOr("MEDIA_PUBLIC_BASE_URL", ""),
		MaxFileBytes:         int64(envOrInt("MAX_FILE_SIZE_MB", 10)) << 20,
		MaxPhotoBytes:        int64(envOrInt("MAX_PHOTO_SIZE_MB", 5)) << 20,
		MetricsDiskPath:      envOr("METRICS_DISK_PATH", "/"),
		MetricsSampleSeconds: envOrInt("METRICS_SAMPLE_INTERVAL", 5),
		CorsOrigins:          parseCSV(envOr("CORS_ORIGINS", "")),
	}
}

func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		panic("missing env var: " + key)
	}
	return value
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
