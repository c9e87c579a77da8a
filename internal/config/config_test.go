package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("ACCESS_TOKEN_DURATION", "not-a-duration")
	t.Setenv("MAX_UPLOAD_SIZE", "-1")

	cfg := LoadConfig()

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 2*time.Hour, cfg.AccessTokenDuration)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadSize)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_NAME", "social_test")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("REFRESH_TOKEN_DURATION", "24h")
	t.Setenv("MAX_UPLOAD_SIZE", "2048")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := LoadConfig()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "social_test", cfg.DB.DbNAME)
	assert.Equal(t, "secret", cfg.JWTSecretKey)
	assert.Equal(t, 24*time.Hour, cfg.RefreshTokenDuration)
	assert.Equal(t, int64(2048), cfg.MaxUploadSize)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMinIO_PublicURL(t *testing.T) {
	tests := []struct {
		name      string
		endpoint  string
		useSSL    string
		publicURL string
		expected  string
	}{
		{name: "derived from endpoint", endpoint: "minio:9000", useSSL: "false", expected: "http://minio:9000"},
		{name: "derived with ssl", endpoint: "s3.example.com", useSSL: "true", expected: "https://s3.example.com"},
		{name: "explicit public url", endpoint: "minio:9000", publicURL: "https://cdn.example.com", expected: "https://cdn.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MINIO_ENDPOINT", tt.endpoint)
			t.Setenv("MINIO_USE_SSL", tt.useSSL)
			// t.Setenv restores the variable on cleanup, Unsetenv makes it absent for this run
			t.Setenv("MINIO_PUBLIC_URL", tt.publicURL)
			if tt.publicURL == "" {
				os.Unsetenv("MINIO_PUBLIC_URL")
			}

			assert.Equal(t, tt.expected, LoadMinIO().PublicURL)
		})
	}
}
