package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test from an empty directory so no stray .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	for _, k := range []string{"GO_ENV", "PORT", "DATABASE_URL", "SECRET_KEY", "SESSION_TTL", "STORAGE_BACKEND", "UPLOAD_DIR", "MAX_UPLOAD_BYTES", "S3_BUCKET", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultDatabaseURL, cfg.DatabaseURL)
	assert.Equal(t, DefaultSessionTTL, cfg.SessionTTL)
	assert.Equal(t, "local", cfg.StorageBackend)
	assert.Equal(t, DefaultUploadDir, cfg.UploadDir)
	assert.Equal(t, DefaultImage, cfg.DefaultImage)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.MaxUploadBytes)
	assert.Equal(t, DefaultAdminUsername, cfg.AdminUsername)
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoad_FromEnvAndDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("GO_ENV", "")
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("STORAGE_BACKEND", "S3")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://conf.example.org , ,http://localhost:3000")
	// godotenv never overrides variables that are already present, even if empty;
	// t.Setenv restores the originals afterwards.
	for _, k := range []string{"S3_BUCKET", "S3_ENDPOINT"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("S3_BUCKET=conf-images\nS3_ENDPOINT=http://minio:9000\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "s3", cfg.StorageBackend)
	assert.Equal(t, "conf-images", cfg.S3Bucket)
	assert.Equal(t, "http://minio:9000", cfg.S3Endpoint)
	assert.Equal(t, []string{"https://conf.example.org", "http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad session ttl", map[string]string{"SESSION_TTL": "soon"}},
		{"negative session ttl", map[string]string{"SESSION_TTL": "-1h"}},
		{"bad upload size", map[string]string{"MAX_UPLOAD_BYTES": "lots"}},
		{"unknown backend", map[string]string{"STORAGE_BACKEND": "ftp"}},
		{"s3 without bucket", map[string]string{"STORAGE_BACKEND": "s3", "S3_BUCKET": ""}},
		{"production default secret", map[string]string{"GO_ENV": "production", "SECRET_KEY": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			for _, k := range []string{"GO_ENV", "SESSION_TTL", "MAX_UPLOAD_BYTES", "STORAGE_BACKEND", "S3_BUCKET", "SECRET_KEY"} {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &Config{Environment: "production", LogLevel: "warn"})
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "v", rec["k"])

	buf.Reset()
	text := newLogger(&buf, &Config{Environment: "development"})
	text.Debug("hidden")
	text.Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
}
