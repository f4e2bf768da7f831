package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultPort           = "8080"
	DefaultDatabaseURL    = "sqlite:///conference.db"
	DefaultSecretKey      = "dev-secret-change-me"
	DefaultSessionTTL     = 7 * 24 * time.Hour
	DefaultAdminUsername  = "admin"
	DefaultAdminPassword  = "changeme123"
	DefaultStorageBackend = "local"
	DefaultStaticDir      = "static"
	DefaultUploadDir      = "static/uploads"
	DefaultImage          = "/assets/default-speaker.svg"
	DefaultMaxUploadBytes = 32 << 20
	DefaultS3Region       = "us-east-1"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	LogLevel    string

	DatabaseURL string

	// SecretKey signs session and flash cookies.
	SecretKey  string
	SessionTTL time.Duration

	AdminUsername string
	AdminPassword string

	StorageBackend string
	StaticDir      string
	UploadDir      string
	DefaultImage   string
	MaxUploadBytes int64

	S3Bucket          string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Endpoint        string
	S3PublicURL       string

	// CORSAllowedOrigins may read the JSON API from another origin.
	CORSAllowedOrigins []string
}

// IsProduction reports whether GO_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load loads configuration from environment variables.
// Outside production it first loads a .env file if one exists.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// production relies on real environment variables
	if env != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("Warning: .env file couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:       env,
		Port:              getenv("PORT", DefaultPort),
		LogLevel:          strings.ToLower(os.Getenv("LOG_LEVEL")),
		DatabaseURL:       getenv("DATABASE_URL", DefaultDatabaseURL),
		SecretKey:         getenv("SECRET_KEY", DefaultSecretKey),
		AdminUsername:     getenv("ADMIN_USERNAME", DefaultAdminUsername),
		AdminPassword:     getenv("ADMIN_PASSWORD", DefaultAdminPassword),
		StorageBackend:    strings.ToLower(getenv("STORAGE_BACKEND", DefaultStorageBackend)),
		StaticDir:         getenv("STATIC_DIR", DefaultStaticDir),
		UploadDir:         getenv("UPLOAD_DIR", DefaultUploadDir),
		DefaultImage:      getenv("DEFAULT_IMAGE", DefaultImage),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3Region:          getenv("S3_REGION", DefaultS3Region),
		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3PublicURL:       os.Getenv("S3_PUBLIC_URL"),
	}

	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	ttl, err := parseDuration("SESSION_TTL", DefaultSessionTTL)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL = ttl

	cfg.MaxUploadBytes = DefaultMaxUploadBytes
	if s := os.Getenv("MAX_UPLOAD_BYTES"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be a positive integer, got %q", s)
		}
		cfg.MaxUploadBytes = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks combinations that cannot work at runtime.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case "local":
		if c.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR is required for the local storage backend")
		}
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 storage backend")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be \"local\" or \"s3\", got %q", c.StorageBackend)
	}
	if c.IsProduction() && c.SecretKey == DefaultSecretKey {
		return fmt.Errorf("SECRET_KEY must be set in production")
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDuration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, s)
	}
	return d, nil
}
