package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration for the media access service.
// It merges file defaults and environment overrides to support both local and deployed runs.
type Config struct {
	ServiceID string

	HTTPPort int
	GRPCPort int

	DatabaseURL string
	RedisURL    string
	AutoMigrate bool

	JWTPublicKeyPEM string
	JWTHSSecret     string

	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string

	SignerAllowLocal   bool
	SignerLocalBaseURL string
	SignerLocalSecret  string

	DefaultStreamExpiry time.Duration
	SettingsCacheTTL    time.Duration
	LibraryDefaultLimit int
	LibraryMaxLimit     int

	MaxDBConns int32
}

// configFile mirrors the YAML schema used by configs/default.yaml.
// It is intentionally separate from Config so runtime-only fields stay internal.
type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL string `yaml:"postgres_url"`
		RedisURL    string `yaml:"redis_url"`
	} `yaml:"dependencies"`
	Media struct {
		S3Bucket   string `yaml:"s3_bucket"`
		S3Region   string `yaml:"s3_region"`
		S3Endpoint string `yaml:"s3_endpoint"`
	} `yaml:"media"`
}

// LoadConfig resolves configuration in priority order: defaults -> file -> env.
// This order keeps local bootstrap simple while allowing environment-specific overrides.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:           "Media-Access-Service",
		HTTPPort:            8080,
		GRPCPort:            9090,
		AutoMigrate:         true,
		SignerAllowLocal:    true,
		SignerLocalBaseURL:  "http://localhost:8090/local-media",
		DefaultStreamExpiry: time.Hour,
		SettingsCacheTTL:    5 * time.Minute,
		LibraryDefaultLimit: 20,
		LibraryMaxLimit:     100,
		S3Region:            "us-east-1",
		MaxDBConns:          20,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.GRPCPort > 0 {
			cfg.GRPCPort = f.Service.GRPCPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if f.Media.S3Bucket != "" {
			cfg.S3Bucket = f.Media.S3Bucket
		}
		if f.Media.S3Region != "" {
			cfg.S3Region = f.Media.S3Region
		}
		if f.Media.S3Endpoint != "" {
			cfg.S3Endpoint = f.Media.S3Endpoint
		}
	}

	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.AutoMigrate = envBool("DB_AUTO_MIGRATE", cfg.AutoMigrate)
	cfg.JWTPublicKeyPEM = envOrDefault("JWT_PUBLIC_KEY_PEM", cfg.JWTPublicKeyPEM)
	cfg.JWTHSSecret = envOrDefault("JWT_HS_SECRET", cfg.JWTHSSecret)

	cfg.S3Bucket = envOrDefault("MEDIA_S3_BUCKET", cfg.S3Bucket)
	cfg.S3Region = envOrDefault("MEDIA_S3_REGION", cfg.S3Region)
	cfg.S3Endpoint = envOrDefault("MEDIA_S3_ENDPOINT", cfg.S3Endpoint)
	cfg.S3AccessKeyID = envOrDefault("MEDIA_S3_ACCESS_KEY_ID", cfg.S3AccessKeyID)
	cfg.S3SecretAccessKey = envOrDefault("MEDIA_S3_SECRET_ACCESS_KEY", cfg.S3SecretAccessKey)

	cfg.SignerAllowLocal = envBool("SIGNER_ALLOW_LOCAL", cfg.SignerAllowLocal)
	cfg.SignerLocalBaseURL = envOrDefault("SIGNER_LOCAL_BASE_URL", cfg.SignerLocalBaseURL)
	cfg.SignerLocalSecret = envOrDefault("SIGNER_LOCAL_SECRET", cfg.SignerLocalSecret)

	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))
	cfg.LibraryDefaultLimit = envInt("LIBRARY_DEFAULT_LIMIT", cfg.LibraryDefaultLimit)
	cfg.LibraryMaxLimit = envInt("LIBRARY_MAX_LIMIT", cfg.LibraryMaxLimit)

	cfg.DefaultStreamExpiry = time.Duration(envInt("STREAM_EXPIRY_SECONDS", int(cfg.DefaultStreamExpiry.Seconds()))) * time.Second
	cfg.SettingsCacheTTL = time.Duration(envInt("SETTINGS_CACHE_TTL_SECONDS", int(cfg.SettingsCacheTTL.Seconds()))) * time.Second

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}
	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("missing REDIS_URL")
	}
	if cfg.JWTPublicKeyPEM == "" && cfg.JWTHSSecret == "" {
		return Config{}, fmt.Errorf("missing JWT_PUBLIC_KEY_PEM or JWT_HS_SECRET")
	}
	if cfg.S3Bucket == "" && !cfg.SignerAllowLocal {
		return Config{}, fmt.Errorf("missing MEDIA_S3_BUCKET")
	}

	return cfg, nil
}

// envOrDefault returns an env var when present, otherwise the provided fallback.
func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// envInt parses integer env vars with safe fallback on empty/invalid values.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// envBool parses common boolean env forms while keeping a deterministic fallback.
func envBool(name string, fallback bool) bool {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return fallback
	}
}
