package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Guard mismatch policies understood by the portal route guard.
const (
	MismatchPolicyHome  = "home"
	MismatchPolicyLogin = "login"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port        string   `yaml:"port" env:"SERVER_PORT"`
		Mode        string   `yaml:"mode" env:"SERVER_MODE"`
		PublicURL   string   `yaml:"public_url" env:"SERVER_PUBLIC_URL"`
		CORSOrigins []string `yaml:"cors_origins" env:"SERVER_CORS_ORIGINS"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret                 string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration  string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		RefreshTokenExpiration string `yaml:"refresh_token_expiration" env:"JWT_REFRESH_TOKEN_EXPIRATION"`
		Issuer                 string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Cookie struct {
		Name     string `yaml:"name" env:"COOKIE_NAME"`
		Domain   string `yaml:"domain" env:"COOKIE_DOMAIN"`
		Secure   bool   `yaml:"secure" env:"COOKIE_SECURE"`
		SameSite string `yaml:"same_site" env:"COOKIE_SAME_SITE"`
	} `yaml:"cookie"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	SMTP struct {
		Host     string `yaml:"host" env:"SMTP_HOST"`
		Port     int    `yaml:"port" env:"SMTP_PORT"`
		Username string `yaml:"username" env:"SMTP_USERNAME"`
		Password string `yaml:"password" env:"SMTP_PASSWORD"`
		From     string `yaml:"from" env:"SMTP_FROM"`
	} `yaml:"smtp"`

	OTP struct {
		Length      int    `yaml:"length" env:"OTP_LENGTH"`
		TTL         string `yaml:"ttl" env:"OTP_TTL"`
		MaxAttempts int    `yaml:"max_attempts" env:"OTP_MAX_ATTEMPTS"`
	} `yaml:"otp"`

	RateLimit struct {
		RequestsPerSecond float64 `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"`
		Burst             int     `yaml:"burst" env:"RATE_LIMIT_BURST"`
	} `yaml:"rate_limit"`

	Cron struct {
		CleanupSpec string `yaml:"cleanup_spec" env:"CRON_CLEANUP_SPEC"`
	} `yaml:"cron"`

	Guard struct {
		MismatchPolicy string `yaml:"mismatch_policy" env:"GUARD_MISMATCH_POLICY"`
	} `yaml:"guard"`

	Seed struct {
		FacultyEmail    string `yaml:"faculty_email" env:"SEED_FACULTY_EMAIL"`
		FacultyPassword string `yaml:"faculty_password" env:"SEED_FACULTY_PASSWORD"`
		FacultyName     string `yaml:"faculty_name" env:"SEED_FACULTY_NAME"`
	} `yaml:"seed"`
}

// LoadConfig loads configuration from an optional .env file, a YAML file and environment variables.
// Environment variables win over the YAML file.
func LoadConfig(configPath string) (*Config, error) {
	// .env is optional; a missing file is not an error
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "3003"
	config.Server.Mode = "development"
	config.Server.PublicURL = "http://localhost:5173"
	config.Server.CORSOrigins = []string{"http://localhost:5173"}

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "placementhub"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.AccessTokenExpiration = "24h"
	config.JWT.RefreshTokenExpiration = "720h"
	config.JWT.Issuer = "placementhub"

	config.Cookie.Name = "token"
	config.Cookie.SameSite = "lax"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.SMTP.Port = 587

	config.OTP.Length = 6
	config.OTP.TTL = "10m"
	config.OTP.MaxAttempts = 5

	config.RateLimit.RequestsPerSecond = 1
	config.RateLimit.Burst = 5

	config.Cron.CleanupSpec = "@hourly"

	config.Guard.MismatchPolicy = MismatchPolicyHome
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if _, err := time.ParseDuration(config.JWT.RefreshTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT refresh token expiration format: %w", err)
	}

	if _, err := time.ParseDuration(config.OTP.TTL); err != nil {
		return fmt.Errorf("invalid OTP ttl format: %w", err)
	}

	if config.OTP.Length < 4 || config.OTP.Length > 10 {
		return fmt.Errorf("OTP length must be between 4 and 10, got %d", config.OTP.Length)
	}

	if config.RateLimit.RequestsPerSecond <= 0 || config.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit requests_per_second and burst must be positive")
	}

	if _, err := cron.ParseStandard(config.Cron.CleanupSpec); err != nil {
		return fmt.Errorf("invalid cleanup cron spec %q: %w", config.Cron.CleanupSpec, err)
	}

	switch strings.ToLower(config.Guard.MismatchPolicy) {
	case MismatchPolicyHome, MismatchPolicyLogin:
	default:
		return fmt.Errorf("unknown guard mismatch policy %q", config.Guard.MismatchPolicy)
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
