package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"

	NotifyLog   = "log"
	NotifyGmail = "gmail"
)

// HTTPConfig controls the API server
type HTTPConfig struct {
	Addr         string        `yaml:"addr" env:"HTTP_ADDR" validate:"required"`
	ReadTimeout  time.Duration `yaml:"readTimeout" env:"HTTP_READ_TIMEOUT" validate:"min=0"`
	WriteTimeout time.Duration `yaml:"writeTimeout" env:"HTTP_WRITE_TIMEOUT" validate:"min=0"`
}

// AuthConfig controls bearer token checks on the API. An empty secret disables them.
type AuthConfig struct {
	JWTSecret string `yaml:"jwtSecret,omitempty" env:"JWT_SECRET"`
}

// AutoMatchConfig holds the optional recurrence rule for periodic auto-matching
type AutoMatchConfig struct {
	Schedule string `yaml:"schedule,omitempty" env:"AUTO_MATCH_SCHEDULE"`
}

// NotificationsConfig selects how volunteers are notified
type NotificationsConfig struct {
	Mode            string `yaml:"mode" env:"NOTIFICATIONS_MODE" validate:"oneof=log gmail"`
	QueueSize       int    `yaml:"queueSize,omitempty" env:"NOTIFICATIONS_QUEUE_SIZE" validate:"min=1"`
	GmailSender     string `yaml:"gmailSender,omitempty" env:"GMAIL_SENDER" validate:"omitempty,email"`
	OAuthClientPath string `yaml:"oauthClientPath,omitempty" env:"OAUTH_CLIENT_PATH" validate:"required_if=Mode gmail"`
	OAuthTokenPath  string `yaml:"oauthTokenPath,omitempty" env:"OAUTH_TOKEN_PATH"`
}

// Config represents the application configuration
type Config struct {
	Store         string              `yaml:"store" env:"MATCHING_STORE" validate:"oneof=memory postgres"`
	DatabaseURL   string              `yaml:"databaseURL,omitempty" env:"DATABASE_URL" validate:"required_if=Store postgres"`
	FixturesPath  string              `yaml:"fixturesPath,omitempty" env:"FIXTURES_PATH"`
	LogDir        string              `yaml:"logDir,omitempty" env:"LOG_DIR"`
	LogLevel      string              `yaml:"logLevel,omitempty" env:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`
	HTTP          HTTPConfig          `yaml:"http"`
	Auth          AuthConfig          `yaml:"auth"`
	AutoMatch     AutoMatchConfig     `yaml:"autoMatch"`
	Notifications NotificationsConfig `yaml:"notifications"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used for any field the file and environment leave unset
func Default() *Config {
	return &Config{
		Store:    StoreMemory,
		LogDir:   "logs",
		LogLevel: "info",
		HTTP: HTTPConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Notifications: NotificationsConfig{
			Mode:      NotifyLog,
			QueueSize: 64,
		},
	}
}

// Load loads and validates the configuration for the given environment.
// It looks for matching_config.<env>.yaml, then matching_config.yaml, in the
// current directory first and then in the user's home directory.
func Load(environment string) (*Config, error) {
	configPath, err := findConfigFile(environment)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads the configuration from a specific path, applies
// environment variable overrides and validates the result
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct and checks the auto-match rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.AutoMatch.Schedule != "" {
		if _, err := rrule.StrToRRule(cfg.AutoMatch.Schedule); err != nil {
			return fmt.Errorf("invalid rrule in autoMatch.schedule: %w", err)
		}
	}

	return nil
}

// findConfigFile searches the current directory, then the home directory,
// for the environment-specific file and then the shared one
func findConfigFile(environment string) (string, error) {
	names := []string{
		fmt.Sprintf("matching_config.%s.yaml", environment),
		"matching_config.yaml",
	}

	dirs := []string{"."}
	if homeDir, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, homeDir)
	}

	for _, dir := range dirs {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}

	return "", fmt.Errorf("no %s or %s in current directory or home directory", names[0], names[1])
}
