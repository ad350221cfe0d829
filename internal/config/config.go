package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvFile is the dotenv file read by Load when present.
const DefaultEnvFile = ".env"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Logger   LoggerConfig   `koanf:"logger"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string `koanf:"host" validate:"required"`
	Port int    `koanf:"port" validate:"min=1,max=65535"`
	// ExposeErrors controls whether driver messages are returned in 500 bodies.
	ExposeErrors bool `koanf:"expose_errors"`
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	URL           string `koanf:"url" validate:"required"`
	TLSSkipVerify bool   `koanf:"tls_skip_verify"`
	TraceLevel    string `koanf:"trace_level" validate:"oneof=none error warn info debug trace"`
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"` // "json" or "console"
}

// envKeys maps environment variable names (lower-cased) to config paths.
var envKeys = map[string]string{
	"server_host":              "server.host",
	"server_port":              "server.port",
	"server_expose_errors":     "server.expose_errors",
	"database_url":             "database.url",
	"database_tls_skip_verify": "database.tls_skip_verify",
	"database_trace_level":     "database.trace_level",
	"log_level":                "logger.level",
	"log_format":               "logger.format",
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         5000,
			ExposeErrors: true,
		},
		Database: DatabaseConfig{
			TLSSkipVerify: true,
			TraceLevel:    "none",
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from DefaultEnvFile and environment variables.
func Load() (*Config, error) {
	return LoadWithEnvFile(DefaultEnvFile)
}

// LoadWithEnvFile loads configuration in three layers: defaults, the given
// dotenv file (if it exists) and the process environment. Variables already
// present in the environment are not overwritten by the file.
func LoadWithEnvFile(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
		}
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// envTransform returns the config path for an environment variable, or ""
// for variables the service does not read. Empty variables count as unset.
func envTransform(key string) string {
	if os.Getenv(key) == "" {
		return ""
	}
	return envKeys[strings.ToLower(key)]
}

var validate = validator.New()

// Validate validates the configuration.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.StructNamespace() {
	case "Config.Server.Host":
		return fmt.Errorf("server host is required")
	case "Config.Server.Port":
		return fmt.Errorf("invalid server port: %v", fe.Value())
	case "Config.Database.URL":
		return fmt.Errorf("database URL is required (set DATABASE_URL)")
	case "Config.Database.TraceLevel":
		return fmt.Errorf("invalid database trace level: %v (must be none, error, warn, info, debug, or trace)", fe.Value())
	case "Config.Logger.Level":
		return fmt.Errorf("invalid log level: %v (must be debug, info, warn, or error)", fe.Value())
	case "Config.Logger.Format":
		return fmt.Errorf("invalid log format: %v (must be json or console)", fe.Value())
	default:
		return fmt.Errorf("invalid %s: %v", fe.Namespace(), fe.Value())
	}
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
