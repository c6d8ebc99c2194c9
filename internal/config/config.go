package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"chartlab/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every variable, e.g. CHARTLAB_SERVER_PORT
const EnvPrefix = "CHARTLAB"

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig `envconfig:"DATABASE"`
	Server   ServerConfig   `envconfig:"SERVER"`
	Admin    AdminConfig    `envconfig:"ADMIN"`
	Upload   UploadConfig   `envconfig:"UPLOAD"`
	Charts   ChartsConfig   `envconfig:"CHARTS"`
	Logging  LoggingConfig  `envconfig:"LOG"`
}

// DatabaseConfig holds database connection settings. An empty URL selects the
// in-memory dataset repository.
type DatabaseConfig struct {
	URL             string        `envconfig:"URL" validate:"omitempty,url"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"10" validate:"min=1"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"5" validate:"min=0"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"30m"`
	AutoMigrate     bool          `envconfig:"AUTO_MIGRATE" default:"true"`
}

// ServerConfig holds API server settings
type ServerConfig struct {
	Port            int           `envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	GinMode         string        `envconfig:"GIN_MODE" default:"release" validate:"oneof=debug release test"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// AdminConfig holds the health, metrics and pprof listener settings
type AdminConfig struct {
	Enabled bool `envconfig:"ENABLED" default:"true"`
	Port    int  `envconfig:"PORT" default:"6060" validate:"min=1,max=65535"`
}

// UploadConfig limits accepted files
type UploadConfig struct {
	MaxBytes   int64    `envconfig:"MAX_BYTES" default:"10485760" validate:"gt=0"`
	Extensions []string `envconfig:"EXTENSIONS" default:".csv,.xlsx" validate:"min=1,dive,startswith=."`
	// ArchiveDir keeps a copy of every accepted upload when set
	ArchiveDir string `envconfig:"ARCHIVE_DIR"`
}

// ChartsConfig tunes chart preparation
type ChartsConfig struct {
	BatchConcurrency int `envconfig:"BATCH_CONCURRENCY" default:"4" validate:"min=1,max=64"`
	MaxBatch         int `envconfig:"MAX_BATCH" default:"24" validate:"min=1"`
	PreviewRows      int `envconfig:"PREVIEW_ROWS" default:"8" validate:"min=0"`
}

// LoggingConfig holds log settings
type LoggingConfig struct {
	Level  string `envconfig:"LEVEL" default:"info" validate:"oneof=error warn info debug trace"`
	Format string `envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
}

// Load reads .env (when present), then the environment, and validates the result
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.WithCode(errors.CodeConfigInvalid, errors.Wrap(err, "failed to read env file"))
	}

	cfg := &Config{}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, errors.Wrap(err, "failed to load configuration from environment"))
	}
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
	cfg.Logging.Format = strings.ToLower(cfg.Logging.Format)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return errors.ConfigInvalid("invalid configuration: " + strings.Join(fields, ", "))
		}
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	return nil
}

// UsesDatabase reports whether a PostgreSQL URL was configured
func (c *Config) UsesDatabase() bool {
	return c.Database.URL != ""
}

// ServerAddr returns the API listen address
func (c *Config) ServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// AdminAddr returns the admin listen address
func (c *Config) AdminAddr() string {
	return fmt.Sprintf(":%d", c.Admin.Port)
}
