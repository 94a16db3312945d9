// Package config loads client settings from an optional .env file and the
// process environment. Command-line flags may override the result.
package config

import (
	"fmt"
	"io/fs"
	"time"

	"Cryptbook/internal/errors"
	"Cryptbook/internal/util"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds every tunable of the client.
type Config struct {
	BackendURL string `env:"CRYPTBOOK_BACKEND_URL,default=http://127.0.0.1:5000" validate:"required,url"`
	LogLevel   string `env:"CRYPTBOOK_LOG_LEVEL,default=info" validate:"oneof=debug info warn warning error"`
	LogFile    string `env:"CRYPTBOOK_LOG_FILE"`

	FetchTimeout     time.Duration `env:"CRYPTBOOK_FETCH_TIMEOUT,default=10s" validate:"gt=0"`
	AlertTimeout     time.Duration `env:"CRYPTBOOK_ALERT_TIMEOUT,default=5s" validate:"gt=0"`
	StrengthDebounce time.Duration `env:"CRYPTBOOK_STRENGTH_DEBOUNCE,default=300ms" validate:"gte=0"`
	RoundsThrottle   time.Duration `env:"CRYPTBOOK_ROUNDS_THROTTLE,default=100ms" validate:"gte=0"`
	ProgressDelay    time.Duration `env:"CRYPTBOOK_PROGRESS_DELAY,default=500ms" validate:"gte=0"`
	ProgressDuration time.Duration `env:"CRYPTBOOK_PROGRESS_DURATION,default=2s" validate:"gt=0"`

	// MaxUploadMiB <= 0 disables the size check.
	MaxUploadMiB  int  `env:"CRYPTBOOK_MAX_UPLOAD_MIB,default=500"`
	EnforcePolicy bool `env:"CRYPTBOOK_ENFORCE_POLICY,default=true"`
}

// Load reads the given dotenv files (".env" when none is given), then the
// environment. Missing dotenv files are not an error. Variables already set
// in the environment win over dotenv values.
func Load(dotenv ...string) (*Config, error) {
	if err := godotenv.Load(dotenv...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: dotenv: %w", err)
	}

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New()

// Validate checks the settings after overrides have been applied.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// MaxUploadBytes converts MaxUploadMiB to bytes.
func (c *Config) MaxUploadBytes() int64 {
	if c.MaxUploadMiB <= 0 {
		return 0
	}
	return int64(c.MaxUploadMiB) * util.MiB
}
