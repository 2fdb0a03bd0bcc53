package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config keeps runtime settings for conbi. Everything has a sane default so
// the binary works with no environment at all.
type Config struct {
	DataDir     string        `env:"CONBI_DATA_DIR"`
	SessionTTL  time.Duration `env:"CONBI_SESSION_TTL" env-default:"720h"`
	BcryptCost  int           `env:"CONBI_BCRYPT_COST" env-default:"10"`
	RemindEvery time.Duration `env:"CONBI_REMIND_EVERY" env-default:"1h"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("read env: %w", err)
	}

	if cfg.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("resolve home dir: %w", err)
		}
		cfg.DataDir = filepath.Join(homeDir, ".conbi")
	}

	if cfg.BcryptCost < 4 {
		cfg.BcryptCost = 10
	}

	return cfg, nil
}

// DatabasePath returns the sqlite file location.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "conbi.db")
}

// SessionPath returns the stored session token location.
func (c Config) SessionPath() string {
	return filepath.Join(c.DataDir, "session")
}

// SecretPath returns the location of the locally generated signing secret.
func (c Config) SecretPath() string {
	return filepath.Join(c.DataDir, "secret")
}
