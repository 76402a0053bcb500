package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"sql2latex/internal/model"
)

const (
	envDriver   = "DB_DRIVER"
	envDSN      = "DB_DSN"
	envUser     = "DB_USER"
	envPassword = "DB_PASSWORD"
	envLibDir   = "DB_LIB_DIR"
)

// Load reads the database settings from the environment. A .env file in the
// working directory is merged in first when present; a missing file is fine.
func Load() (*model.Config, error) {
	_ = godotenv.Load()

	cfg := &model.Config{
		Driver:    os.Getenv(envDriver),
		DSN:       os.Getenv(envDSN),
		User:      os.Getenv(envUser),
		Password:  os.Getenv(envPassword),
		WalletDir: os.Getenv(envLibDir),
	}
	if cfg.Driver == "" {
		cfg.Driver = "oracle"
	}

	switch cfg.Driver {
	case "oracle", "postgres":
	default:
		return nil, fmt.Errorf("%s: unsupported driver %q", envDriver, cfg.Driver)
	}

	for _, v := range []struct{ name, value string }{
		{envDSN, cfg.DSN},
		{envUser, cfg.User},
		{envPassword, cfg.Password},
	} {
		if v.value == "" {
			return nil, fmt.Errorf("%s is not set", v.name)
		}
	}

	// DB_LIB_DIR points at the Oracle wallet directory. It is optional: a DSN
	// can carry its own transport settings instead.
	if cfg.WalletDir != "" {
		info, err := os.Stat(cfg.WalletDir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", envLibDir, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s: %s is not a directory", envLibDir, cfg.WalletDir)
		}
	}

	return cfg, nil
}
