package commands

import (
	"errors"
	"fmt"
)

const (
	driverPgx  = "pgx"
	driverGorm = "gorm"
)

var ErrUnknownStoreDriver = errors.New("unknown store driver")

// AppConfig holds the settings every subcommand needs. Database and redis
// settings are loaded only by the commands that connect.
type AppConfig struct {
	Env                 string `env:"APP_ENV" envDefault:"development"`
	LogLevel            string `env:"LOG_LEVEL"`
	LogFormat           string `env:"LOG_FORMAT"`
	StoreDriver         string `env:"STORE_DRIVER" envDefault:"pgx"`
	BackfillConcurrency int    `env:"BACKFILL_CONCURRENCY" envDefault:"1"`
	MaxSuffixAttempts   int    `env:"MAX_SUFFIX_ATTEMPTS" envDefault:"0"`
}

func (c AppConfig) validate() error {
	switch c.StoreDriver {
	case driverPgx, driverGorm:
		return nil
	default:
		return fmt.Errorf("%w %q: use %q or %q", ErrUnknownStoreDriver, c.StoreDriver, driverPgx, driverGorm)
	}
}
