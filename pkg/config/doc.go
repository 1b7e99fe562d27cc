// Package config loads application configuration from environment variables
// into tagged structs.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for struct parsing:
//
//	type AppConfig struct {
//		Env      string `env:"APP_ENV" envDefault:"development"`
//		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
//	}
//
//	if err := config.LoadEnv("deploy/.env.staging"); err != nil { // optional explicit files
//		return err
//	}
//
//	var cfg AppConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Load reads the default .env file once per process; values already present
// in the environment are never overwritten by files.
//
// Errors are wrapped with the package sentinels (ErrParsingConfig,
// ErrLoadingEnvFile, ErrNilPointer) so they can be matched with errors.Is.
package config
