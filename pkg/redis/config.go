package redis

import "time"

type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"`                              // ConnectionURL is the URL of the server, e.g. "redis://:password@localhost:6379/0". Empty disables redis.
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`    // RetryAttempts is the number of attempts to connect to the server.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`   // RetryInterval is the interval between attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"` // ConnectTimeout bounds the whole connect sequence.

	LockPrefix string        `env:"REDIS_LOCK_PREFIX" envDefault:"projectkeys:lock:"` // LockPrefix is prepended to every lock name.
	LockTTL    time.Duration `env:"REDIS_LOCK_TTL" envDefault:"15m"`                  // LockTTL is how long a lock survives a crashed holder.
}

// Enabled reports whether a redis URL is configured.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
