package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only when it still carries our token, so an
// expired holder cannot release a lock taken over by someone else.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker hands out single-holder locks backed by SET NX PX.
type Locker struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewLocker creates a Locker using cfg.LockPrefix and cfg.LockTTL.
func NewLocker(client redis.UniversalClient, cfg Config) *Locker {
	ttl := cfg.LockTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Locker{client: client, prefix: cfg.LockPrefix, ttl: ttl}
}

// Acquire takes the named lock. It returns ErrLockNotAcquired immediately if
// another holder has it; the returned function releases the lock.
func (l *Locker) Acquire(ctx context.Context, name string) (func(context.Context) error, error) {
	token, err := newToken()
	if err != nil {
		return nil, errors.Join(ErrLockFailed, err)
	}

	key := l.prefix + name
	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, errors.Join(ErrLockFailed, err)
	}
	if !ok {
		return nil, ErrLockNotAcquired
	}

	release := func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			return errors.Join(ErrLockFailed, err)
		}
		return nil
	}
	return release, nil
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
