// Package redis connects to Redis through go-redis/v9 and provides a small
// distributed lock used to keep a single key backfill running at a time.
//
// Configuration is read from the environment (REDIS_URL and friends). An empty
// REDIS_URL means redis is not in use; Config.Enabled reports it.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	locker := redis.NewLocker(client, cfg)
//	release, err := locker.Acquire(ctx, "backfill")
//	if errors.Is(err, redis.ErrLockNotAcquired) {
//	    // another run is in progress
//	}
//	defer release(context.Background())
//
// Locks expire after Config.LockTTL so a crashed holder does not block
// future runs forever. Release only deletes the lock while it still carries
// the holder's token.
//
// Healthcheck returns a ping probe for readiness checks.
package redis
