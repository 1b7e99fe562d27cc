package commands

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/projectkeys/pkg/config"
	"github.com/dmitrymomot/projectkeys/pkg/logger"
	"github.com/dmitrymomot/projectkeys/pkg/pg"
	"github.com/dmitrymomot/projectkeys/pkg/redis"
	"github.com/dmitrymomot/projectkeys/svc/projects"
	"github.com/dmitrymomot/projectkeys/svc/projects/gormstore"
	"github.com/dmitrymomot/projectkeys/svc/projects/pgstore"
)

// app is the set of connections a database command works with.
type app struct {
	pool   *pgxpool.Pool
	pgCfg  pg.Config
	redis  *goredis.Client
	locker projects.Locker
}

func (a *app) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Warn("failed to close redis client", logger.Error(err))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}

// connect opens the database pool. Redis is dialled only when withRedis is
// set and REDIS_URL is configured.
func connect(ctx context.Context, withRedis bool) (*app, error) {
	if err := appCfg.validate(); err != nil {
		return nil, err
	}

	var pgCfg pg.Config
	if err := config.Load(&pgCfg); err != nil {
		return nil, err
	}
	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return nil, err
	}
	a := &app{pool: pool, pgCfg: pgCfg}
	if !withRedis {
		return a, nil
	}

	var redisCfg redis.Config
	if err := config.Load(&redisCfg); err != nil {
		a.Close()
		return nil, err
	}
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.redis = client
		a.locker = redis.NewLocker(client, redisCfg)
	} else {
		log.DebugContext(ctx, "REDIS_URL not set, backfill runs without a lock")
	}

	return a, nil
}

func (a *app) store() (projects.Store, error) {
	switch appCfg.StoreDriver {
	case driverGorm:
		db, err := gormstore.Open(a.pool)
		if err != nil {
			return nil, err
		}
		return gormstore.New(db), nil
	case driverPgx:
		return pgstore.New(a.pool), nil
	default:
		return nil, errors.Join(ErrUnknownStoreDriver, errors.New(appCfg.StoreDriver))
	}
}

func (a *app) service(opts ...projects.ServiceOption) (projects.Service, error) {
	store, err := a.store()
	if err != nil {
		return nil, err
	}
	opts = append([]projects.ServiceOption{
		projects.WithLogger(log.With(logger.Component("projects"))),
		projects.WithMaxSuffixAttempts(appCfg.MaxSuffixAttempts),
	}, opts...)
	return projects.NewService(store, opts...), nil
}
