package main

import (
	"context"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/blog-publishing-api/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/samber/oops"
)

// newSessionStore builds the configured scs store. The returned func
// releases its resources.
func newSessionStore(ctx context.Context, cfg config.SessionConfig) (scs.Store, func(), error) {
	switch cfg.Store {
	case config.SessionStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			return nil, nil, oops.Code("SESSION_STORE_FAILED").With("addr", cfg.RedisAddr).Wrap(err)
		}
		return goredisstore.NewWithPrefix(client, cfg.RedisPrefix), func() { client.Close() }, nil

	default:
		store := memstore.New()
		return store, store.StopCleanup, nil
	}
}
