// Package redis provides a Redis-backed miss loader for recache, plus Redis
// client initialization and health checking for the storage layer that owns
// the cache.
//
// # Loader
//
// NewLoader builds a [recache.Loader] that fetches values absent from the
// cache under a "<prefix><key>" Redis key and decodes them into V (JSON by
// default):
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	cache := recache.New[User](
//		recache.WithLoader(redis.NewLoader[User](client, nil,
//			redis.WithPrefix("users:"),
//		)),
//	)
//
//	user, err := cache.Get(123) // GET users:123 on a miss
//
// Pass a custom [DecodeFunc] as the second argument to use a different
// serialization format; nil selects JSON. A missing Redis key is reported as
// ErrKeyNotFound so callers can distinguish "absent" from transport
// failures.
//
// The loader runs while the cache mutex is held and never calls back into
// the cache, so it is safe under recache's reentrancy constraint.
//
// # Connection
//
// Connect creates a Redis client with URL validation, fixed-interval
// retries and a ping verification before returning:
//
//	cfg := redis.Config{
//		ConnectionURL:  "redis://localhost:6379/0",
//		RetryAttempts:  3,
//		RetryInterval:  5 * time.Second,
//		ConnectTimeout: 30 * time.Second,
//	}
//	client, err := redis.Connect(ctx, cfg)
//
// Configuration maps to environment variables through the Config struct
// (REDIS_URL, REDIS_RETRY_ATTEMPTS, REDIS_RETRY_INTERVAL,
// REDIS_CONNECT_TIMEOUT).
//
// # Health Checking
//
// Healthcheck returns a function suitable for readiness probes:
//
//	check := redis.Healthcheck(client)
//	if err := check(ctx); err != nil {
//		// report unhealthy
//	}
package redis
