package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/recache"
)

// StringGetter is the subset of the go-redis API the loader needs. It is
// satisfied by *goredis.Client, goredis.UniversalClient and goredis.Cmdable,
// and is narrow enough to stub in tests.
type StringGetter interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
}

// DecodeFunc converts a raw Redis payload into a value.
type DecodeFunc[V any] func(data []byte) (V, error)

const (
	defaultPrefix      = "recache:"
	defaultLoadTimeout = 5 * time.Second
)

type loaderConfig struct {
	prefix  string
	timeout time.Duration
}

// LoaderOption configures a loader built by NewLoader.
type LoaderOption func(*loaderConfig)

// WithPrefix sets the Redis key prefix. Defaults to "recache:".
func WithPrefix(prefix string) LoaderOption {
	return func(cfg *loaderConfig) {
		cfg.prefix = prefix
	}
}

// WithLoadTimeout bounds each Redis fetch. Defaults to 5s; recache callers
// block on the cache mutex for the duration of a load, so keep it short.
func WithLoadTimeout(timeout time.Duration) LoaderOption {
	return func(cfg *loaderConfig) {
		if timeout > 0 {
			cfg.timeout = timeout
		}
	}
}

// NewLoader returns a miss loader that fetches "<prefix><key>" from Redis
// and decodes the payload with decode. A nil decode selects JSON. A missing
// key is reported as ErrKeyNotFound; decode failures as ErrDecodeFailed.
func NewLoader[V any](client StringGetter, decode DecodeFunc[V], opts ...LoaderOption) recache.Loader[V] {
	cfg := loaderConfig{
		prefix:  defaultPrefix,
		timeout: defaultLoadTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if decode == nil {
		decode = func(data []byte) (V, error) {
			var v V
			if err := json.Unmarshal(data, &v); err != nil {
				var zero V
				return zero, err
			}
			return v, nil
		}
	}

	return func(key uint64) (V, error) {
		var zero V

		ctx, cancel := context.WithTimeout(context.Background(), cfg.timeout)
		defer cancel()

		redisKey := cfg.prefix + strconv.FormatUint(key, 10)
		data, err := client.Get(ctx, redisKey).Bytes()
		if err != nil {
			if errors.Is(err, goredis.Nil) {
				return zero, fmt.Errorf("%w: %s", ErrKeyNotFound, redisKey)
			}
			return zero, fmt.Errorf("fetch %s: %w", redisKey, err)
		}

		v, err := decode(data)
		if err != nil {
			return zero, fmt.Errorf("%w: %s: %w", ErrDecodeFailed, redisKey, err)
		}
		return v, nil
	}
}
