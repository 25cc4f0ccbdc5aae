package recache

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Capacity bounds. Configured values outside the bounds are clamped, never
// rejected: below MinCapacity is raised, above MaxCapacity is lowered.
const (
	MinCapacity     = 2
	MaxCapacity     = math.MaxInt32
	DefaultCapacity = 256
)

// Config holds cache configuration loadable from environment variables.
type Config struct {
	Capacity int `env:"RECACHE_CAPACITY" envDefault:"256"`
}

// config carries the construction-time state assembled from options.
type config[V any] struct {
	capacity int
	loader   Loader[V]
	onEvict  EvictCallback[V]
	logger   *slog.Logger
}

func defaultConfig[V any]() config[V] {
	return config[V]{
		capacity: DefaultCapacity,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option configures a Cache at construction.
type Option[V any] func(*config[V])

// WithCapacity sets the initial capacity. The value is clamped into
// [MinCapacity, MaxCapacity] by New.
func WithCapacity[V any](n int) Option[V] {
	return func(cfg *config[V]) {
		cfg.capacity = n
	}
}

// WithLoader sets the miss loader invoked by Get when a key is absent.
func WithLoader[V any](loader Loader[V]) Option[V] {
	return func(cfg *config[V]) {
		cfg.loader = loader
	}
}

// WithEvictCallback sets the callback invoked once per removed entry.
// Dispose requires one to be registered.
func WithEvictCallback[V any](cb EvictCallback[V]) Option[V] {
	return func(cfg *config[V]) {
		cfg.onEvict = cb
	}
}

// WithLogger sets the logger for internal events. Defaults to a discard
// logger.
func WithLogger[V any](logger *slog.Logger) Option[V] {
	return func(cfg *config[V]) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

var loadEnvOnce sync.Once

// NewFromEnv creates a cache configured from environment variables
// (RECACHE_CAPACITY). A .env file in the working directory is loaded once
// per process, if present. Options are applied after the environment, so
// WithCapacity takes precedence over RECACHE_CAPACITY.
func NewFromEnv[V any](opts ...Option[V]) (*Cache[V], error) {
	loadEnvOnce.Do(func() {
		_ = godotenv.Load()
	})

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse cache config: %w", err)
	}

	merged := append([]Option[V]{WithCapacity[V](cfg.Capacity)}, opts...)
	return New[V](merged...), nil
}

func clampCapacity(n int) int {
	if n < MinCapacity {
		return MinCapacity
	}
	if n > MaxCapacity {
		return MaxCapacity
	}
	return n
}
