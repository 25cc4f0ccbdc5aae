package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/recache"
)

// Querier is the subset of the pgx API the loader needs. It is satisfied by
// *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// RowMapper converts a collected row into a value. pgx.RowTo and
// pgx.RowToStructByName satisfy it directly.
type RowMapper[V any] func(row pgx.CollectableRow) (V, error)

const defaultLoadTimeout = 5 * time.Second

type loaderConfig struct {
	timeout time.Duration
}

// LoaderOption configures a loader built by NewLoader.
type LoaderOption func(*loaderConfig)

// WithLoadTimeout bounds each query. Defaults to 5s; recache callers block
// on the cache mutex for the duration of a load, so keep it short.
func WithLoadTimeout(timeout time.Duration) LoaderOption {
	return func(cfg *loaderConfig) {
		if timeout > 0 {
			cfg.timeout = timeout
		}
	}
}

// NewLoader returns a miss loader that runs query with the cache key as $1
// and maps the single resulting row into V. A nil mapper selects pgx.RowTo,
// which expects a one-column result. Zero rows are reported as
// ErrKeyNotFound; more than one row is a query contract violation and
// surfaces as pgx.ErrTooManyRows.
func NewLoader[V any](db Querier, query string, mapper RowMapper[V], opts ...LoaderOption) (recache.Loader[V], error) {
	if db == nil {
		return nil, fmt.Errorf("%w: nil querier", ErrInvalidConfig)
	}
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", ErrInvalidConfig)
	}
	if mapper == nil {
		mapper = pgx.RowTo[V]
	}

	cfg := loaderConfig{timeout: defaultLoadTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(key uint64) (V, error) {
		var zero V

		ctx, cancel := context.WithTimeout(context.Background(), cfg.timeout)
		defer cancel()

		rows, err := db.Query(ctx, query, key)
		if err != nil {
			return zero, fmt.Errorf("query key %d: %w", key, err)
		}

		v, err := pgx.CollectExactlyOneRow(rows, pgx.RowToFunc[V](mapper))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return zero, fmt.Errorf("%w: key %d", ErrKeyNotFound, key)
			}
			return zero, fmt.Errorf("collect key %d: %w", key, err)
		}
		return v, nil
	}, nil
}
