// Package pg provides a Postgres-backed miss loader for recache, built on
// pgx. It turns a single-row query into a [recache.Loader] so a cache can be
// populated transparently from the database that owns the source of truth.
//
// # Usage
//
//	pool, err := pgxpool.New(ctx, os.Getenv("DATABASE_URL"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	loader, err := pg.NewLoader[User](pool,
//		`SELECT id, name, email FROM users WHERE id = $1`,
//		pgx.RowToStructByName[User],
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	cache := recache.New[User](recache.WithLoader(loader))
//	user, err := cache.Get(123) // runs the query on a miss
//
// The query receives the uint64 cache key as its only argument ($1) and must
// return exactly one row for present keys. A zero-row result is reported as
// ErrKeyNotFound so callers can distinguish "absent" from query failures.
//
// The mapper converts the row into V; pgx.RowTo (single column) and
// pgx.RowToStructByName are the common choices. A nil mapper selects
// pgx.RowTo, which suits scalar value types.
//
// The loader runs while the cache mutex is held, so every fetch is bounded
// by a timeout (WithLoadTimeout, 5s default) and the loader never calls back
// into the cache.
package pg
