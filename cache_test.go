package recache_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/recache"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	c := recache.New[string]()
	assert.Equal(t, recache.DefaultCapacity, c.Cap())
	assert.Equal(t, 0, c.Len())
}

func TestNew_CapacityClamping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "zero raised to minimum", in: 0, want: recache.MinCapacity},
		{name: "one raised to minimum", in: 1, want: recache.MinCapacity},
		{name: "negative raised to minimum", in: -5, want: recache.MinCapacity},
		{name: "minimum kept", in: recache.MinCapacity, want: recache.MinCapacity},
		{name: "regular value kept", in: 100, want: 100},
		{name: "maximum kept", in: recache.MaxCapacity, want: recache.MaxCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := recache.New[int](recache.WithCapacity[int](tt.in))
			assert.Equal(t, tt.want, c.Cap())
		})
	}
}

func TestCache_SetAndTryGet(t *testing.T) {
	t.Parallel()

	t.Run("miss on empty cache", func(t *testing.T) {
		c := recache.New[string]()

		v, found, err := c.TryGet(1)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		c := recache.New[string]()

		require.NoError(t, c.Set(1, "a"))
		v, found, err := c.TryGet(1)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "a", v)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("set replaces value in place", func(t *testing.T) {
		c := recache.New[string]()

		require.NoError(t, c.Set(1, "a"))
		require.NoError(t, c.Set(1, "b"))

		v, found, err := c.TryGet(1)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "b", v)
		assert.Equal(t, 1, c.Len())
	})
}

func TestCache_LRUEviction(t *testing.T) {
	t.Parallel()

	t.Run("evicts least recently used on overflow", func(t *testing.T) {
		// Scenario: capacity 2, third insert evicts the first.
		var evicted []uint64
		var evictedValues []string
		c := recache.New[string](
			recache.WithCapacity[string](2),
			recache.WithEvictCallback(func(key uint64, value string) {
				evicted = append(evicted, key)
				evictedValues = append(evictedValues, value)
			}),
		)

		require.NoError(t, c.Set(1, "a"))
		require.NoError(t, c.Set(2, "b"))
		require.NoError(t, c.Set(3, "c"))

		require.Equal(t, []uint64{1}, evicted)
		require.Equal(t, []string{"a"}, evictedValues)
		assert.Equal(t, 2, c.Len())
		assert.True(t, c.Contains(2))
		assert.True(t, c.Contains(3))
		assert.False(t, c.Contains(1))
	})

	t.Run("touch protects entry from eviction", func(t *testing.T) {
		// Scenario: contents {2,3}, touching 2 makes 3 the eviction victim.
		var evicted []uint64
		c := recache.New[string](
			recache.WithCapacity[string](2),
			recache.WithEvictCallback(func(key uint64, _ string) {
				evicted = append(evicted, key)
			}),
		)

		require.NoError(t, c.Set(2, "b"))
		require.NoError(t, c.Set(3, "c"))

		_, found, err := c.TryGet(2)
		require.NoError(t, err)
		require.True(t, found)

		require.NoError(t, c.Set(4, "d"))

		require.Equal(t, []uint64{3}, evicted)
		assert.True(t, c.Contains(2))
		assert.True(t, c.Contains(4))
		assert.False(t, c.Contains(3))
	})

	t.Run("update counts as use", func(t *testing.T) {
		var evicted []uint64
		c := recache.New[string](
			recache.WithCapacity[string](2),
			recache.WithEvictCallback(func(key uint64, _ string) {
				evicted = append(evicted, key)
			}),
		)

		require.NoError(t, c.Set(1, "a"))
		require.NoError(t, c.Set(2, "b"))
		require.NoError(t, c.Set(1, "a2")) // 2 becomes least recently used
		require.NoError(t, c.Set(3, "c"))

		assert.Equal(t, []uint64{2}, evicted)
		assert.True(t, c.Contains(1))
		assert.True(t, c.Contains(3))
	})

	t.Run("eviction is silent without callback", func(t *testing.T) {
		c := recache.New[string](recache.WithCapacity[string](2))

		require.NoError(t, c.Set(1, "a"))
		require.NoError(t, c.Set(2, "b"))
		require.NoError(t, c.Set(3, "c"))

		assert.Equal(t, 2, c.Len())
		assert.False(t, c.Contains(1))
	})

	t.Run("count never exceeds capacity", func(t *testing.T) {
		c := recache.New[int](recache.WithCapacity[int](8))

		for i := 0; i < 100; i++ {
			require.NoError(t, c.Set(uint64(i), i))
			assert.LessOrEqual(t, c.Len(), c.Cap())
		}
		assert.Equal(t, 8, c.Len())
	})
}

func TestCache_Get(t *testing.T) {
	t.Parallel()

	t.Run("fails without loader", func(t *testing.T) {
		c := recache.New[string]()

		_, err := c.Get(1)
		require.ErrorIs(t, err, recache.ErrNoLoader)
	})

	t.Run("hit does not invoke loader", func(t *testing.T) {
		loads := 0
		c := recache.New[string](
			recache.WithLoader(func(key uint64) (string, error) {
				loads++
				return fmt.Sprintf("loaded-%d", key), nil
			}),
		)

		require.NoError(t, c.Set(7, "manual"))

		v, err := c.Get(7)
		require.NoError(t, err)
		assert.Equal(t, "manual", v)
		assert.Equal(t, 0, loads)
	})

	t.Run("miss loads and caches", func(t *testing.T) {
		loads := 0
		c := recache.New[string](
			recache.WithLoader(func(key uint64) (string, error) {
				loads++
				return fmt.Sprintf("loaded-%d", key), nil
			}),
		)

		v, err := c.Get(42)
		require.NoError(t, err)
		assert.Equal(t, "loaded-42", v)
		assert.Equal(t, 1, loads)

		// Second call is a hit.
		v, err = c.Get(42)
		require.NoError(t, err)
		assert.Equal(t, "loaded-42", v)
		assert.Equal(t, 1, loads)
	})

	t.Run("loaded entry can evict", func(t *testing.T) {
		var evicted []uint64
		c := recache.New[string](
			recache.WithCapacity[string](2),
			recache.WithLoader(func(key uint64) (string, error) {
				return fmt.Sprintf("v%d", key), nil
			}),
			recache.WithEvictCallback(func(key uint64, _ string) {
				evicted = append(evicted, key)
			}),
		)

		for key := uint64(1); key <= 3; key++ {
			_, err := c.Get(key)
			require.NoError(t, err)
		}

		assert.Equal(t, []uint64{1}, evicted)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("loader error propagates and leaves state unchanged", func(t *testing.T) {
		loadErr := errors.New("backend unavailable")
		c := recache.New[string](
			recache.WithLoader(func(uint64) (string, error) {
				return "", loadErr
			}),
		)

		_, err := c.Get(1)
		require.ErrorIs(t, err, loadErr)
		assert.Equal(t, 0, c.Len())
		assert.False(t, c.Contains(1))
	})
}

func TestCache_TryGetNeverLoads(t *testing.T) {
	t.Parallel()

	loads := 0
	c := recache.New[string](
		recache.WithLoader(func(uint64) (string, error) {
			loads++
			return "loaded", nil
		}),
	)

	_, found, err := c.TryGet(1)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, loads)
}

func TestCache_PeekDoesNotTouch(t *testing.T) {
	t.Parallel()

	var evicted []uint64
	c := recache.New[string](
		recache.WithCapacity[string](2),
		recache.WithEvictCallback(func(key uint64, _ string) {
			evicted = append(evicted, key)
		}),
	)

	require.NoError(t, c.Set(1, "a"))
	require.NoError(t, c.Set(2, "b"))

	// Peek must not promote key 1; the next insert still evicts it.
	v, found := c.Peek(1)
	require.True(t, found)
	assert.Equal(t, "a", v)

	require.NoError(t, c.Set(3, "c"))
	assert.Equal(t, []uint64{1}, evicted)
}

func TestCache_SetCapacity(t *testing.T) {
	t.Parallel()

	t.Run("growth succeeds without evictions", func(t *testing.T) {
		evictions := 0
		c := recache.New[string](
			recache.WithCapacity[string](2),
			recache.WithEvictCallback(func(uint64, string) {
				evictions++
			}),
		)

		require.NoError(t, c.Set(1, "a"))
		require.NoError(t, c.Set(2, "b"))

		require.NoError(t, c.SetCapacity(10))
		assert.Equal(t, 10, c.Cap())
		assert.Equal(t, 0, evictions)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("shrink is rejected", func(t *testing.T) {
		c := recache.New[string](recache.WithCapacity[string](10))

		err := c.SetCapacity(5)
		require.ErrorIs(t, err, recache.ErrCapacityShrink)
		assert.Equal(t, 10, c.Cap())
	})

	t.Run("requested value below minimum is clamped before comparison", func(t *testing.T) {
		c := recache.New[string](recache.WithCapacity[string](recache.MinCapacity))

		// Clamps to MinCapacity, which equals the current capacity.
		require.NoError(t, c.SetCapacity(0))
		assert.Equal(t, recache.MinCapacity, c.Cap())
	})

	t.Run("same capacity is a no-op", func(t *testing.T) {
		c := recache.New[string](recache.WithCapacity[string](4))

		require.NoError(t, c.SetCapacity(4))
		assert.Equal(t, 4, c.Cap())
	})
}

func TestCache_Clear(t *testing.T) {
	t.Parallel()

	t.Run("notifies per entry in recency order", func(t *testing.T) {
		var evicted []uint64
		c := recache.New[string](
			recache.WithEvictCallback(func(key uint64, _ string) {
				evicted = append(evicted, key)
			}),
		)

		require.NoError(t, c.Set(1, "a"))
		require.NoError(t, c.Set(2, "b"))
		require.NoError(t, c.Set(3, "c"))

		require.NoError(t, c.Clear())

		// Head-to-tail: most recently used first.
		assert.Equal(t, []uint64{3, 2, 1}, evicted)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("silent without callback", func(t *testing.T) {
		c := recache.New[string]()

		require.NoError(t, c.Set(1, "a"))
		require.NoError(t, c.Clear())
		assert.Equal(t, 0, c.Len())
	})

	t.Run("cache stays usable after clear", func(t *testing.T) {
		c := recache.New[string]()

		require.NoError(t, c.Set(1, "a"))
		require.NoError(t, c.Clear())
		require.NoError(t, c.Set(2, "b"))

		v, found, err := c.TryGet(2)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "b", v)
	})
}

func TestCache_Dispose(t *testing.T) {
	t.Parallel()

	t.Run("fails without eviction callback and stays usable", func(t *testing.T) {
		c := recache.New[string]()
		require.NoError(t, c.Set(1, "a"))

		err := c.Dispose()
		require.ErrorIs(t, err, recache.ErrNoEvictCallback)

		// Still active.
		require.NoError(t, c.Set(2, "b"))
		v, found, err := c.TryGet(1)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "a", v)
	})

	t.Run("notifies every entry then blocks all operations", func(t *testing.T) {
		evicted := map[uint64]string{}
		c := recache.New[string](
			recache.WithEvictCallback(func(key uint64, value string) {
				evicted[key] = value
			}),
		)

		require.NoError(t, c.Set(5, "x"))
		require.NoError(t, c.Set(6, "y"))

		require.NoError(t, c.Dispose())

		require.Len(t, evicted, 2)
		assert.Equal(t, "x", evicted[5])
		assert.Equal(t, "y", evicted[6])
		assert.Equal(t, 0, c.Len())

		assert.ErrorIs(t, c.Set(7, "z"), recache.ErrDisposed)
		_, err := c.Get(5)
		assert.ErrorIs(t, err, recache.ErrDisposed)
		_, _, err = c.TryGet(5)
		assert.ErrorIs(t, err, recache.ErrDisposed)
		assert.ErrorIs(t, c.Clear(), recache.ErrDisposed)
		assert.ErrorIs(t, c.SetCapacity(1000), recache.ErrDisposed)
	})

	t.Run("second dispose fails", func(t *testing.T) {
		c := recache.New[string](
			recache.WithEvictCallback(func(uint64, string) {}),
		)

		require.NoError(t, c.Dispose())
		assert.ErrorIs(t, c.Dispose(), recache.ErrAlreadyDisposed)
	})
}

func TestCache_Stats(t *testing.T) {
	t.Parallel()

	loadErr := errors.New("load failed")
	c := recache.New[string](
		recache.WithCapacity[string](2),
		recache.WithEvictCallback(func(uint64, string) {}),
		recache.WithLoader(func(key uint64) (string, error) {
			if key == 99 {
				return "", loadErr
			}
			return "v", nil
		}),
	)

	require.NoError(t, c.Set(1, "a"))

	_, _, err := c.TryGet(1) // hit
	require.NoError(t, err)
	_, _, err = c.TryGet(2) // miss
	require.NoError(t, err)

	_, err = c.Get(2) // miss + load
	require.NoError(t, err)
	_, err = c.Get(2) // hit
	require.NoError(t, err)

	_, err = c.Get(99) // miss + failed load
	require.ErrorIs(t, err, loadErr)

	require.NoError(t, c.Set(3, "c")) // evicts the LRU entry

	stats := c.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(3), stats.Misses)
	assert.Equal(t, int64(1), stats.Loads)
	assert.Equal(t, int64(1), stats.LoadFailures)
	assert.Equal(t, int64(1), stats.Evictions)
}
