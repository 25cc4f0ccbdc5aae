package recache

// Stats provides observability counters for monitoring and debugging.
// Counters are cumulative for the lifetime of the cache instance and keep
// their final values after Dispose.
type Stats struct {
	Hits         int64 // Lookups that found the key present
	Misses       int64 // Lookups that did not find the key
	Loads        int64 // Successful loader invocations
	LoadFailures int64 // Loader invocations that returned an error
	Evictions    int64 // Entries removed by trimming, Clear or Dispose
}
