// Package cache connects to the Redis server backing the shared folder cache.
//
// The in-process cache is the default; Redis is only used when several linker
// processes should share folder lookups (images.cache_backend=redis).
package cache
