// Package folders resolves product codes to their image folder in the storage
// service.
//
// Each product has a folder named exactly after its code directly under a
// configured parent folder. Resolver looks it up once and memoizes the folder
// reference in a Cache:
//
//   - MemoryCache keeps entries for the process lifetime behind one mutex.
//   - RedisCache shares entries between processes.
//
// Keys are scoped by parent (see Key), so one cache can serve several parents.
// There is no expiry: a folder that is renamed or recreated keeps its old
// reference until ClearCache is called.
//
// Warmup preloads the cache from a single listing of the parent folder and
// never overwrites entries written by Resolve.
package folders
