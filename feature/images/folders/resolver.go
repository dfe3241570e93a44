package folders

import (
	"context"
	"sort"
	"strings"

	"product-images/core/metrics"
	"product-images/core/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Resolver maps product codes to the folder named after them under a parent
// folder, memoizing results in a Cache.
type Resolver struct {
	client  storage.Client
	cache   Cache
	logger  *zap.Logger
	metrics *metrics.Images
	group   singleflight.Group
}

// NewResolver creates a resolver. A nil cache gets a fresh MemoryCache.
func NewResolver(client storage.Client, cache Cache, logger *zap.Logger, m *metrics.Images) *Resolver {
	if cache == nil {
		cache = NewMemoryCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		client:  client,
		cache:   cache,
		logger:  logger,
		metrics: m,
	}
}

// Resolve returns the folder reference for code under parent, or "" when no
// folder has that exact name. Cache hits never reach the storage service.
// When several folders share the name, the most recently modified one wins.
// Storage errors are returned to the caller.
func (r *Resolver) Resolve(ctx context.Context, parent, code string) (string, error) {
	if code == "" {
		r.logger.Warn("Invalid product code for folder resolution", zap.String("parent", parent))
		return "", nil
	}

	key := Key(parent, code)
	if ref, ok := r.lookup(ctx, key); ok {
		r.metrics.IncCacheHit()
		return ref, nil
	}
	r.metrics.IncCacheMiss()

	// Concurrent misses for one key share a single remote lookup. The shared
	// lookup is detached from any one caller's cancellation; each caller
	// stops waiting when its own context ends.
	shared := context.WithoutCancel(ctx)
	ch := r.group.DoChan(key, func() (any, error) {
		return r.resolveRemote(shared, parent, code, key)
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (r *Resolver) resolveRemote(ctx context.Context, parent, code, key string) (string, error) {
	entries, err := storage.ListAll(ctx, r.client, storage.ListRequest{
		Parent:  parent,
		Name:    code,
		Filter:  storage.FilterFolders,
		OrderBy: storage.OrderModifiedDesc,
	})
	if err != nil {
		return "", err
	}

	var candidates []storage.Entry
	for _, e := range entries {
		if e.ID != "" {
			candidates = append(candidates, e)
		}
	}

	// The service ordering is requested but not relied on.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ModifiedTime.After(candidates[j].ModifiedTime)
	})

	l := r.logger.With(zap.String("code", code), zap.String("parent", parent))
	if len(candidates) == 0 {
		l.Warn("Product folder not found")
		return "", nil
	}
	if len(candidates) > 1 {
		l.Warn("Several folders share the product code; using the most recently modified",
			zap.Int("matches", len(candidates)))
	}

	ref := candidates[0].ID
	if err := r.cache.Put(ctx, key, ref); err != nil {
		l.Warn("Failed to cache folder reference", zap.Error(err))
	}
	l.Info("Product folder resolved", zap.String("folder_id", ref))
	return ref, nil
}

func (r *Resolver) lookup(ctx context.Context, key string) (string, bool) {
	ref, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn("Folder cache lookup failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return ref, ok && ref != ""
}

// Warmup lists every folder under parent once and caches each name that has
// no entry yet. Existing entries are never overwritten. It returns the number
// of entries inserted.
func (r *Resolver) Warmup(ctx context.Context, parent string) (int, error) {
	entries, err := storage.ListAll(ctx, r.client, storage.ListRequest{
		Parent:  parent,
		Filter:  storage.FilterFolders,
		OrderBy: storage.OrderName,
	})
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" || e.ID == "" {
			continue
		}
		ok, err := r.cache.PutIfAbsent(ctx, Key(parent, name), e.ID)
		if err != nil {
			return inserted, err
		}
		if ok {
			inserted++
		}
	}

	r.logger.Info("Folder cache warmed",
		zap.Int("inserted", inserted),
		zap.Int("listed", len(entries)),
		zap.String("parent", parent),
	)
	return inserted, nil
}

// ClearCache drops every cached folder reference.
func (r *Resolver) ClearCache(ctx context.Context) error {
	return r.cache.Clear(ctx)
}
