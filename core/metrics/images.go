package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Process outcomes recorded by the linker.
const (
	OutcomeLinked          = "linked"
	OutcomeInvalidCode     = "invalid_code"
	OutcomeProductNotFound = "product_not_found"
	OutcomeFolderNotFound  = "folder_not_found"
	OutcomeNoImages        = "no_images"
	OutcomeError           = "error"
)

// Images records linker activity. A nil *Images is a no-op.
type Images struct {
	processed   *prometheus.CounterVec
	cacheLookup *prometheus.CounterVec
}

// NewImages registers the linker metrics on the provided registerer.
func NewImages(reg prometheus.Registerer) *Images {
	if reg == nil {
		return &Images{}
	}
	processed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "product_images_process_total",
		Help: "Product codes processed, by outcome.",
	}, []string{"outcome"})
	cacheLookup := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "product_images_folder_cache_total",
		Help: "Folder cache lookups, by result.",
	}, []string{"result"})
	reg.MustRegister(processed, cacheLookup)
	return &Images{
		processed:   processed,
		cacheLookup: cacheLookup,
	}
}

// IncProcessed increments the counter for the given outcome.
func (m *Images) IncProcessed(outcome string) {
	if m == nil || m.processed == nil {
		return
	}
	m.processed.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncCacheHit records a folder cache hit.
func (m *Images) IncCacheHit() {
	if m == nil || m.cacheLookup == nil {
		return
	}
	m.cacheLookup.WithLabelValues("hit").Inc()
}

// IncCacheMiss records a folder cache miss.
func (m *Images) IncCacheMiss() {
	if m == nil || m.cacheLookup == nil {
		return
	}
	m.cacheLookup.WithLabelValues("miss").Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
