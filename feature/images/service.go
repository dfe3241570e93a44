package images

import (
	"context"
	"errors"
	"fmt"

	"product-images/core/metrics"
	"product-images/feature/images/collector"
	"product-images/feature/images/folders"
	"product-images/feature/images/models"
	"product-images/feature/images/persistence"

	"go.uber.org/zap"
)

// ErrEmptyCode is returned when a product code is empty.
var ErrEmptyCode = errors.New("product code is empty")

// Service links the images found in a product's storage folder to the
// product record.
type Service struct {
	products    *persistence.Adapter
	resolver    *folders.Resolver
	collector   *collector.Collector
	parent      string
	concurrency int
	logger      *zap.Logger
	metrics     *metrics.Images
}

// NewService creates a new image linking service.
func NewService(
	products *persistence.Adapter,
	resolver *folders.Resolver,
	coll *collector.Collector,
	cfg Config,
	logger *zap.Logger,
	m *metrics.Images,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Service{
		products:    products,
		resolver:    resolver,
		collector:   coll,
		parent:      cfg.ParentFolderID,
		concurrency: concurrency,
		logger:      logger,
		metrics:     m,
	}
}

// ProcessCode finds the product for code, resolves its image folder, and
// links the folder's images in name order. It reports false without error
// when the product, the folder or the images are missing.
func (s *Service) ProcessCode(ctx context.Context, code string) (bool, error) {
	if code == "" {
		s.metrics.IncProcessed(metrics.OutcomeInvalidCode)
		return false, ErrEmptyCode
	}
	l := s.logger.With(zap.String("code", code))

	product := s.products.FindProductByCode(ctx, code)
	if product == nil {
		l.Warn("Product not found")
		s.metrics.IncProcessed(metrics.OutcomeProductNotFound)
		return false, nil
	}
	l = l.With(zap.String("product_id", product.ID.String()))

	folderID, err := s.resolver.Resolve(ctx, s.parent, code)
	if err != nil {
		s.metrics.IncProcessed(metrics.OutcomeError)
		return false, fmt.Errorf("failed to resolve folder for %s: %w", code, err)
	}
	if folderID == "" {
		l.Warn("Image folder not found", zap.String("parent", s.parent))
		s.metrics.IncProcessed(metrics.OutcomeFolderNotFound)
		return false, nil
	}
	l = l.With(zap.String("folder_id", folderID))

	entries, err := s.collector.List(ctx, folderID)
	if err != nil {
		s.metrics.IncProcessed(metrics.OutcomeError)
		return false, fmt.Errorf("failed to list images for %s: %w", code, err)
	}
	if len(entries) == 0 {
		l.Info("No images in product folder")
		s.metrics.IncProcessed(metrics.OutcomeNoImages)
		return false, nil
	}

	labels := Sequence(code, len(entries))
	sequenced := make([]models.SequencedImage, len(entries))
	for i, entry := range entries {
		sequenced[i] = models.SequencedImage{Sequence: labels[i], FileID: entry.ID}
	}

	if err := s.products.LinkImages(ctx, product.ID, sequenced); err != nil {
		s.metrics.IncProcessed(metrics.OutcomeError)
		return false, fmt.Errorf("failed to link images for %s: %w", code, err)
	}

	l.Info("Linked product images", zap.Int("images", len(sequenced)))
	s.metrics.IncProcessed(metrics.OutcomeLinked)
	return true, nil
}

// Warmup preloads the folder cache with every folder under the parent.
func (s *Service) Warmup(ctx context.Context) (int, error) {
	return s.resolver.Warmup(ctx, s.parent)
}

// ClearCache drops every cached folder reference.
func (s *Service) ClearCache(ctx context.Context) error {
	return s.resolver.ClearCache(ctx)
}
