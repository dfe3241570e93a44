package persistence

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"product-images/feature/images/models"

	"go.uber.org/zap"
)

// Kind names the strategy chosen for a database handle.
type Kind string

// Strategies, in probing priority order.
const (
	KindCustom      Kind = "custom"
	KindDispatcher  Kind = "dispatcher"
	KindCollection  Kind = "collection"
	KindMapping     Kind = "mapping"
	KindUnsupported Kind = "unsupported"
)

// Operation tags passed to dispatchers.
const (
	OpFindProductByCode = "find_product_by_code"
	OpLinkImages        = "link_images"
)

var (
	// ErrUnsupportedBackend is returned when no strategy matches the handle.
	ErrUnsupportedBackend = errors.New("no persistence strategy matches the database handle")
	// ErrProductNotFound is returned by strategies when an update matches no record.
	ErrProductNotFound = errors.New("product not found")
)

// ProductStore is a purpose-built adapter. Handles implementing it take
// precedence over every other strategy. Both methods are required: a handle
// offering only one of them is not a ProductStore and falls through to the
// lower-priority strategies.
type ProductStore interface {
	FindProductByCode(ctx context.Context, code string) (*models.Product, error)
	LinkImages(ctx context.Context, id models.ProductID, images []models.SequencedImage) error
}

// Dispatcher receives operations as a tag plus arguments.
// OpFindProductByCode gets (code) and OpLinkImages gets (id, images).
type Dispatcher interface {
	Dispatch(ctx context.Context, op string, args ...any) (any, error)
}

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc func(ctx context.Context, op string, args ...any) (any, error)

// Dispatch calls f.
func (f DispatchFunc) Dispatch(ctx context.Context, op string, args ...any) (any, error) {
	return f(ctx, op, args...)
}

// backend is implemented by every strategy.
type backend interface {
	find(ctx context.Context, code string) (*models.Product, error)
	link(ctx context.Context, id models.ProductID, images []models.SequencedImage) error
}

// Adapter finds products and links images through whatever database handle
// the caller supplied. The strategy is chosen on every call from the
// handle's capabilities.
type Adapter struct {
	handle any
	cfg    Config
	logger *zap.Logger
	// mu serializes access to mapping handles.
	mu sync.Mutex
}

// NewAdapter wraps handle. Supported handles are ProductStore, Dispatcher
// (or a function of the same shape), *mongo.Collection, *mongo.Database,
// DocumentCollection, CollectionProvider and map[string]any.
func NewAdapter(handle any, cfg Config, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{handle: handle, cfg: cfg.withDefaults(), logger: logger}
}

// Kind reports the strategy the handle currently resolves to.
func (a *Adapter) Kind() Kind {
	_, kind := a.resolve()
	return kind
}

// Classify reports the strategy a handle would resolve to.
func Classify(handle any) Kind {
	return NewAdapter(handle, Config{}, nil).Kind()
}

func (a *Adapter) resolve() (backend, Kind) {
	if isNilHandle(a.handle) {
		return nil, KindUnsupported
	}

	switch h := a.handle.(type) {
	case ProductStore:
		return customBackend{store: h}, KindCustom
	case Dispatcher:
		return dispatchBackend{dispatcher: h}, KindDispatcher
	case func(context.Context, string, ...any) (any, error):
		return dispatchBackend{dispatcher: DispatchFunc(h)}, KindDispatcher
	}

	if coll := documentCollection(a.handle, a.cfg.CollectionName); coll != nil {
		return &collectionBackend{coll: coll, cfg: a.cfg}, KindCollection
	}

	if m, ok := a.handle.(map[string]any); ok {
		return mappingBackend{store: m, mu: &a.mu}, KindMapping
	}

	return nil, KindUnsupported
}

// FindProductByCode returns the product whose code matches, or nil. Lookup
// failures are logged and reported as absent.
func (a *Adapter) FindProductByCode(ctx context.Context, code string) *models.Product {
	if code == "" {
		return nil
	}
	if isNilHandle(a.handle) {
		a.logger.Error("Database handle not provided for product lookup", zap.String("code", code))
		return nil
	}

	b, kind := a.resolve()
	if b == nil {
		a.logger.Error("No persistence strategy can look up products",
			zap.String("code", code),
			zap.String("handle", fmt.Sprintf("%T", a.handle)),
		)
		return nil
	}

	product, err := b.find(ctx, code)
	if err != nil {
		a.logger.Error("Product lookup failed",
			zap.String("code", code),
			zap.String("strategy", string(kind)),
			zap.Error(err),
		)
		return nil
	}
	return product
}

// LinkImages stores the sequenced images on the product record. Only an
// unsupported handle is an error; write failures are logged and dropped.
func (a *Adapter) LinkImages(ctx context.Context, id models.ProductID, images []models.SequencedImage) error {
	if isNilHandle(a.handle) {
		a.logger.Error("Database handle not provided for image linking", zap.String("product_id", id.String()))
		return nil
	}

	b, kind := a.resolve()
	if b == nil {
		return fmt.Errorf("%w: %T", ErrUnsupportedBackend, a.handle)
	}

	if err := b.link(ctx, id, images); err != nil {
		l := a.logger.With(
			zap.String("product_id", id.String()),
			zap.String("strategy", string(kind)),
		)
		if errors.Is(err, ErrProductNotFound) {
			l.Warn("Product not found while linking images")
		} else {
			l.Error("Failed to link images", zap.Error(err))
		}
	}
	return nil
}

// isNilHandle reports whether handle is nil or a typed nil such as a nil
// pointer, map or func stored in an interface.
func isNilHandle(handle any) bool {
	if handle == nil {
		return true
	}
	v := reflect.ValueOf(handle)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Interface, reflect.Slice, reflect.Chan:
		return v.IsNil()
	}
	return false
}

type customBackend struct {
	store ProductStore
}

func (b customBackend) find(ctx context.Context, code string) (*models.Product, error) {
	return b.store.FindProductByCode(ctx, code)
}

func (b customBackend) link(ctx context.Context, id models.ProductID, images []models.SequencedImage) error {
	return b.store.LinkImages(ctx, id, images)
}

type dispatchBackend struct {
	dispatcher Dispatcher
}

func (b dispatchBackend) find(ctx context.Context, code string) (*models.Product, error) {
	v, err := b.dispatcher.Dispatch(ctx, OpFindProductByCode, code)
	if err != nil {
		return nil, err
	}
	return productFromValue(v), nil
}

func (b dispatchBackend) link(ctx context.Context, id models.ProductID, images []models.SequencedImage) error {
	_, err := b.dispatcher.Dispatch(ctx, OpLinkImages, id, images)
	return err
}
