package persistence

import (
	"context"
	"strings"
	"sync"

	"product-images/core/utils"
	"product-images/feature/images/models"
)

// mappingBackend keeps products in a plain map keyed by code. Linked images
// are stored under the product id.
type mappingBackend struct {
	store map[string]any
	mu    *sync.Mutex
}

func (b mappingBackend) find(_ context.Context, code string) (*models.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	entry, ok := b.store[code]
	if !ok {
		return nil, nil
	}
	return productFromValue(entry), nil
}

func (b mappingBackend) link(_ context.Context, id models.ProductID, images []models.SequencedImage) error {
	stored := make([]models.SequencedImage, len(images))
	copy(stored, images)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.store[id.String()] = stored
	return nil
}

// productFromValue converts a loosely typed record into a Product. Pairs are
// read as (id, name), maps by their id and name keys, and any other non-empty
// scalar as a bare id.
func productFromValue(v any) *models.Product {
	switch p := v.(type) {
	case nil:
		return nil
	case *models.Product:
		return p
	case models.Product:
		return productOf(p.ID.String(), p.Name)
	case []string:
		switch len(p) {
		case 0:
			return nil
		case 1:
			return productOf(p[0], "")
		default:
			return productOf(p[0], p[1])
		}
	case []any:
		switch len(p) {
		case 0:
			return nil
		case 1:
			return productOf(utils.ToString(p[0]), "")
		default:
			return productOf(utils.ToString(p[0]), utils.ToString(p[1]))
		}
	case map[string]any:
		id, ok := p["id"]
		if !ok {
			id = p["_id"]
		}
		name, ok := p["name"]
		if !ok {
			name = p["nome"]
		}
		return productOf(documentID(id), optionalString(name))
	default:
		return productOf(utils.ToString(v), "")
	}
}

func productOf(id, name string) *models.Product {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	return &models.Product{ID: models.ProductID(id), Name: name}
}

func optionalString(v any) string {
	if v == nil {
		return ""
	}
	return utils.ToString(v)
}
