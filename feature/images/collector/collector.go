// Package collector lists the images of a product folder.
package collector

import (
	"context"
	"sort"
	"strings"

	"product-images/core/storage"
	"product-images/feature/images/models"

	"golang.org/x/text/cases"
)

// Collector turns a folder listing into a deduplicated, ordered image list.
type Collector struct {
	client storage.Client
}

// New creates a collector over the storage client.
func New(client storage.Client) *Collector {
	return &Collector{client: client}
}

// List returns the images directly under folderID, ordered by case-folded
// name with ties kept in listing order. Shortcuts contribute their target
// when the target is an image, under the target's id. An empty folderID
// yields no images and no query.
func (c *Collector) List(ctx context.Context, folderID string) ([]models.ImageEntry, error) {
	if folderID == "" {
		return []models.ImageEntry{}, nil
	}

	entries, err := storage.ListAll(ctx, c.client, storage.ListRequest{
		Parent:  folderID,
		Filter:  storage.FilterImages,
		OrderBy: storage.OrderName,
	})
	if err != nil {
		return nil, err
	}

	var (
		images   []models.ImageEntry
		position = make(map[string]int)
	)
	for _, e := range entries {
		img, ok := imageFromEntry(e)
		if !ok {
			continue
		}
		// Last write wins but keeps the first discovery position.
		if i, seen := position[img.ID]; seen {
			images[i] = img
			continue
		}
		position[img.ID] = len(images)
		images = append(images, img)
	}

	fold := cases.Fold()
	keys := make(map[string]string, len(images))
	for _, img := range images {
		keys[img.ID] = fold.String(img.Name)
	}
	sort.SliceStable(images, func(i, j int) bool {
		return keys[images[i].ID] < keys[images[j].ID]
	})

	if images == nil {
		images = []models.ImageEntry{}
	}
	return images, nil
}

func imageFromEntry(e storage.Entry) (models.ImageEntry, bool) {
	name := strings.TrimSpace(e.Name)

	if e.IsShortcut() {
		if e.Shortcut == nil {
			return models.ImageEntry{}, false
		}
		targetID := strings.TrimSpace(e.Shortcut.TargetID)
		targetMime := strings.TrimSpace(e.Shortcut.TargetMimeType)
		if targetID == "" || !isImage(targetMime) {
			return models.ImageEntry{}, false
		}
		return models.ImageEntry{ID: targetID, Name: orDefault(name, targetID), MimeType: targetMime}, true
	}

	mimeType := strings.TrimSpace(e.MimeType)
	if e.ID == "" || !isImage(mimeType) {
		return models.ImageEntry{}, false
	}
	return models.ImageEntry{ID: e.ID, Name: orDefault(name, e.ID), MimeType: mimeType}, true
}

func isImage(mimeType string) bool {
	return strings.HasPrefix(strings.ToLower(mimeType), "image/")
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
