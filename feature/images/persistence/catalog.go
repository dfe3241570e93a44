package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"product-images/feature/images/models"

	"gorm.io/gorm"
)

// ProductRecord is a row of the relational products table.
type ProductRecord struct {
	ID              uint   `gorm:"primaryKey"`
	Name            string `gorm:"size:255"`
	Barcode         string `gorm:"column:barcode;size:64;index"`
	EAN             string `gorm:"column:ean;size:64;index"`
	ImagesUpdatedAt *time.Time
}

// TableName returns the table name for GORM.
func (ProductRecord) TableName() string { return "products" }

// ProductImageRecord is one sequenced image of a product.
type ProductImageRecord struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"index;not null"`
	Position  int    `gorm:"not null"`
	Sequence  string `gorm:"size:128;not null"`
	FileID    string `gorm:"column:file_id;size:255;not null"`
}

// TableName returns the table name for GORM.
func (ProductImageRecord) TableName() string { return "product_images" }

// Catalog stores products in a relational database. It implements
// ProductStore, so a *Catalog handed to NewAdapter is used as a custom adapter.
type Catalog struct {
	db *gorm.DB
}

// NewCatalog creates a catalog over an open GORM connection.
func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// Migrate creates or updates the catalog tables.
func (c *Catalog) Migrate(ctx context.Context) error {
	return c.db.WithContext(ctx).AutoMigrate(&ProductRecord{}, &ProductImageRecord{})
}

// FindProductByCode returns the product whose barcode or EAN equals code.
func (c *Catalog) FindProductByCode(ctx context.Context, code string) (*models.Product, error) {
	var rec ProductRecord
	err := c.db.WithContext(ctx).
		Select("id", "name").
		Where("barcode = ? OR ean = ?", code, code).
		Order("id").
		Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product %s: %w", code, err)
	}

	return &models.Product{
		ID:   models.ProductID(strconv.FormatUint(uint64(rec.ID), 10)),
		Name: rec.Name,
	}, nil
}

// LinkImages replaces the product's images and stamps images_updated_at.
func (c *Catalog) LinkImages(ctx context.Context, id models.ProductID, images []models.SequencedImage) error {
	pid, err := strconv.ParseUint(id.String(), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid id %q", ErrProductNotFound, id)
	}

	rows := make([]ProductImageRecord, 0, len(images))
	for _, img := range images {
		if img.Sequence == "" || img.FileID == "" {
			continue
		}
		rows = append(rows, ProductImageRecord{
			ProductID: uint(pid),
			Position:  len(rows) + 1,
			Sequence:  img.Sequence,
			FileID:    img.FileID,
		})
	}

	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&ProductRecord{}).
			Where("id = ?", pid).
			Update("images_updated_at", gorm.Expr("CURRENT_TIMESTAMP"))
		if res.Error != nil {
			return fmt.Errorf("failed to stamp product %d: %w", pid, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %d", ErrProductNotFound, pid)
		}

		if err := tx.Where("product_id = ?", pid).Delete(&ProductImageRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear images of product %d: %w", pid, err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to insert images of product %d: %w", pid, err)
		}
		return nil
	})
}
