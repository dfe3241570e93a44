package persistence

// Config names the product collection and the fields the document strategy
// reads and writes.
type Config struct {
	// CollectionName is the product collection used when the handle is a database.
	CollectionName string `mapstructure:"collection_name" default:"products"`
	// BarcodeField and EANField are the two alternate fields holding the product code.
	BarcodeField string `mapstructure:"barcode_field" default:"codbarras"`
	EANField     string `mapstructure:"ean_field" default:"ean"`
	// NameField holds the product display name.
	NameField string `mapstructure:"name_field" default:"nome"`
	// ImagesField receives the sequenced image list.
	ImagesField string `mapstructure:"drive_images_field" default:"driveImages"`
	// ImagesUpdatedAtField receives the server timestamp of the last link.
	// Defaults to ImagesField + "UpdatedAt".
	ImagesUpdatedAtField string `mapstructure:"drive_images_updated_at_field" default:""`
}

// DefaultConfig returns the field layout of the product collection.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.CollectionName == "" {
		c.CollectionName = "products"
	}
	if c.BarcodeField == "" {
		c.BarcodeField = "codbarras"
	}
	if c.EANField == "" {
		c.EANField = "ean"
	}
	if c.NameField == "" {
		c.NameField = "nome"
	}
	if c.ImagesField == "" {
		c.ImagesField = "driveImages"
	}
	if c.ImagesUpdatedAtField == "" {
		c.ImagesUpdatedAtField = c.ImagesField + "UpdatedAt"
	}
	return c
}
