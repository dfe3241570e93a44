package images

// Cache backends for folder lookups.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds configuration for the image linker.
type Config struct {
	// ParentFolderID is the storage folder holding one sub-folder per product code.
	ParentFolderID string `mapstructure:"parent_folder_id" default:"" validate:"required"`
	// Concurrency bounds the number of codes processed at once in batch runs.
	Concurrency int `mapstructure:"concurrency" default:"4" validate:"gte=1"`
	// CacheBackend selects where resolved folders are remembered (memory, redis).
	CacheBackend string `mapstructure:"cache_backend" default:"memory" validate:"oneof=memory redis"`
}
