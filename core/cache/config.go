package cache

// Config holds the Redis connection settings used by the shared folder cache.
type Config struct {
	// URL is a redis:// connection URL. It wins over Address.
	URL string `mapstructure:"url" default:""`
	// Address is the host:port of the Redis server.
	Address string `mapstructure:"address" default:"localhost:6379"`
	// Password authenticates the connection.
	Password string `mapstructure:"password" default:""`
	// DB selects the logical database.
	DB int `mapstructure:"db" default:"0"`
	// KeyPrefix namespaces every cache key.
	KeyPrefix string `mapstructure:"key_prefix" default:"product-images:folder:"`
	// TimeoutSeconds bounds dial, read and write operations.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"5"`
}
