package storage

// Storage backends.
const (
	BackendDrive = "drive"
	BackendS3    = "s3"
)

// Config holds configuration for the storage provider.
type Config struct {
	// Backend selects the storage service (drive, s3).
	Backend string `mapstructure:"backend" default:"drive" validate:"oneof=drive s3"`
	// Drive holds the Google Drive settings.
	Drive DriveConfig `mapstructure:"drive"`
	// S3 holds the S3/MinIO settings.
	S3 S3Config `mapstructure:"s3"`
}

// DriveConfig holds configuration for the Google Drive backend.
type DriveConfig struct {
	// CredentialsFile is the path to a service account JSON key.
	CredentialsFile string `mapstructure:"credentials_file" default:""`
	// CredentialsJSON is an inline service account JSON key. It wins over CredentialsFile.
	CredentialsJSON string `mapstructure:"credentials_json" default:""`
	// Endpoint overrides the API base URL (emulators, tests).
	Endpoint string `mapstructure:"endpoint" default:""`
	// PageSize is the number of entries requested per page.
	PageSize int64 `mapstructure:"page_size" default:"1000"`
}

// S3Config holds configuration for the S3/MinIO backend.
type S3Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the bucket holding the product image folders.
	Bucket string `mapstructure:"bucket" default:"assets"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
