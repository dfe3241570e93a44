// Package config provides configuration management for the product image linker.
//
// It loads an optional .env file with godotenv, then reads environment
// variables through Viper. Defaults come from the `default` struct tags of
// each section and are registered by reflection, so every key can be
// overridden by its upper-cased env name (images.parent_folder_id ->
// IMAGES_PARENT_FOLDER_ID). IMAGENS_PARENT_FOLDER_ID is still accepted for
// the parent folder.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, metrics path, timeouts
//   - Storage: Drive or S3 backend settings
//   - Log: level and format
//   - Database: MongoDB, MySQL or SQLite connection
//   - Redis: shared folder cache connection
//   - Images: parent folder, batch concurrency, cache backend
//   - Product: collection and field names of product records
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
