// Package storage abstracts the remote file-storage service that holds the
// per-product image folders.
//
// The Client interface is a single paginated List operation: a parent folder,
// an optional exact name, a filter (folders, or images plus shortcuts), an
// ordering hint and a page token. Callers never build service queries
// themselves; ListAll follows page tokens to exhaustion.
//
// # Backends
//
//   - DriveClient: Google Drive v3, across shared drives. Names are escaped
//     for the Drive query language (see BuildQuery).
//   - S3Client: S3/MinIO, where a folder is a key prefix and its identifier is
//     the prefix itself. Object stores have no shortcuts.
//
// The Client interface is mocked in core/storage/mocks for unit tests.
//
// # Usage
//
//	client, err := storage.New(ctx, cfg.Storage)
//	entries, err := storage.ListAll(ctx, client, storage.ListRequest{
//	    Parent: parentID,
//	    Filter: storage.FilterFolders,
//	})
package storage
