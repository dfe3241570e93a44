package storage

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/http"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore defines the object storage operations used by the S3 backend.
type ObjectStore interface {
	// BucketExists checks if a bucket exists.
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	// ListObjects lists objects in a bucket.
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

// NewObjectStore creates a new Minio client based on the configuration.
func NewObjectStore(cfg S3Config) (ObjectStore, error) {
	// Minio expects endpoint without scheme
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	// Minio connects lazily; transport timeouts bound the first real call.

	return minioClient, nil
}

// S3Client maps the folder model onto an object store: a folder is a key
// prefix ending in "/", its identifier is that prefix, and files are the
// objects directly below it. Object stores have no shortcuts.
type S3Client struct {
	store  ObjectStore
	bucket string
}

// NewS3Client creates a storage client over the given bucket.
func NewS3Client(store ObjectStore, bucket string) *S3Client {
	return &S3Client{store: store, bucket: bucket}
}

// List returns every matching entry in a single page.
func (c *S3Client) List(ctx context.Context, req ListRequest) (*Page, error) {
	prefix := folderPrefix(req.Parent)
	opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: false}

	var entries []Entry
	for obj := range c.store.ListObjects(ctx, c.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects under %s: %w", prefix, obj.Err)
		}
		if obj.Key == prefix {
			continue
		}

		entry, ok := entryFromObject(obj, req.Filter)
		if !ok {
			continue
		}
		if req.Name != "" && entry.Name != req.Name {
			continue
		}
		entry.Parents = []string{prefix}
		entries = append(entries, entry)
	}

	switch req.OrderBy {
	case OrderModifiedDesc:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].ModifiedTime.After(entries[j].ModifiedTime)
		})
	case OrderName:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Name < entries[j].Name
		})
	}

	return &Page{Entries: entries}, nil
}

func entryFromObject(obj minio.ObjectInfo, filter Filter) (Entry, bool) {
	isDir := strings.HasSuffix(obj.Key, "/")
	name := path.Base(strings.TrimSuffix(obj.Key, "/"))

	if filter == FilterFolders {
		if !isDir {
			return Entry{}, false
		}
		return Entry{
			ID:           obj.Key,
			Name:         name,
			MimeType:     MimeFolder,
			ModifiedTime: obj.LastModified,
		}, true
	}

	if isDir {
		return Entry{}, false
	}
	contentType := obj.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(path.Ext(obj.Key)))
	}
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return Entry{}, false
	}
	return Entry{
		ID:           obj.Key,
		Name:         name,
		MimeType:     contentType,
		ModifiedTime: obj.LastModified,
	}, true
}

func folderPrefix(parent string) string {
	parent = strings.Trim(parent, "/")
	if parent == "" {
		return ""
	}
	return parent + "/"
}
