package mocks

import (
	"context"

	"product-images/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of storage.Client
type Client struct {
	mock.Mock
}

func (m *Client) List(ctx context.Context, req storage.ListRequest) (*storage.Page, error) {
	args := m.Called(ctx, req)
	if page, ok := args.Get(0).(*storage.Page); ok {
		return page, args.Error(1)
	}
	return nil, args.Error(1)
}

// ObjectStore is a mock implementation of storage.ObjectStore
type ObjectStore struct {
	mock.Mock
}

func (m *ObjectStore) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *ObjectStore) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	args := m.Called(ctx, bucketName, opts)
	if ch, ok := args.Get(0).(<-chan minio.ObjectInfo); ok {
		return ch
	}
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}
