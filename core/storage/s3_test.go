package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"product-images/core/storage"
	"product-images/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func objectChannel(objects ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(objects))
	for _, obj := range objects {
		ch <- obj
	}
	close(ch)
	return ch
}

func TestNewObjectStore(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.S3Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
			Bucket:    "test-bucket",
			Region:    "us-east-1",
		}

		store, err := storage.NewObjectStore(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, store)
	})

	t.Run("EndpointWithHTTP", func(t *testing.T) {
		cfg := storage.S3Config{
			Endpoint:  "http://localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
		}

		store, err := storage.NewObjectStore(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, store)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.S3Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		}

		store, err := storage.NewObjectStore(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, store)
	})
}

func TestS3Client_ListFolders(t *testing.T) {
	store := new(mocks.ObjectStore)
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	store.On("ListObjects", mock.Anything, "assets", minio.ListObjectsOptions{Prefix: "Imagens/", Recursive: false}).
		Return(objectChannel(
			minio.ObjectInfo{Key: "Imagens/"},
			minio.ObjectInfo{Key: "Imagens/123/", LastModified: older},
			minio.ObjectInfo{Key: "Imagens/789/", LastModified: older},
			minio.ObjectInfo{Key: "Imagens/readme.txt"},
			minio.ObjectInfo{Key: "Imagens/456/", LastModified: newer},
		))

	client := storage.NewS3Client(store, "assets")
	page, err := client.List(context.Background(), storage.ListRequest{
		Parent:  "Imagens",
		Filter:  storage.FilterFolders,
		OrderBy: storage.OrderModifiedDesc,
	})
	require.NoError(t, err)
	require.Len(t, page.Entries, 3)
	assert.Equal(t, "Imagens/456/", page.Entries[0].ID)
	assert.Equal(t, "456", page.Entries[0].Name)
	assert.Equal(t, storage.MimeFolder, page.Entries[0].MimeType)
	assert.Empty(t, page.NextPageToken)
}

func TestS3Client_ListFolderByName(t *testing.T) {
	store := new(mocks.ObjectStore)
	store.On("ListObjects", mock.Anything, "assets", mock.Anything).
		Return(objectChannel(
			minio.ObjectInfo{Key: "Imagens/123/"},
			minio.ObjectInfo{Key: "Imagens/789/"},
		))

	client := storage.NewS3Client(store, "assets")
	page, err := client.List(context.Background(), storage.ListRequest{
		Parent: "Imagens/",
		Name:   "789",
		Filter: storage.FilterFolders,
	})
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, "Imagens/789/", page.Entries[0].ID)
}

func TestS3Client_ListImages(t *testing.T) {
	store := new(mocks.ObjectStore)
	store.On("ListObjects", mock.Anything, "assets", minio.ListObjectsOptions{Prefix: "Imagens/789/", Recursive: false}).
		Return(objectChannel(
			minio.ObjectInfo{Key: "Imagens/789/b.PNG"},
			minio.ObjectInfo{Key: "Imagens/789/a.jpg"},
			minio.ObjectInfo{Key: "Imagens/789/notes.pdf"},
			minio.ObjectInfo{Key: "Imagens/789/raw", ContentType: "image/heic"},
			minio.ObjectInfo{Key: "Imagens/789/nested/"},
		))

	client := storage.NewS3Client(store, "assets")
	page, err := client.List(context.Background(), storage.ListRequest{
		Parent:  "Imagens/789/",
		Filter:  storage.FilterImages,
		OrderBy: storage.OrderName,
	})
	require.NoError(t, err)
	require.Len(t, page.Entries, 3)
	assert.Equal(t, "a.jpg", page.Entries[0].Name)
	assert.Equal(t, "image/jpeg", page.Entries[0].MimeType)
	assert.Equal(t, "Imagens/789/b.PNG", page.Entries[1].ID)
	assert.Equal(t, "image/png", page.Entries[1].MimeType)
	assert.Equal(t, "image/heic", page.Entries[2].MimeType)
	assert.False(t, page.Entries[0].IsShortcut())
}

func TestS3Client_ListError(t *testing.T) {
	store := new(mocks.ObjectStore)
	store.On("ListObjects", mock.Anything, "assets", mock.Anything).
		Return(objectChannel(minio.ObjectInfo{Err: errors.New("access denied")}))

	client := storage.NewS3Client(store, "assets")
	_, err := client.List(context.Background(), storage.ListRequest{Parent: "Imagens", Filter: storage.FilterFolders})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestListAll_FollowsPageTokens(t *testing.T) {
	client := new(mocks.Client)
	first := storage.ListRequest{Parent: "root", Filter: storage.FilterFolders}
	second := first
	second.PageToken = "next"

	client.On("List", mock.Anything, first).Return(&storage.Page{
		Entries:       []storage.Entry{{ID: "a"}},
		NextPageToken: "next",
	}, nil).Once()
	client.On("List", mock.Anything, second).Return(&storage.Page{
		Entries: []storage.Entry{{ID: "b"}},
	}, nil).Once()

	entries, err := storage.ListAll(context.Background(), client, first)
	require.NoError(t, err)
	assert.Equal(t, []storage.Entry{{ID: "a"}, {ID: "b"}}, entries)
	client.AssertExpectations(t)
}
