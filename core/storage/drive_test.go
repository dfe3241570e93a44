package storage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name string
		req  ListRequest
		want string
	}{
		{
			name: "FolderByName",
			req:  ListRequest{Parent: "root-1", Name: "789", Filter: FilterFolders},
			want: "'root-1' in parents and trashed=false and mimeType='application/vnd.google-apps.folder' and name='789'",
		},
		{
			name: "AllFolders",
			req:  ListRequest{Parent: "root-1", Filter: FilterFolders},
			want: "'root-1' in parents and trashed=false and mimeType='application/vnd.google-apps.folder'",
		},
		{
			name: "ImagesAndShortcuts",
			req:  ListRequest{Parent: "folder-9", Filter: FilterImages},
			want: "'folder-9' in parents and trashed=false and (mimeType contains 'image/' or mimeType='application/vnd.google-apps.shortcut')",
		},
		{
			name: "EscapesQuotesAndBackslashes",
			req:  ListRequest{Parent: "root-1", Name: `O'Brien\1`, Filter: FilterFolders},
			want: `'root-1' in parents and trashed=false and mimeType='application/vnd.google-apps.folder' and name='O\'Brien\\1'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildQuery(tt.req))
		})
	}
}

func TestDriveClient_List(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []map[string]string
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/files") {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		mu.Lock()
		calls = append(calls, map[string]string{
			"q":                         q.Get("q"),
			"orderBy":                   q.Get("orderBy"),
			"pageToken":                 q.Get("pageToken"),
			"pageSize":                  q.Get("pageSize"),
			"corpora":                   q.Get("corpora"),
			"supportsAllDrives":         q.Get("supportsAllDrives"),
			"includeItemsFromAllDrives": q.Get("includeItemsFromAllDrives"),
		})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if q.Get("pageToken") == "" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"nextPageToken": "page-2",
				"files": []map[string]any{
					{"id": "1", "name": "IMG_A.JPG", "mimeType": "image/jpeg", "modifiedTime": "2024-05-01T10:00:00Z"},
					{
						"id":       "2",
						"name":     "atalho",
						"mimeType": MimeShortcut,
						"shortcutDetails": map[string]any{
							"targetId":       "real-5",
							"targetMimeType": "image/webp",
						},
					},
				},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"files": []map[string]any{
				{"id": "4", "name": "IMG_B.HEIC", "mimeType": "image/heic"},
			},
		})
	}))
	defer srv.Close()

	ctx := context.Background()
	client, err := NewDriveClient(ctx, DriveConfig{Endpoint: srv.URL + "/drive/v3/"}, option.WithoutAuthentication())
	require.NoError(t, err)

	entries, err := ListAll(ctx, client, ListRequest{Parent: "folder-123", Filter: FilterImages, OrderBy: OrderName})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "1", entries[0].ID)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), entries[0].ModifiedTime.UTC())
	assert.True(t, entries[1].IsShortcut())
	require.NotNil(t, entries[1].Shortcut)
	assert.Equal(t, "real-5", entries[1].Shortcut.TargetID)
	assert.Equal(t, "image/webp", entries[1].Shortcut.TargetMimeType)
	assert.Equal(t, "4", entries[2].ID)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, calls, 2)
	assert.Equal(t, BuildQuery(ListRequest{Parent: "folder-123", Filter: FilterImages}), calls[0]["q"])
	assert.Equal(t, "name", calls[0]["orderBy"])
	assert.Equal(t, "1000", calls[0]["pageSize"])
	assert.Equal(t, "allDrives", calls[0]["corpora"])
	assert.Equal(t, "true", calls[0]["supportsAllDrives"])
	assert.Equal(t, "true", calls[0]["includeItemsFromAllDrives"])
	assert.Equal(t, "", calls[0]["pageToken"])
	assert.Equal(t, "page-2", calls[1]["pageToken"])
}

func TestDriveClient_ListError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"forbidden"}}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	client, err := NewDriveClient(ctx, DriveConfig{Endpoint: srv.URL + "/drive/v3/"}, option.WithoutAuthentication())
	require.NoError(t, err)

	_, err = ListAll(ctx, client, ListRequest{Parent: "root", Name: "789", Filter: FilterFolders})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden")
}
