package images

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"product-images/core/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T, store map[string]any) (*fiber.App, *fixture) {
	f := newFixture(t, store)
	app := fiber.New()
	NewHandler(f.service).RegisterRoutes(app)
	return app, f
}

func TestHandleProcess(t *testing.T) {
	app, f := setupTestApp(t, map[string]any{"789": "abc123"})
	f.expectFolder("789", "folder-1")
	f.expectImages("folder-1", jpeg("img1", "a.jpg"))

	req := httptest.NewRequest("POST", "/images/789", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "789", body["code"])
	assert.Equal(t, true, body["linked"])
}

func TestHandleProcess_NotLinked(t *testing.T) {
	app, _ := setupTestApp(t, map[string]any{})

	req := httptest.NewRequest("POST", "/images/000", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["linked"])
}

func TestHandleProcess_StorageError(t *testing.T) {
	app, f := setupTestApp(t, map[string]any{"789": "abc123"})
	f.client.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("forbidden"))

	req := httptest.NewRequest("POST", "/images/789", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestHandleBatch(t *testing.T) {
	app, f := setupTestApp(t, map[string]any{"789": "abc123"})
	f.expectFolder("789", "folder-1")
	f.expectImages("folder-1", jpeg("img1", "a.jpg"))

	req := httptest.NewRequest("POST", "/images/batch", strings.NewReader(`{"codes":["789","000"]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var report BatchReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, []string{"789"}, report.Linked)
	assert.Equal(t, []string{"000"}, report.Skipped)
	assert.Empty(t, report.Failed)
}

func TestHandleBatch_BadRequest(t *testing.T) {
	app, _ := setupTestApp(t, map[string]any{})

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"codes":`},
		{"no codes", `{"codes":[]}`},
		{"blank codes", `{"codes":["", "  "]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/images/batch", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)

			require.NoError(t, err)
			assert.Equal(t, 400, resp.StatusCode)
		})
	}
}

func TestHandleWarmupAndClear(t *testing.T) {
	app, f := setupTestApp(t, map[string]any{})
	f.client.On("List", mock.Anything, storage.ListRequest{
		Parent:  testParent,
		Filter:  storage.FilterFolders,
		OrderBy: storage.OrderName,
	}).Return(&storage.Page{Entries: []storage.Entry{{ID: "folder-1", Name: "789"}}}, nil)

	resp, err := app.Test(httptest.NewRequest("POST", "/images/cache/warmup", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(1), body["inserted"])

	resp, err = app.Test(httptest.NewRequest("DELETE", "/images/cache", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestHandleWarmup_Error(t *testing.T) {
	app, f := setupTestApp(t, map[string]any{})
	f.client.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	resp, err := app.Test(httptest.NewRequest("POST", "/images/cache/warmup", nil))

	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}
