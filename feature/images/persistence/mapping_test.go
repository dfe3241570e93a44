package persistence

import (
	"context"
	"testing"

	"product-images/feature/images/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapping_FindAndLink(t *testing.T) {
	store := map[string]any{
		"789": []any{"p-1", "Cadeira"},
		"111": map[string]any{"id": "p-2", "nome": "Mesa"},
		"222": "p-3",
	}
	a := NewAdapter(store, Config{}, nil)
	ctx := context.Background()

	assert.Equal(t, &models.Product{ID: "p-1", Name: "Cadeira"}, a.FindProductByCode(ctx, "789"))
	assert.Equal(t, &models.Product{ID: "p-2", Name: "Mesa"}, a.FindProductByCode(ctx, "111"))
	assert.Equal(t, &models.Product{ID: "p-3"}, a.FindProductByCode(ctx, "222"))
	assert.Nil(t, a.FindProductByCode(ctx, "000"))

	images := []models.SequencedImage{{Sequence: "789-1", FileID: "img1"}}
	require.NoError(t, a.LinkImages(ctx, "p-1", images))

	stored, ok := store["p-1"].([]models.SequencedImage)
	require.True(t, ok)
	assert.Equal(t, images, stored)

	images[0].FileID = "mutated"
	assert.Equal(t, "img1", stored[0].FileID)
}
