package seed

import (
	"context"
	"testing"

	"applestore-clone/internal/catalog"
	"applestore-clone/internal/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_IsIdempotentAndLoadable(t *testing.T) {
	ctx := context.Background()
	docs := docstore.NewMemory()

	require.NoError(t, Apply(ctx, docs))
	require.NoError(t, Apply(ctx, docs))

	store := catalog.New(docs, nil)
	defer store.Close()
	require.True(t, store.Load(ctx))

	items := store.Items()
	assert.Len(t, items, len(DemoItems))
	for _, it := range items {
		assert.NotEmpty(t, it.Name)
	}
}
