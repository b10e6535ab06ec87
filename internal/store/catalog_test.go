package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostkeep/frostkeep/internal/domain"
)

func TestFreezerTypeNameExists(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	ft := mustCreateFreezerType(t, s, "chest")

	exists, err := s.FreezerTypes.NameExists(ctx, "chest", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.FreezerTypes.NameExists(ctx, "upright", 0)
	require.NoError(t, err)
	assert.False(t, exists)

	// the row itself is excluded during updates
	exists, err = s.FreezerTypes.NameExists(ctx, "chest", ft.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFreezerTypeNameFreedByTrash(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	ft := mustCreateFreezerType(t, s, "chest")
	require.NoError(t, s.FreezerTypes.Trash(ctx, ft.ID))

	// only live rows hold a catalog name
	exists, err := s.FreezerTypes.NameExists(ctx, "chest", 0)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProductTypeCatalogCycle(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	pt := &domain.ProductType{Name: "meat"}
	require.NoError(t, s.ProductTypes.Create(ctx, pt))

	types, err := s.ProductTypes.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, types, 1)

	require.NoError(t, s.ProductTypes.Trash(ctx, pt.ID))
	types, err = s.ProductTypes.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, types)

	require.NoError(t, s.ProductTypes.Restore(ctx, pt.ID))
	types, err = s.ProductTypes.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, types, 1)

	require.NoError(t, s.ProductTypes.Purge(ctx, pt.ID))
	types, err = s.ProductTypes.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, types)
}
