package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFreezerListOwnerScope(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	alice := mustCreateUser(t, s, "alice@example.org")
	bob := mustCreateUser(t, s, "bob@example.org")
	ft := mustCreateFreezerType(t, s, "chest")

	mustCreateFreezer(t, s, "garage", ft.ID, alice.ID)
	mustCreateFreezer(t, s, "cellar", ft.ID, alice.ID)
	mustCreateFreezer(t, s, "kitchen", ft.ID, bob.ID)

	// owner filter restricts the query itself
	freezers, err := s.Freezers.List(ctx, alice.ID, false)
	require.NoError(t, err)
	assert.Len(t, freezers, 2)
	for _, f := range freezers {
		assert.Equal(t, alice.ID, f.UserID)
	}

	// scope 0 sees every row
	freezers, err = s.Freezers.List(ctx, 0, false)
	require.NoError(t, err)
	assert.Len(t, freezers, 3)
}

func TestFreezerTrashRestore(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	alice := mustCreateUser(t, s, "alice@example.org")
	ft := mustCreateFreezerType(t, s, "chest")
	f := mustCreateFreezer(t, s, "garage", ft.ID, alice.ID)

	require.NoError(t, s.Freezers.Trash(ctx, f.ID))

	_, err := s.Freezers.ByID(ctx, f.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	freezers, err := s.Freezers.List(ctx, 0, false)
	require.NoError(t, err)
	assert.Empty(t, freezers)

	// unscoped listing still shows the trashed row
	freezers, err = s.Freezers.List(ctx, 0, true)
	require.NoError(t, err)
	assert.Len(t, freezers, 1)

	require.NoError(t, s.Freezers.Restore(ctx, f.ID))

	got, err := s.Freezers.ByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "garage", got.Name)
}

func TestFreezerTrashMissingRow(t *testing.T) {
	s := newTestStores(t)
	assert.ErrorIs(t, s.Freezers.Trash(context.Background(), 12345), gorm.ErrRecordNotFound)
}

func TestFreezerByUserID(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	alice := mustCreateUser(t, s, "alice@example.org")
	bob := mustCreateUser(t, s, "bob@example.org")
	ft := mustCreateFreezerType(t, s, "chest")
	mustCreateFreezer(t, s, "garage", ft.ID, alice.ID)
	mustCreateFreezer(t, s, "kitchen", ft.ID, bob.ID)

	freezers, err := s.Freezers.ByUserID(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, freezers, 1)
	assert.Equal(t, "kitchen", freezers[0].Name)
}

func TestFreezerPurgeTerminal(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	alice := mustCreateUser(t, s, "alice@example.org")
	ft := mustCreateFreezerType(t, s, "chest")
	f := mustCreateFreezer(t, s, "garage", ft.ID, alice.ID)

	require.NoError(t, s.Freezers.Purge(ctx, f.ID))
	assert.ErrorIs(t, s.Freezers.Purge(ctx, f.ID), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, s.Freezers.Restore(ctx, f.ID), gorm.ErrRecordNotFound)
}
