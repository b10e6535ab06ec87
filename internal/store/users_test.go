package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRoundTrip(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	created := mustCreateUser(t, s, "jean@example.org")
	require.NotZero(t, created.ID)
	require.NotEmpty(t, created.AccountID)

	got, err := s.Users.ByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)
	assert.Equal(t, created.Firstname, got.Firstname)
	assert.Equal(t, created.AccountID, got.AccountID)
}

func TestUserTrashRestoreCycle(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	user := mustCreateUser(t, s, "jean@example.org")

	require.NoError(t, s.Users.Trash(ctx, user.ID))

	_, err := s.Users.ByID(ctx, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// trashed rows stay reachable through the unscoped lookup
	_, err = s.Users.ByIDAny(ctx, user.ID)
	require.NoError(t, err)

	users, err := s.Users.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, users)

	require.NoError(t, s.Users.Restore(ctx, user.ID))

	users, err = s.Users.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserPurgeIsTerminal(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	user := mustCreateUser(t, s, "jean@example.org")

	require.NoError(t, s.Users.Purge(ctx, user.ID))

	_, err := s.Users.ByIDAny(ctx, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// double purge reports a missing row
	assert.ErrorIs(t, s.Users.Purge(ctx, user.ID), gorm.ErrRecordNotFound)

	// restore cannot resurrect a purged row either
	assert.ErrorIs(t, s.Users.Restore(ctx, user.ID), gorm.ErrRecordNotFound)
}

func TestUserPurgeOfTrashedRow(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	user := mustCreateUser(t, s, "jean@example.org")
	require.NoError(t, s.Users.Trash(ctx, user.ID))
	require.NoError(t, s.Users.Purge(ctx, user.ID))

	_, err := s.Users.ByIDAny(ctx, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestEmailTakenIncludesTrashedRows(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	user := mustCreateUser(t, s, "jean@example.org")

	taken, err := s.Users.EmailTaken(ctx, "jean@example.org", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	// a trashed account still reserves its email
	require.NoError(t, s.Users.Trash(ctx, user.ID))
	taken, err = s.Users.EmailTaken(ctx, "jean@example.org", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	// only a purge frees it
	require.NoError(t, s.Users.Purge(ctx, user.ID))
	taken, err = s.Users.EmailTaken(ctx, "jean@example.org", 0)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestEmailTakenExcludesSelf(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	user := mustCreateUser(t, s, "jean@example.org")

	taken, err := s.Users.EmailTaken(ctx, "jean@example.org", user.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUserSearch(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	mustCreateUser(t, s, "jean@example.org")
	other := mustCreateUser(t, s, "marie@other.org")
	other.Firstname = "marie"
	require.NoError(t, s.Users.Update(ctx, other))

	users, err := s.Users.Search(ctx, "mari")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "marie@other.org", users[0].Email)

	// matches across email too
	users, err = s.Users.Search(ctx, "example.org")
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
