package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistPairUniqueness(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	user := createTestUser(t, db, "wisher@test.dev")
	pg := createTestPG(t, svc.pgs, "Wanted PG", nil)

	_, err := svc.wishlists.Add(ctx, user.ID, pg.ID)
	require.NoError(t, err)

	_, err = svc.wishlists.Add(ctx, user.ID, pg.ID)
	assert.ErrorIs(t, err, ErrAlreadyInWishlist)

	// A different user may save the same PG
	other := createTestUser(t, db, "other@test.dev")
	_, err = svc.wishlists.Add(ctx, other.ID, pg.ID)
	require.NoError(t, err)
}

func TestWishlistAddRequiresExistingPG(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	user := createTestUser(t, db, "wisher@test.dev")

	_, err := svc.wishlists.Add(ctx, user.ID, 9999)
	assert.ErrorIs(t, err, ErrPGNotFound)
}

func TestWishlistRemove(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	user := createTestUser(t, db, "wisher@test.dev")
	pg := createTestPG(t, svc.pgs, "Fleeting PG", nil)

	// Removing a pair that was never added is a not-found
	err := svc.wishlists.Remove(ctx, user.ID, pg.ID)
	assert.ErrorIs(t, err, ErrWishlistEntryNotFound)

	_, err = svc.wishlists.Add(ctx, user.ID, pg.ID)
	require.NoError(t, err)
	require.NoError(t, svc.wishlists.Remove(ctx, user.ID, pg.ID))

	entries, total, err := svc.wishlists.List(ctx, user.ID, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, entries)
}

func TestWishlistListIsOwnerScoped(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice@test.dev")
	bob := createTestUser(t, db, "bob@test.dev")

	college := createTestCollege(t, svc.colleges, "Wish College")
	first := createTestPG(t, svc.pgs, "First PG", &college.ID)
	second := createTestPG(t, svc.pgs, "Second PG", &college.ID)

	_, err := svc.wishlists.Add(ctx, alice.ID, first.ID)
	require.NoError(t, err)
	_, err = svc.wishlists.Add(ctx, alice.ID, second.ID)
	require.NoError(t, err)
	_, err = svc.wishlists.Add(ctx, bob.ID, first.ID)
	require.NoError(t, err)

	entries, total, err := svc.wishlists.List(ctx, alice.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, entries, 2)

	// Newest first, each expanded with its PG and college summary
	assert.Equal(t, second.ID, entries[0].PGID)
	require.NotNil(t, entries[0].PG)
	require.NotNil(t, entries[0].PG.College)
	assert.Equal(t, "Wish College", entries[0].PG.College.Name)

	bobEntries, total, err := svc.wishlists.List(ctx, bob.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, bobEntries, 1)
	assert.Equal(t, first.ID, bobEntries[0].PGID)
}
