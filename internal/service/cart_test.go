package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gameaccount_store/internal/domain"
	"gameaccount_store/internal/errs"
)

func TestGetOrCreateCartIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	carts := NewCartService(db)
	user := seedUser(t, db, "alice", 0)

	first, err := carts.GetOrCreateCart(ctx, user.ID)
	require.NoError(t, err)
	second, err := carts.GetOrCreateCart(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, user.ID, first.UserID)
	assert.Empty(t, first.Items)
	assert.Zero(t, first.Total)
}

func TestAddItem(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	carts := NewCartService(db)
	user := seedUser(t, db, "alice", 0)
	category := seedCategory(t, db, "MOBA")
	listing := seedListing(t, db, category.ID, "Diamond Smurf", 40.00)

	view, err := carts.AddItem(ctx, user.ID, listing.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)

	// The view joins current listing data and computes the total
	item := view.Items[0]
	assert.Equal(t, listing.ID, item.GameAccountID)
	assert.Equal(t, "Diamond Smurf", item.Title)
	assert.Equal(t, "LoL", item.GameType)
	assert.InDelta(t, 40.00, item.Price, 1e-9)
	assert.InDelta(t, 40.00, view.Total, 1e-9)
}

func TestAddItemMissingListing(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	user := seedUser(t, db, "alice", 0)

	_, err := carts.AddItem(context.Background(), user.ID, 9999)
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestAddItemUnavailableListing(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	user := seedUser(t, db, "alice", 0)
	category := seedCategory(t, db, "MOBA")
	listing := seedListing(t, db, category.ID, "Sold Already", 40.00)
	require.NoError(t, db.Model(listing).Update("status", domain.StatusSold).Error)

	_, err := carts.AddItem(context.Background(), user.ID, listing.ID)
	require.Error(t, err)
	assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
	assert.Equal(t, "Game account is not available.", errs.MessageOf(err))
}

func TestAddItemDuplicate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	carts := NewCartService(db)
	user := seedUser(t, db, "alice", 0)
	category := seedCategory(t, db, "MOBA")
	listing := seedListing(t, db, category.ID, "One Per Cart", 40.00)

	_, err := carts.AddItem(ctx, user.ID, listing.ID)
	require.NoError(t, err)

	// A listing cannot appear twice in the same cart
	_, err = carts.AddItem(ctx, user.ID, listing.ID)
	require.Error(t, err)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	assert.Equal(t, "Item already in cart.", errs.MessageOf(err))
	assert.EqualValues(t, 1, countCartItems(t, db, user.ID))

	// The same listing in another user's cart is fine
	other := seedUser(t, db, "bob", 0)
	_, err = carts.AddItem(ctx, other.ID, listing.ID)
	require.NoError(t, err)
}

func TestRemoveItem(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	carts := NewCartService(db)
	user := seedUser(t, db, "alice", 0)
	category := seedCategory(t, db, "MOBA")
	first := seedListing(t, db, category.ID, "Keep", 10.00)
	second := seedListing(t, db, category.ID, "Drop", 20.00)

	_, err := carts.AddItem(ctx, user.ID, first.ID)
	require.NoError(t, err)
	view, err := carts.AddItem(ctx, user.ID, second.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)

	var dropID uint
	for _, it := range view.Items {
		if it.Title == "Drop" {
			dropID = it.ID
		}
	}
	view, err = carts.RemoveItem(ctx, user.ID, dropID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Keep", view.Items[0].Title)
	assert.InDelta(t, 10.00, view.Total, 1e-9)
}

func TestRemoveItemNotOwned(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	carts := NewCartService(db)
	owner := seedUser(t, db, "alice", 0)
	intruder := seedUser(t, db, "bob", 0)
	category := seedCategory(t, db, "MOBA")
	listing := seedListing(t, db, category.ID, "Mine", 10.00)

	view, err := carts.AddItem(ctx, owner.ID, listing.ID)
	require.NoError(t, err)

	// Items in other users' carts are invisible to the caller
	_, err = carts.RemoveItem(ctx, intruder.ID, view.Items[0].ID)
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	assert.EqualValues(t, 1, countCartItems(t, db, owner.ID))
}

func TestClearCartIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	carts := NewCartService(db)
	user := seedUser(t, db, "alice", 0)
	category := seedCategory(t, db, "MOBA")
	listing := seedListing(t, db, category.ID, "Going", 10.00)

	_, err := carts.AddItem(ctx, user.ID, listing.ID)
	require.NoError(t, err)

	view, err := carts.ClearCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	// Clearing an already empty cart succeeds and stays empty
	view, err = carts.ClearCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Total)
}

func TestDeleteCart(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	carts := NewCartService(db)
	user := seedUser(t, db, "alice", 0)
	category := seedCategory(t, db, "MOBA")
	listing := seedListing(t, db, category.ID, "In Cart", 10.00)

	view, err := carts.AddItem(ctx, user.ID, listing.ID)
	require.NoError(t, err)

	require.NoError(t, carts.DeleteCart(ctx, view.ID))

	var cartCount int64
	require.NoError(t, db.Model(&domain.Cart{}).Count(&cartCount).Error)
	assert.Zero(t, cartCount)
	var itemCount int64
	require.NoError(t, db.Model(&domain.CartItem{}).Count(&itemCount).Error)
	assert.Zero(t, itemCount)

	err = carts.DeleteCart(ctx, view.ID)
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}
