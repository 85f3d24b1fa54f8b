package service

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gameaccount_store/internal/domain"
	"gameaccount_store/internal/errs"
	"gameaccount_store/internal/metrics"
)

func TestCheckoutSuccess(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	m := metrics.NewCheckoutMetrics(prometheus.NewRegistry())
	carts := NewCartService(db)
	svc := NewTransactionService(db, nil, m)

	buyer := seedUser(t, db, "alice", 100.00)
	category := seedCategory(t, db, "MOBA")
	first := seedListing(t, db, category.ID, "Diamond Smurf", 40.00)
	second := seedListing(t, db, category.ID, "Gold Main", 30.00)

	_, err := carts.AddItem(ctx, buyer.ID, first.ID)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, buyer.ID, second.ID)
	require.NoError(t, err)

	created, err := svc.Checkout(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, created, 2)

	// One Completed receipt per item, amount snapshot of the current price
	assert.Equal(t, domain.TransactionCompleted, created[0].Status)
	assert.Equal(t, domain.TransactionCompleted, created[1].Status)
	assert.InDelta(t, 40.00, created[0].Amount, 1e-9)
	assert.InDelta(t, 30.00, created[1].Amount, 1e-9)
	assert.NotEmpty(t, created[0].Reference)
	assert.NotEqual(t, created[0].Reference, created[1].Reference)
	require.NotNil(t, created[0].CompletedAt)

	// Balance conservation: balance_after = balance_before - total
	assert.InDelta(t, 30.00, reloadUser(t, db, buyer.ID).Balance, 1e-9)

	// Both listings sold, cart empty
	assert.Equal(t, domain.StatusSold, reloadListing(t, db, first.ID).Status)
	assert.Equal(t, domain.StatusSold, reloadListing(t, db, second.ID).Status)
	assert.EqualValues(t, 0, countCartItems(t, db, buyer.ID))

	// Outcome counters
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Attempts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Successes))
}

func TestCheckoutInsufficientBalance(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	carts := NewCartService(db)
	svc := NewTransactionService(db, nil, nil)

	buyer := seedUser(t, db, "bob", 50.00)
	category := seedCategory(t, db, "MOBA")
	first := seedListing(t, db, category.ID, "Listing A", 40.00)
	second := seedListing(t, db, category.ID, "Listing B", 20.00)

	_, err := carts.AddItem(ctx, buyer.ID, first.ID)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, buyer.ID, second.ID)
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, buyer.ID)
	require.Error(t, err)
	assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
	assert.Equal(t, "Insufficient balance.", errs.MessageOf(err))

	// Nothing happened: balance intact, listings on the market, cart populated
	assert.InDelta(t, 50.00, reloadUser(t, db, buyer.ID).Balance, 1e-9)
	assert.Equal(t, domain.StatusAvailable, reloadListing(t, db, first.ID).Status)
	assert.Equal(t, domain.StatusAvailable, reloadListing(t, db, second.ID).Status)
	assert.EqualValues(t, 2, countCartItems(t, db, buyer.ID))
	assert.EqualValues(t, 0, countTransactions(t, db))
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	carts := NewCartService(db)
	svc := NewTransactionService(db, nil, nil)
	buyer := seedUser(t, db, "carol", 100.00)

	// No cart at all
	_, err := svc.Checkout(ctx, buyer.ID)
	require.Error(t, err)
	assert.Equal(t, "Cart is empty.", errs.MessageOf(err))

	// Cart exists but has no items
	_, err = carts.GetOrCreateCart(ctx, buyer.ID)
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, buyer.ID)
	require.Error(t, err)
	assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
	assert.Equal(t, "Cart is empty.", errs.MessageOf(err))
}

func TestCheckoutUnavailableListingRollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	carts := NewCartService(db)
	svc := NewTransactionService(db, nil, nil)

	buyer := seedUser(t, db, "dave", 100.00)
	category := seedCategory(t, db, "FPS")
	first := seedListing(t, db, category.ID, "Still Here", 10.00)
	second := seedListing(t, db, category.ID, "Gone Already", 20.00)

	_, err := carts.AddItem(ctx, buyer.ID, first.ID)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, buyer.ID, second.ID)
	require.NoError(t, err)

	// The second listing sells elsewhere after it was added to the cart
	require.NoError(t, db.Model(&domain.GameAccount{}).
		Where("id = ?", second.ID).
		Update("status", domain.StatusSold).Error)

	_, err = svc.Checkout(ctx, buyer.ID)
	require.Error(t, err)
	assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
	assert.Contains(t, errs.MessageOf(err), "Gone Already")
	assert.Contains(t, errs.MessageOf(err), "no longer available")

	// All-or-nothing: no partial purchase of the first listing
	assert.InDelta(t, 100.00, reloadUser(t, db, buyer.ID).Balance, 1e-9)
	assert.Equal(t, domain.StatusAvailable, reloadListing(t, db, first.ID).Status)
	assert.EqualValues(t, 2, countCartItems(t, db, buyer.ID))
	assert.EqualValues(t, 0, countTransactions(t, db))
}

func TestCheckoutPriceReadFresh(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	carts := NewCartService(db)
	svc := NewTransactionService(db, nil, nil)

	buyer := seedUser(t, db, "erin", 100.00)
	category := seedCategory(t, db, "MOBA")
	listing := seedListing(t, db, category.ID, "Repriced", 40.00)

	_, err := carts.AddItem(ctx, buyer.ID, listing.ID)
	require.NoError(t, err)

	// Price drifts between add-to-cart and checkout; checkout pays the
	// current price, not the one seen at add time
	require.NoError(t, db.Model(&domain.GameAccount{}).
		Where("id = ?", listing.ID).
		Update("price", 55.00).Error)

	created, err := svc.Checkout(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.InDelta(t, 55.00, created[0].Amount, 1e-9)
	assert.InDelta(t, 45.00, reloadUser(t, db, buyer.ID).Balance, 1e-9)
}

func TestCheckoutConcurrentSameListing(t *testing.T) {
	// Two buyers race for the same listing; exactly one wins each round
	for i := 0; i < 25; i++ {
		db := newTestDB(t)
		ctx := context.Background()
		carts := NewCartService(db)
		svc := NewTransactionService(db, nil, nil)

		alice := seedUser(t, db, "alice", 100.00)
		bob := seedUser(t, db, "bob", 100.00)
		category := seedCategory(t, db, "MOBA")
		listing := seedListing(t, db, category.ID, "Contested", 10.00)

		_, err := carts.AddItem(ctx, alice.ID, listing.ID)
		require.NoError(t, err)
		_, err = carts.AddItem(ctx, bob.ID, listing.ID)
		require.NoError(t, err)

		results := make([]error, 2)
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, results[0] = svc.Checkout(ctx, alice.ID)
		}()
		go func() {
			defer wg.Done()
			_, results[1] = svc.Checkout(ctx, bob.ID)
		}()
		wg.Wait()

		var wins, losses int
		for _, err := range results {
			if err == nil {
				wins++
			} else {
				losses++
				assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
				assert.Contains(t, errs.MessageOf(err), "no longer available")
			}
		}
		require.Equal(t, 1, wins, "exactly one checkout must win")
		require.Equal(t, 1, losses)

		// No double sale: one Completed receipt, one debit between the two
		assert.EqualValues(t, 1, countTransactions(t, db))
		assert.Equal(t, domain.StatusSold, reloadListing(t, db, listing.ID).Status)
		total := reloadUser(t, db, alice.ID).Balance + reloadUser(t, db, bob.ID).Balance
		assert.InDelta(t, 190.00, total, 1e-9)
	}
}

func TestTransactionHistory(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	carts := NewCartService(db)
	svc := NewTransactionService(db, nil, nil)

	buyer := seedUser(t, db, "frank", 100.00)
	other := seedUser(t, db, "grace", 100.00)
	category := seedCategory(t, db, "MOBA")
	first := seedListing(t, db, category.ID, "First Buy", 10.00)
	second := seedListing(t, db, category.ID, "Second Buy", 20.00)
	theirs := seedListing(t, db, category.ID, "Someone Else's", 5.00)

	_, err := carts.AddItem(ctx, buyer.ID, first.ID)
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, buyer.ID)
	require.NoError(t, err)

	_, err = carts.AddItem(ctx, buyer.ID, second.ID)
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, buyer.ID)
	require.NoError(t, err)

	_, err = carts.AddItem(ctx, other.ID, theirs.ID)
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, other.ID)
	require.NoError(t, err)

	// Own history only, newest first, listing titles joined
	history, err := svc.ListByUser(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Second Buy", history[0].Title)
	assert.Equal(t, "First Buy", history[1].Title)
	assert.Equal(t, "frank", history[0].Username)

	// Admin view sees everything
	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
