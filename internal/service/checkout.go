package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"       // Receipt reference codes
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library

	"gameaccount_store/internal/domain"
	"gameaccount_store/internal/errs"
	"gameaccount_store/internal/metrics"
	"gameaccount_store/internal/utils"
)

// TransactionService owns the checkout atomic unit and the receipt read paths.
type TransactionService struct {
	db      *gorm.DB
	rdb     *redis.Client            // Optional, for cache invalidation
	metrics *metrics.CheckoutMetrics // Optional, checkout outcome counters
}

// NewTransactionService creates a transaction service. rdb and m may be nil.
func NewTransactionService(db *gorm.DB, rdb *redis.Client, m *metrics.CheckoutMetrics) *TransactionService {
	return &TransactionService{db: db, rdb: rdb, metrics: m}
}

// Checkout failure reasons used as metric labels
const (
	reasonEmptyCart           = "empty_cart"
	reasonListingUnavailable  = "listing_unavailable"
	reasonInsufficientBalance = "insufficient_balance"
	reasonInternal            = "internal"
)

// Checkout converts the caller's cart into completed purchases as a single
// atomic unit: one Completed transaction per item (amount = current price),
// each listing flipped Available -> Sold, the balance debited by the total,
// and the cart cleared. Any violation rolls the whole unit back.
//
// Both contended writes are guarded conditional updates, so under concurrent
// checkouts of the same listing exactly one caller's status flip affects a
// row; the loser's unit aborts and surfaces ListingUnavailable.
func (s *TransactionService) Checkout(ctx context.Context, userID uint) ([]domain.Transaction, error) {
	if s.metrics != nil {
		s.metrics.Attempts.Inc()
	}
	var created []domain.Transaction
	var total float64
	reason := reasonInternal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1) The cart must exist and be non-empty
		var cart domain.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				reason = reasonEmptyCart
				return errs.InvalidState("Cart is empty.")
			}
			return errs.Internal(err)
		}
		var items []domain.CartItem
		if err := tx.Preload("GameAccount").Where("cart_id = ?", cart.ID).Order("cart_items.id").Find(&items).Error; err != nil {
			return errs.Internal(err)
		}
		if len(items) == 0 {
			reason = reasonEmptyCart
			return errs.InvalidState("Cart is empty.")
		}

		// 2) Every listing must still be Available; no partial purchase
		total = 0
		for _, it := range items {
			if it.GameAccount.Status != domain.StatusAvailable {
				reason = reasonListingUnavailable
				return errs.InvalidStatef("Game account %s is no longer available.", it.GameAccount.Title)
			}
			total += it.GameAccount.Price
		}

		// 3) The balance must cover the total of current prices
		var user domain.User
		if err := tx.First(&user, userID).Error; err != nil {
			return errs.Internal(err)
		}
		if user.Balance < total {
			reason = reasonInsufficientBalance
			return errs.InvalidState("Insufficient balance.")
		}

		// Debit once for the whole cart. The WHERE guard re-validates the
		// balance at write time, so a concurrent debit cannot overdraw.
		debit := tx.Model(&domain.User{}).
			Where("id = ? AND balance >= ?", userID, total).
			Update("balance", gorm.Expr("balance - ?", total))
		if debit.Error != nil {
			return errs.Internal(debit.Error)
		}
		if debit.RowsAffected == 0 {
			reason = reasonInsufficientBalance
			return errs.InvalidState("Insufficient balance.")
		}

		now := time.Now()
		for _, it := range items {
			ga := it.GameAccount
			// Guarded one-way flip: zero rows means another checkout already
			// sold this listing, abort the whole unit
			flip := tx.Model(&domain.GameAccount{}).
				Where("id = ? AND status = ?", ga.ID, domain.StatusAvailable).
				Updates(map[string]any{"status": domain.StatusSold, "updated_at": now})
			if flip.Error != nil {
				return errs.Internal(flip.Error)
			}
			if flip.RowsAffected == 0 {
				reason = reasonListingUnavailable
				return errs.InvalidStatef("Game account %s is no longer available.", ga.Title)
			}
			receipt := domain.Transaction{
				UserID:        userID,
				GameAccountID: ga.ID,
				Amount:        ga.Price, // Price snapshot at purchase time
				Status:        domain.TransactionCompleted,
				Reference:     uuid.NewString(),
				CompletedAt:   &now,
			}
			if err := tx.Create(&receipt).Error; err != nil {
				return errs.Internal(err)
			}
			created = append(created, receipt)
		}

		// Clear the cart inside the same unit
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&domain.CartItem{}).Error; err != nil {
			return errs.Internal(err)
		}
		return nil
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.Failures.WithLabelValues(reason).Inc()
		}
		return nil, wrapErr(err)
	}
	if s.metrics != nil {
		s.metrics.Successes.Inc()
	}
	// Log the settled purchase
	logrus.WithFields(logrus.Fields{
		"user_id": userID,     // Buyer
		"items":   len(created), // Listings purchased
		"total":   total,      // Amount debited
	}).Info("Checkout completed")
	s.invalidateCaches(ctx, userID)
	return created, nil
}

// TransactionView is a receipt joined with buyer and listing data.
type TransactionView struct {
	ID            uint       `json:"id"`            // Receipt ID
	UserID        uint       `json:"userId"`        // Buyer
	Username      string     `json:"username"`      // Buyer username
	GameAccountID uint       `json:"gameAccountId"` // Purchased listing
	Title         string     `json:"title"`         // Listing title
	Amount        float64    `json:"amount"`        // Price paid
	Status        string     `json:"status"`        // Receipt status
	Reference     string     `json:"reference"`     // Opaque receipt reference
	CreatedAt     time.Time  `json:"createdAt"`     // Timestamp of creation
	CompletedAt   *time.Time `json:"completedAt"`   // When the purchase settled
}

// ListByUser returns the caller's transaction history, newest first.
func (s *TransactionService) ListByUser(ctx context.Context, userID uint) ([]TransactionView, error) {
	// Serve from cache when possible
	cacheKey := "txhistory:user:" + strconv.Itoa(int(userID))
	if s.rdb != nil {
		var cached []TransactionView
		if found, err := utils.GetCache(ctx, s.rdb, cacheKey, &cached); err == nil && found {
			return cached, nil
		}
	}
	var list []domain.Transaction
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("GameAccount").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	if err != nil {
		return nil, errs.Internal(err)
	}
	views := projectTransactions(list)
	if s.rdb != nil {
		_ = utils.SetCache(ctx, s.rdb, cacheKey, views, 60*time.Second)
	}
	return views, nil
}

// ListAll returns every transaction with user and listing joined, newest
// first. Admin only.
func (s *TransactionService) ListAll(ctx context.Context) ([]TransactionView, error) {
	var list []domain.Transaction
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("GameAccount").
		Order("created_at DESC, id DESC").
		Find(&list).Error
	if err != nil {
		return nil, errs.Internal(err)
	}
	return projectTransactions(list), nil
}

// projectTransactions maps receipt rows to the response view
func projectTransactions(list []domain.Transaction) []TransactionView {
	views := make([]TransactionView, 0, len(list))
	for _, t := range list {
		views = append(views, TransactionView{
			ID:            t.ID,
			UserID:        t.UserID,
			Username:      t.User.Username,
			GameAccountID: t.GameAccountID,
			Title:         t.GameAccount.Title,
			Amount:        t.Amount,
			Status:        t.Status,
			Reference:     t.Reference,
			CreatedAt:     t.CreatedAt,
			CompletedAt:   t.CompletedAt,
		})
	}
	return views
}

// invalidateCaches drops catalog and history cache entries made stale by a
// checkout (status flips, new receipts)
func (s *TransactionService) invalidateCaches(ctx context.Context, userID uint) {
	if s.rdb == nil {
		return
	}
	_ = utils.DeleteCacheByPrefix(ctx, s.rdb, "catalog:")
	_ = utils.DeleteCache(ctx, s.rdb, "txhistory:user:"+strconv.Itoa(int(userID)))
}
