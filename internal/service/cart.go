package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm" // GORM ORM library

	"gameaccount_store/internal/domain"
	"gameaccount_store/internal/errs"
)

// CartService maintains one active cart per user.
type CartService struct {
	db *gorm.DB
}

// NewCartService creates a cart service
func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// CartItemView is a cart row joined with its listing data at response time.
// The cart stores no price snapshot; prices here are always current.
type CartItemView struct {
	ID            uint      `json:"id"`            // Cart item ID
	GameAccountID uint      `json:"gameAccountId"` // Linked listing ID
	Title         string    `json:"title"`         // Listing title
	GameType      string    `json:"gameType"`      // Listing game type
	Price         float64   `json:"price"`         // Current listing price
	CreatedAt     time.Time `json:"createdAt"`     // When the item was added
}

// CartView is the canonical cart response shape.
type CartView struct {
	ID     uint           `json:"id"`     // Cart ID
	UserID uint           `json:"userId"` // Owner
	Items  []CartItemView `json:"items"`  // Items joined with listing data
	Total  float64        `json:"total"`  // Sum of current item prices
}

// GetOrCreateCart returns the user's cart view, creating an empty cart on
// first access. Idempotent.
func (s *CartService) GetOrCreateCart(ctx context.Context, userID uint) (*CartView, error) {
	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, cart)
}

// AddItem puts a listing into the user's cart and returns the refreshed view.
func (s *CartService) AddItem(ctx context.Context, userID, gameAccountID uint) (*CartView, error) {
	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	// The listing must exist
	var ga domain.GameAccount
	if err := s.db.WithContext(ctx).First(&ga, gameAccountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Game account not found.")
		}
		return nil, errs.Internal(err)
	}
	// The listing must still be on the market
	if ga.Status != domain.StatusAvailable {
		return nil, errs.InvalidState("Game account is not available.")
	}
	// A listing can appear in a cart at most once
	var existing domain.CartItem
	err = s.db.WithContext(ctx).
		Where("cart_id = ? AND game_account_id = ?", cart.ID, gameAccountID).
		First(&existing).Error
	if err == nil {
		return nil, errs.Conflict("Item already in cart.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Internal(err)
	}
	item := domain.CartItem{CartID: cart.ID, GameAccountID: gameAccountID}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		// The unique (cart_id, game_account_id) index backs the check above,
		// so a create failure here means a concurrent duplicate add
		return nil, errs.Conflict("Item already in cart.")
	}
	return s.project(ctx, cart)
}

// RemoveItem deletes an item from the caller's cart and returns the refreshed
// view. Items in other users' carts are invisible to the caller.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) (*CartView, error) {
	var item domain.CartItem
	err := s.db.WithContext(ctx).
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Cart item not found.")
		}
		return nil, errs.Internal(err)
	}
	if err := s.db.WithContext(ctx).Delete(&domain.CartItem{}, item.ID).Error; err != nil {
		return nil, errs.Internal(err)
	}
	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, cart)
}

// ClearCart deletes all items in the caller's cart. A no-op on an already
// empty cart; always succeeds.
func (s *CartService) ClearCart(ctx context.Context, userID uint) (*CartView, error) {
	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Where("cart_id = ?", cart.ID).Delete(&domain.CartItem{}).Error; err != nil {
		return nil, errs.Internal(err)
	}
	return s.project(ctx, cart)
}

// DeleteCart removes a cart and all its items regardless of owner.
// Administrative cleanup.
func (s *CartService) DeleteCart(ctx context.Context, cartID uint) error {
	var cart domain.Cart
	if err := s.db.WithContext(ctx).First(&cart, cartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("Cart not found.")
		}
		return errs.Internal(err)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&domain.CartItem{}).Error; err != nil {
			return err // Return error to rollback
		}
		return tx.Delete(&domain.Cart{}, cart.ID).Error
	})
	return wrapErr(err)
}

// getOrCreate fetches the user's cart row, creating it on first access
func (s *CartService) getOrCreate(ctx context.Context, userID uint) (*domain.Cart, error) {
	var cart domain.Cart
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		FirstOrCreate(&cart, domain.Cart{UserID: userID}).Error
	if err != nil {
		return nil, errs.Internal(err)
	}
	return &cart, nil
}

// project builds the response view from the cart's rows in one pass, joining
// listing data and computing the total from current prices
func (s *CartService) project(ctx context.Context, cart *domain.Cart) (*CartView, error) {
	var items []domain.CartItem
	err := s.db.WithContext(ctx).
		Preload("GameAccount").
		Where("cart_id = ?", cart.ID).
		Order("cart_items.id").
		Find(&items).Error
	if err != nil {
		return nil, errs.Internal(err)
	}
	view := &CartView{ID: cart.ID, UserID: cart.UserID, Items: make([]CartItemView, 0, len(items))}
	for _, it := range items {
		view.Items = append(view.Items, CartItemView{
			ID:            it.ID,
			GameAccountID: it.GameAccountID,
			Title:         it.GameAccount.Title,
			GameType:      it.GameAccount.GameType,
			Price:         it.GameAccount.Price,
			CreatedAt:     it.CreatedAt,
		})
		view.Total += it.GameAccount.Price
	}
	return view, nil
}
