package domain

import "time"

// Cart Model (exactly one per user, created lazily)
type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`    // Primary key
	UserID    uint       `gorm:"not null;index" json:"userId"` // Foreign key to User
	CreatedAt time.Time  `json:"createdAt"`               // Timestamp of creation
	UpdatedAt *time.Time `json:"updatedAt"`               // Timestamp of last update
	Items     []CartItem `gorm:"constraint:OnDelete:CASCADE;" json:"-"` // Items in the cart
}

// CartItem Model. The (CartID, GameAccountID) pair is unique: a listing can
// appear in a cart at most once. Adding an item does not lock the listing;
// availability is re-checked at checkout.
type CartItem struct {
	ID            uint        `gorm:"primaryKey" json:"id"`                                      // Primary key
	CartID        uint        `gorm:"not null;uniqueIndex:uq_cart_items_game_account" json:"cartId"` // Foreign key to Cart
	GameAccountID uint        `gorm:"not null;uniqueIndex:uq_cart_items_game_account" json:"gameAccountId"` // Foreign key to GameAccount
	CreatedAt     time.Time   `json:"createdAt"`                                                 // When the item was added
	GameAccount   GameAccount `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`   // Linked listing
}
