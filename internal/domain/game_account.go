package domain

import "time"

// GameAccount listing statuses. The transition is one-way: Available -> Sold.
const (
	StatusAvailable = "Available" // Listed and purchasable
	StatusSold      = "Sold"      // Purchased, off the market
)

// GameAccount Model (a sellable listing)
type GameAccount struct {
	ID             uint               `gorm:"primaryKey" json:"id"`                              // Primary key
	CategoryID     uint               `gorm:"not null;index" json:"categoryId"`                  // Foreign key to Category
	Title          string             `gorm:"size:100;not null" json:"title"`                    // Listing title
	Description    string             `json:"description"`                                       // Free-form description
	GameType       string             `gorm:"size:50;not null;index" json:"gameType"`            // Game the account belongs to
	Price          float64            `gorm:"type:decimal(18,2);not null" json:"price"`          // Current asking price
	Status         string             `gorm:"size:20;default:Available;index" json:"status"`     // Available or Sold
	Rank           string             `gorm:"size:50" json:"rank,omitempty"`                     // Optional in-game rank
	NumberOfSkins  *int               `json:"numberOfSkins,omitempty"`                           // Optional skin count
	NumberOfChamps *int               `json:"numberOfChamps,omitempty"`                          // Optional champion count
	CreatedAt      time.Time          `json:"createdAt"`                                         // Timestamp of creation
	UpdatedAt      *time.Time         `json:"updatedAt"`                                         // Timestamp of last update
	Category       Category           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"` // Owning category
	Images         []GameAccountImage `gorm:"constraint:OnDelete:CASCADE;" json:"-"`             // Attached image URLs
}

// GameAccountImage Model
type GameAccountImage struct {
	ID            uint      `gorm:"primaryKey" json:"id"`             // Primary key
	GameAccountID uint      `gorm:"not null;index" json:"gameAccountId"` // Foreign key to GameAccount
	ImageURL      string    `gorm:"size:500;not null" json:"imageUrl"` // Image location
	IsMainImage   bool      `json:"isMainImage"`                      // Cover image flag
	CreatedAt     time.Time `json:"createdAt"`                        // Timestamp of creation
}
