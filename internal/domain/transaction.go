package domain

import "time"

// Transaction statuses
const (
	TransactionPending   = "Pending"   // Created but not finalized
	TransactionCompleted = "Completed" // Purchase settled
)

// Transaction Model: an immutable purchase receipt created at checkout time.
// Amount is a snapshot of the listing price at purchase time, not a live
// reference.
type Transaction struct {
	ID            uint        `gorm:"primaryKey" json:"id"`                          // Primary key
	UserID        uint        `gorm:"not null;index" json:"userId"`                  // Buyer
	GameAccountID uint        `gorm:"not null;index" json:"gameAccountId"`           // Purchased listing
	Amount        float64     `gorm:"type:decimal(18,2);not null" json:"amount"`     // Price paid
	Status        string      `gorm:"size:20;default:Pending;index" json:"status"`   // Pending or Completed
	Reference     string      `gorm:"size:36;not null" json:"reference"`             // Opaque receipt reference
	CreatedAt     time.Time   `json:"createdAt"`                                     // Timestamp of creation
	CompletedAt   *time.Time  `json:"completedAt"`                                   // When the purchase settled
	User          User        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"` // Buyer relation
	GameAccount   GameAccount `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"` // Listing relation
}
