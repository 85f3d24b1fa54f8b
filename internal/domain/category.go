package domain

import "time"

// Category Model
type Category struct {
	ID          uint       `gorm:"primaryKey" json:"id"`           // Primary key
	Name        string     `gorm:"size:100;not null" json:"name"`  // Category name
	Description string     `gorm:"size:500" json:"description"`    // Optional description
	CreatedAt   time.Time  `json:"createdAt"`                      // Timestamp of creation
	UpdatedAt   *time.Time `json:"updatedAt"`                      // Timestamp of last update
}
