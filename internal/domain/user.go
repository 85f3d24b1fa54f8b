package domain

import "time"

// User roles
const (
	RoleUser  = "User"  // Regular customer
	RoleAdmin = "Admin" // Store administrator
)

// User Model
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`                            // Primary key
	Username     string     `gorm:"size:50;unique;not null" json:"username"`         // Unique username, stored lowercase
	Email        string     `gorm:"size:100;unique;not null" json:"email"`           // Unique email address
	FullName     string     `gorm:"size:100;not null" json:"fullName"`               // Display name
	PasswordHash string     `gorm:"size:255;not null" json:"-"`                      // Bcrypt hash, never serialized
	Role         string     `gorm:"size:20;default:User;index" json:"role"`          // Role: User or Admin
	Balance      float64    `gorm:"type:decimal(18,2);not null;default:0" json:"balance"` // Store credit, never negative
	CreatedAt    time.Time  `json:"createdAt"`                                       // Timestamp of creation
	UpdatedAt    *time.Time `json:"updatedAt"`                                       // Timestamp of last update
}
