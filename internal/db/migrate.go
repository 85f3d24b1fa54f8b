package db

import (
	"strings"

	"github.com/sirupsen/logrus"

	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library

	"gameaccount_store/internal/domain"
)

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.GameAccount{},
		&domain.GameAccountImage{},
		&domain.Cart{},
		&domain.CartItem{},
		&domain.Transaction{},
	)
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
	return db
}

// SeedAdmin creates the administrator account when absent. A no-op when the
// username is already taken or the credentials are not configured.
func SeedAdmin(db *gorm.DB, username, email, password string) {
	if username == "" || password == "" {
		logrus.Warn("Admin seed credentials not configured, skipping")
		return
	}
	username = strings.ToLower(username)
	var count int64
	if err := db.Model(&domain.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		logrus.Fatalf("admin seed check failed: %v", err)
	}
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.Fatalf("failed to hash admin password: %v", err)
	}
	admin := domain.User{
		Username:     username,
		Email:        email,
		FullName:     "Administrator",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		logrus.Fatalf("failed to seed admin user: %v", err)
	}
	logrus.WithField("username", username).Info("Admin user seeded")
}
