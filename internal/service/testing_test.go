package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gameaccount_store/internal/domain"
)

// newTestDB opens a fresh in-memory SQLite database with the full schema.
// The pool is capped at one connection so concurrent transactions serialize
// the way row locks would on MySQL, instead of failing with SQLITE_BUSY.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.GameAccount{},
		&domain.GameAccountImage{},
		&domain.Cart{},
		&domain.CartItem{},
		&domain.Transaction{},
	))
	return db
}

// seedUser inserts a user with the given balance
func seedUser(t *testing.T, db *gorm.DB, username string, balance float64) *domain.User {
	t.Helper()
	user := domain.User{
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "Test " + username,
		PasswordHash: "x",
		Role:         domain.RoleUser,
		Balance:      balance,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// seedCategory inserts a category
func seedCategory(t *testing.T, db *gorm.DB, name string) *domain.Category {
	t.Helper()
	category := domain.Category{Name: name}
	require.NoError(t, db.Create(&category).Error)
	return &category
}

// seedListing inserts an Available listing in the given category
func seedListing(t *testing.T, db *gorm.DB, categoryID uint, title string, price float64) *domain.GameAccount {
	t.Helper()
	ga := domain.GameAccount{
		CategoryID: categoryID,
		Title:      title,
		GameType:   "LoL",
		Price:      price,
		Status:     domain.StatusAvailable,
	}
	require.NoError(t, db.Create(&ga).Error)
	return &ga
}

// reload fetches the latest row for the given primary key
func reloadUser(t *testing.T, db *gorm.DB, id uint) *domain.User {
	t.Helper()
	var user domain.User
	require.NoError(t, db.First(&user, id).Error)
	return &user
}

func reloadListing(t *testing.T, db *gorm.DB, id uint) *domain.GameAccount {
	t.Helper()
	var ga domain.GameAccount
	require.NoError(t, db.First(&ga, id).Error)
	return &ga
}

// countCartItems returns the number of items in a user's cart
func countCartItems(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&domain.CartItem{}).
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("carts.user_id = ?", userID).
		Count(&count).Error)
	return count
}

// countTransactions returns the number of receipt rows
func countTransactions(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&domain.Transaction{}).Count(&count).Error)
	return count
}
