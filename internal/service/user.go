package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library

	"gameaccount_store/internal/domain"
	"gameaccount_store/internal/errs"
)

// UserService covers profile reads and balance top-ups.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a user service
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Profile returns the user's own record. The password hash is never
// serialized.
func (s *UserService) Profile(ctx context.Context, userID uint) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("User not found.")
		}
		return nil, errs.Internal(err)
	}
	return &user, nil
}

// AddBalance credits a user's balance. Like the checkout debit, the write is a
// guarded expression inside a transaction; the balance is never read-modify-
// written outside one.
func (s *UserService) AddBalance(ctx context.Context, userID uint, amount float64) (*domain.User, error) {
	if amount <= 0 {
		return nil, errs.InvalidState("Amount must be greater than 0.")
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		credit := tx.Model(&domain.User{}).
			Where("id = ?", userID).
			Update("balance", gorm.Expr("balance + ?", amount))
		if credit.Error != nil {
			return errs.Internal(credit.Error)
		}
		if credit.RowsAffected == 0 {
			return errs.NotFound("User not found.")
		}
		return nil
	})
	if err != nil {
		return nil, wrapErr(err)
	}
	// Log the credit with context
	logrus.WithFields(logrus.Fields{
		"user_id": userID, // Credited user
		"amount":  amount, // Credit amount
		"type":    "top_up",
	}).Info("Balance credited")
	return s.Profile(ctx, userID)
}

// ListUsers returns all users ordered by username. Admin only.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := s.db.WithContext(ctx).Order("username").Find(&users).Error; err != nil {
		return nil, errs.Internal(err)
	}
	return users, nil
}
