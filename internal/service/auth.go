package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library

	"gameaccount_store/internal/domain"
	"gameaccount_store/internal/errs"
	"gameaccount_store/internal/utils"
)

// AuthService handles credential verification and token issuance.
type AuthService struct {
	db        *gorm.DB
	jwtSecret string
}

// NewAuthService creates an auth service
func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{db: db, jwtSecret: jwtSecret}
}

// Register creates a new customer account and returns its ID. Usernames are
// stored lowercase; username and email are unique.
func (s *AuthService) Register(ctx context.Context, username, email, fullName, password string) (uint, error) {
	username = strings.ToLower(username)
	// Check for an existing user first for a clean message
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return 0, errs.Internal(err)
	}
	if count > 0 {
		return 0, errs.Conflict("User already exists.")
	}
	// Hash the password and create the user
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, errs.Internal(err)
	}
	user := domain.User{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Balance:      0,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// The unique columns back the existence check above, so a create
		// failure here means a concurrent duplicate registration
		return 0, errs.Conflict("User already exists.")
	}
	return user.ID, nil
}

// Login verifies credentials and issues a signed bearer token carrying the
// user ID and role.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	var user domain.User
	err := s.db.WithContext(ctx).
		Where("username = ?", strings.ToLower(username)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.Unauthorized("Invalid credentials.")
		}
		return "", errs.Internal(err)
	}
	// Compare provided password with stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", errs.Unauthorized("Invalid credentials.")
	}
	token, err := utils.GenerateJWT(user.ID, user.Role, s.jwtSecret)
	if err != nil {
		return "", errs.Internal(err)
	}
	return token, nil
}
