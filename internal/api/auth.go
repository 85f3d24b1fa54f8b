package api

import (
	"github.com/gin-gonic/gin" // Gin web framework

	"gameaccount_store/internal/errs"
	"gameaccount_store/internal/response"
	"gameaccount_store/internal/service"
)

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`       // Username must be provided
	Email    string `json:"email" binding:"required,email"`    // Valid email required
	FullName string `json:"fullName" binding:"required"`       // Display name required
	Password string `json:"password" binding:"required,min=6"` // At least 6 characters
}

// LoginRequest is the login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// RegisterResponse carries the new user's ID
type RegisterResponse struct {
	UserID uint `json:"userId"` // Created user ID
}

// AuthResponse carries the issued bearer token
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

// RegisterHandler creates a new customer account
func RegisterHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Fail(c, errs.InvalidState("Invalid request."))
			return
		}
		userID, err := auth.Register(c.Request.Context(), req.Username, req.Email, req.FullName, req.Password)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.Created(c, "Registration successful!", RegisterResponse{UserID: userID})
	}
}

// LoginHandler authenticates a user and returns a bearer token
func LoginHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Fail(c, errs.InvalidState("Invalid request."))
			return
		}
		token, err := auth.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, "Login successful.", AuthResponse{Token: token})
	}
}
