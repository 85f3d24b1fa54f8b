package api

import (
	"github.com/gin-gonic/gin" // Gin web framework

	"gameaccount_store/internal/errs"
	"gameaccount_store/internal/middleware"
	"gameaccount_store/internal/response"
	"gameaccount_store/internal/service"
)

// AddBalanceRequest is the self-service top-up payload
type AddBalanceRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"` // Credit amount
}

// AdminAddBalanceRequest is the admin-targeted top-up payload
type AdminAddBalanceRequest struct {
	UserID uint    `json:"userId" binding:"required"`      // Target user
	Amount float64 `json:"amount" binding:"required,gt=0"` // Credit amount
}

// ProfileHandler returns the caller's own profile
func ProfileHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.AbortUnauthorized(c, "Unauthorized.")
			return
		}
		user, err := users.Profile(c.Request.Context(), userID)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, "Profile retrieved.", user)
	}
}

// AddBalanceHandler credits the caller's own balance
func AddBalanceHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.AbortUnauthorized(c, "Unauthorized.")
			return
		}
		var req AddBalanceRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Fail(c, errs.InvalidState("Invalid amount."))
			return
		}
		user, err := users.AddBalance(c.Request.Context(), userID, req.Amount)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, "Balance added successfully.", user)
	}
}

// AdminAddBalanceHandler credits any user's balance. Admin only.
func AdminAddBalanceHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminAddBalanceRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Fail(c, errs.InvalidState("Invalid request."))
			return
		}
		user, err := users.AddBalance(c.Request.Context(), req.UserID, req.Amount)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, "Balance added successfully.", user)
	}
}

// ListUsersHandler returns all users ordered by username. Admin only.
func ListUsersHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := users.ListUsers(c.Request.Context())
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, "Users retrieved.", list)
	}
}
