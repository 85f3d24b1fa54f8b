package api

import (
	"github.com/gin-gonic/gin" // Gin web framework

	"gameaccount_store/internal/middleware"
	"gameaccount_store/internal/response"
	"gameaccount_store/internal/service"
)

// CheckoutHandler commits the caller's cart as one atomic purchase and
// returns the created receipts
func CheckoutHandler(transactions *service.TransactionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.AbortUnauthorized(c, "Unauthorized.")
			return
		}
		created, err := transactions.Checkout(c.Request.Context(), userID)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, "Checkout completed successfully.", created)
	}
}

// MyTransactionsHandler returns the caller's purchase history, newest first
func MyTransactionsHandler(transactions *service.TransactionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.AbortUnauthorized(c, "Unauthorized.")
			return
		}
		list, err := transactions.ListByUser(c.Request.Context(), userID)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, "Transactions retrieved.", list)
	}
}

// AllTransactionsHandler returns every transaction with user and listing
// joined. Admin only.
func AllTransactionsHandler(transactions *service.TransactionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := transactions.ListAll(c.Request.Context())
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, "Transactions retrieved.", list)
	}
}
