package api

import (
	"strconv" // String conversion

	"github.com/gin-gonic/gin" // Gin web framework

	"gameaccount_store/internal/errs"
	"gameaccount_store/internal/middleware"
	"gameaccount_store/internal/response"
	"gameaccount_store/internal/service"
)

// AddToCartRequest names the listing to add
type AddToCartRequest struct {
	GameAccountID uint `json:"gameAccountId" binding:"required"` // Listing to add
}

// GetCartHandler returns the caller's cart, creating it on first access
func GetCartHandler(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.AbortUnauthorized(c, "Unauthorized.")
			return
		}
		view, err := carts.GetOrCreateCart(c.Request.Context(), userID)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, "Cart retrieved.", view)
	}
}

// AddToCartHandler puts a listing into the caller's cart
func AddToCartHandler(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.AbortUnauthorized(c, "Unauthorized.")
			return
		}
		var req AddToCartRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Fail(c, errs.InvalidState("Invalid request."))
			return
		}
		view, err := carts.AddItem(c.Request.Context(), userID, req.GameAccountID)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, "Item added to cart successfully.", view)
	}
}

// RemoveFromCartHandler deletes one item from the caller's cart
func RemoveFromCartHandler(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.AbortUnauthorized(c, "Unauthorized.")
			return
		}
		itemID, err := strconv.ParseUint(c.Param("id"), 10, 32) // Parse item ID from path
		if err != nil {
			response.Fail(c, errs.NotFound("Cart item not found."))
			return
		}
		view, err := carts.RemoveItem(c.Request.Context(), userID, uint(itemID))
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, "Item removed from cart successfully.", view)
	}
}

// ClearCartHandler empties the caller's cart; a no-op when already empty
func ClearCartHandler(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.AbortUnauthorized(c, "Unauthorized.")
			return
		}
		view, err := carts.ClearCart(c.Request.Context(), userID)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, "Cart cleared successfully.", view)
	}
}

// DeleteCartHandler removes any cart and its items. Admin only.
func DeleteCartHandler(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, err := strconv.ParseUint(c.Param("id"), 10, 32) // Parse cart ID from path
		if err != nil {
			response.Fail(c, errs.NotFound("Cart not found."))
			return
		}
		if err := carts.DeleteCart(c.Request.Context(), uint(cartID)); err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, "Cart and all its items have been deleted successfully.", nil)
	}
}
