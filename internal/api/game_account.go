package api

import (
	"strconv" // String conversion

	"github.com/gin-gonic/gin" // Gin web framework

	"gameaccount_store/internal/errs"
	"gameaccount_store/internal/response"
	"gameaccount_store/internal/service"
)

// GameAccountRequest is the create/update payload for a listing
type GameAccountRequest struct {
	CategoryID     uint     `json:"categoryId" binding:"required"`  // Owning category
	Title          string   `json:"title" binding:"required"`       // Listing title
	Description    string   `json:"description"`                    // Free-form description
	GameType       string   `json:"gameType" binding:"required"`    // Game the account belongs to
	Price          float64  `json:"price" binding:"required,gt=0"`  // Asking price
	Rank           string   `json:"rank"`                           // Optional in-game rank
	NumberOfSkins  *int     `json:"numberOfSkins"`                  // Optional skin count
	NumberOfChamps *int     `json:"numberOfChamps"`                 // Optional champion count
	ImageURLs      []string `json:"imageUrls"`                      // Image URLs to attach
}

func (r *GameAccountRequest) toInput() service.CreateGameAccountInput {
	return service.CreateGameAccountInput{
		CategoryID:     r.CategoryID,
		Title:          r.Title,
		Description:    r.Description,
		GameType:       r.GameType,
		Price:          r.Price,
		Rank:           r.Rank,
		NumberOfSkins:  r.NumberOfSkins,
		NumberOfChamps: r.NumberOfChamps,
		ImageURLs:      r.ImageURLs,
	}
}

// ListGameAccountsHandler returns all listings
func ListGameAccountsHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := catalog.ListGameAccounts(c.Request.Context())
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, "Game accounts retrieved.", list)
	}
}

// GetGameAccountHandler returns one listing
func GetGameAccountHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32) // Parse listing ID from path
		if err != nil {
			response.Fail(c, errs.NotFound("Game account not found."))
			return
		}
		view, err := catalog.GetGameAccount(c.Request.Context(), uint(id))
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, "Game account retrieved.", view)
	}
}

// ListGameAccountsByCategoryHandler returns the listings of one category
func ListGameAccountsByCategoryHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, err := strconv.ParseUint(c.Param("categoryId"), 10, 32) // Parse category ID from path
		if err != nil {
			response.Fail(c, errs.NotFound("Category not found."))
			return
		}
		list, err := catalog.ListGameAccountsByCategory(c.Request.Context(), uint(categoryID))
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, "Game accounts retrieved.", list)
	}
}

// CreateGameAccountHandler adds a listing. Admin only.
func CreateGameAccountHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GameAccountRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Fail(c, errs.InvalidState("Invalid request."))
			return
		}
		view, err := catalog.CreateGameAccount(c.Request.Context(), req.toInput())
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.Created(c, "Game account created successfully.", view)
	}
}

// UpdateGameAccountHandler updates a listing. Admin only.
func UpdateGameAccountHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32) // Parse listing ID from path
		if err != nil {
			response.Fail(c, errs.NotFound("Game account not found."))
			return
		}
		var req GameAccountRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Fail(c, errs.InvalidState("Invalid request."))
			return
		}
		view, err := catalog.UpdateGameAccount(c.Request.Context(), uint(id), req.toInput())
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, "Game account updated successfully.", view)
	}
}

// DeleteGameAccountHandler removes a listing. Admin only.
func DeleteGameAccountHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32) // Parse listing ID from path
		if err != nil {
			response.Fail(c, errs.NotFound("Game account not found."))
			return
		}
		if err := catalog.DeleteGameAccount(c.Request.Context(), uint(id)); err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, "Game account deleted successfully.", nil)
	}
}
