package api

import (
	"strconv" // String conversion

	"github.com/gin-gonic/gin" // Gin web framework

	"gameaccount_store/internal/errs"
	"gameaccount_store/internal/response"
	"gameaccount_store/internal/service"
)

// CategoryRequest is the create/update payload for a category
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"` // Category name
	Description string `json:"description"`             // Optional description
}

// ListCategoriesHandler returns all categories
func ListCategoriesHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := catalog.ListCategories(c.Request.Context())
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, "Categories retrieved.", categories)
	}
}

// GetCategoryHandler returns one category
func GetCategoryHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32) // Parse category ID from path
		if err != nil {
			response.Fail(c, errs.NotFound("Category not found."))
			return
		}
		category, err := catalog.GetCategory(c.Request.Context(), uint(id))
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, "Category retrieved.", category)
	}
}

// CreateCategoryHandler adds a category. Admin only.
func CreateCategoryHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Fail(c, errs.InvalidState("Invalid request."))
			return
		}
		category, err := catalog.CreateCategory(c.Request.Context(), req.Name, req.Description)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.Created(c, "Category created successfully.", category)
	}
}

// UpdateCategoryHandler updates a category. Admin only.
func UpdateCategoryHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32) // Parse category ID from path
		if err != nil {
			response.Fail(c, errs.NotFound("Category not found."))
			return
		}
		var req CategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Fail(c, errs.InvalidState("Invalid request."))
			return
		}
		category, err := catalog.UpdateCategory(c.Request.Context(), uint(id), req.Name, req.Description)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, "Category updated successfully.", category)
	}
}

// DeleteCategoryHandler removes an empty category. Admin only.
func DeleteCategoryHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32) // Parse category ID from path
		if err != nil {
			response.Fail(c, errs.NotFound("Category not found."))
			return
		}
		if err := catalog.DeleteCategory(c.Request.Context(), uint(id)); err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, "Category deleted successfully.", nil)
	}
}
