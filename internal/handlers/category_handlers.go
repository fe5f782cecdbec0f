package handlers

import (
	"net/http"

	"menucraft/internal/common"
	"menucraft/internal/models"
	"menucraft/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CategoryHandlers handles category-related HTTP requests
type CategoryHandlers struct {
	categorySvc services.CategoryService
}

// NewCategoryHandlers creates a new category handlers instance
func NewCategoryHandlers(categorySvc services.CategoryService) *CategoryHandlers {
	return &CategoryHandlers{categorySvc: categorySvc}
}

// ListCategoriesRequest represents query parameters for listing categories
type ListCategoriesRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListCategories handles getting a list of categories with tenant filtering
func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListCategoriesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	categories, err := h.categorySvc.List(ctx, tenantID, req.Limit, req.Offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories": categories,
		"limit":      req.Limit,
		"offset":     req.Offset,
	})
}

// CreateCategoryRequest represents the category creation request payload
type CreateCategoryRequest struct {
	Name         string     `json:"name" validate:"required"`
	Description  string     `json:"description"`
	CategoryType string     `json:"category_type"`
	ParentID     *uuid.UUID `json:"parent_id"`
	BranchID     *uuid.UUID `json:"branch_id"`
	DisplayOrder int        `json:"display_order"`
}

// CreateCategory handles creating a new category
func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	category := &models.Category{
		Name:         req.Name,
		Description:  req.Description,
		CategoryType: req.CategoryType,
		ParentID:     req.ParentID,
		BranchID:     req.BranchID,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}

	if err := h.categorySvc.Create(ctx, tenantID, category); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, category)
}

// GetCategory handles getting category details by ID
func (h *CategoryHandlers) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()

	categoryID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	category, err := h.categorySvc.GetByID(ctx, tenantID, categoryID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, category)
}

// UpdateCategory handles updating category details
func (h *CategoryHandlers) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	categoryID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req models.CategoryUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	if err := h.categorySvc.Update(ctx, tenantID, categoryID, &req); err != nil {
		return common.SendDomainError(c, err)
	}

	category, err := h.categorySvc.GetByID(ctx, tenantID, categoryID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles deleting a category
func (h *CategoryHandlers) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()

	categoryID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	if err := h.categorySvc.Delete(ctx, tenantID, categoryID); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Category deleted successfully",
	})
}
