package handlers

import (
	"net/http"
	"time"

	"menucraft/internal/common"
	"menucraft/internal/models"
	"menucraft/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// FoodItemHandlers handles food item HTTP requests
type FoodItemHandlers struct {
	foodItemSvc     services.FoodItemService
	availabilitySvc services.AvailabilityService
}

// NewFoodItemHandlers creates a new food item handlers instance
func NewFoodItemHandlers(foodItemSvc services.FoodItemService, availabilitySvc services.AvailabilityService) *FoodItemHandlers {
	return &FoodItemHandlers{foodItemSvc: foodItemSvc, availabilitySvc: availabilitySvc}
}

// ListFoodItemsRequest represents query parameters for listing food items
type ListFoodItemsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListFoodItems handles listing food items for one branch
func (h *FoodItemHandlers) ListFoodItems(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListFoodItemsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}
	branchID, err := branchScope(c)
	if err != nil {
		return err
	}

	items, err := h.foodItemSvc.List(ctx, tenantID, branchID, req.Limit, req.Offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"food_items": items,
		"limit":      req.Limit,
		"offset":     req.Offset,
	})
}

// CreateFoodItemRequest represents the food item creation request payload
type CreateFoodItemRequest struct {
	CategoryID  uuid.UUID `json:"category_id" validate:"required"`
	BranchID    uuid.UUID `json:"branch_id"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	BasePrice   float64   `json:"base_price"`
	StockMode   string    `json:"stock_mode"`
	IsActive    *bool     `json:"is_active"`
}

// CreateFoodItem handles creating a new food item
func (h *FoodItemHandlers) CreateFoodItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateFoodItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	branchID := req.BranchID
	if branchID == uuid.Nil {
		branchID, err = branchScope(c)
		if err != nil {
			return err
		}
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	item := &models.FoodItem{
		BranchID:    branchID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		StockMode:   req.StockMode,
		IsActive:    active,
	}

	if err := h.foodItemSvc.Create(ctx, tenantID, item); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, item)
}

// GetFoodItem handles getting food item details by ID
func (h *FoodItemHandlers) GetFoodItem(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	item, err := h.foodItemSvc.GetByID(ctx, tenantID, itemID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, item)
}

// UpdateFoodItem handles updating food item details
func (h *FoodItemHandlers) UpdateFoodItem(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req models.FoodItemUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	if err := h.foodItemSvc.Update(ctx, tenantID, itemID, &req); err != nil {
		return common.SendDomainError(c, err)
	}

	item, err := h.foodItemSvc.GetByID(ctx, tenantID, itemID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, item)
}

// DeleteFoodItem handles deleting a food item
func (h *FoodItemHandlers) DeleteFoodItem(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	if err := h.foodItemSvc.Delete(ctx, tenantID, itemID); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Food item deleted successfully",
	})
}

// SetActiveRequest represents the availability flip payload
type SetActiveRequest struct {
	Active *bool `json:"active"`
}

// SetFoodItemActive flips one item's availability and fans out the menu
// side effects through the task queue.
func (h *FoodItemHandlers) SetFoodItemActive(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req SetActiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Active == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "active is required")
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}
	branchID, err := branchScope(c)
	if err != nil {
		return err
	}

	if err := h.availabilitySvc.SetFoodItemActive(ctx, tenantID, branchID, itemID, *req.Active); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":     itemID,
		"active": *req.Active,
	})
}

// SetLabelsRequest represents the label replacement payload
type SetLabelsRequest struct {
	Labels []string `json:"labels"`
}

// SetLabels replaces the dietary labels on a food item
func (h *FoodItemHandlers) SetLabels(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req SetLabelsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	if err := h.foodItemSvc.SetLabels(ctx, tenantID, itemID, req.Labels); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":     itemID,
		"labels": req.Labels,
	})
}

// SetAddOnGroupsRequest represents the add-on group attachment payload
type SetAddOnGroupsRequest struct {
	GroupIDs []uuid.UUID `json:"group_ids"`
}

// SetAddOnGroups replaces the add-on groups attached to a food item
func (h *FoodItemHandlers) SetAddOnGroups(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req SetAddOnGroupsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	if err := h.foodItemSvc.SetAddOnGroups(ctx, tenantID, itemID, req.GroupIDs); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":        itemID,
		"group_ids": req.GroupIDs,
	})
}

// AddDiscountRequest represents the discount creation payload
type AddDiscountRequest struct {
	Name     string    `json:"name"`
	Percent  float64   `json:"percent"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// AddDiscount attaches a time-bounded discount to a food item
func (h *FoodItemHandlers) AddDiscount(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req AddDiscountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	discount := &models.ItemDiscount{
		Name:     req.Name,
		Percent:  req.Percent,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	}

	if err := h.foodItemSvc.AddDiscount(ctx, tenantID, itemID, discount); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, discount)
}

// RemoveDiscount deletes a discount from a food item
func (h *FoodItemHandlers) RemoveDiscount(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	discountID, err := pathID(c, "discount_id")
	if err != nil {
		return err
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	if err := h.foodItemSvc.RemoveDiscount(ctx, tenantID, itemID, discountID); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Discount removed successfully",
	})
}

// UploadImage handles a multipart image upload for a food item
func (h *FoodItemHandlers) UploadImage(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to open uploaded file")
	}
	defer src.Close()

	var altText *string
	if alt := c.FormValue("alt_text"); alt != "" {
		altText = &alt
	}

	if err := h.foodItemSvc.UploadImage(ctx, tenantID, itemID, fileHeader.Filename, src, fileHeader.Size, altText); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "Image uploaded successfully",
	})
}

// ListImages returns the image records of a food item
func (h *FoodItemHandlers) ListImages(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	images, err := h.foodItemSvc.GetImages(ctx, tenantID, itemID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"images": images,
	})
}

// GetImageURL returns a presigned download URL for one image
func (h *FoodItemHandlers) GetImageURL(c echo.Context) error {
	ctx := c.Request().Context()

	imageID, err := pathID(c, "image_id")
	if err != nil {
		return err
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	url, err := h.foodItemSvc.GetImageURL(ctx, tenantID, imageID, 15*time.Minute)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"url": url,
	})
}

// DeleteImage removes one image from a food item
func (h *FoodItemHandlers) DeleteImage(c echo.Context) error {
	ctx := c.Request().Context()

	imageID, err := pathID(c, "image_id")
	if err != nil {
		return err
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	if err := h.foodItemSvc.DeleteImage(ctx, tenantID, imageID); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Image deleted successfully",
	})
}
