package handlers

import (
	"net/http"

	"menucraft/internal/common"
	"menucraft/internal/services"

	"github.com/labstack/echo/v4"
)

// MenuHandlers handles menu and assignment HTTP requests
type MenuHandlers struct {
	menuSvc         services.MenuService
	availabilitySvc services.AvailabilityService
}

// NewMenuHandlers creates a new menu handlers instance
func NewMenuHandlers(menuSvc services.MenuService, availabilitySvc services.AvailabilityService) *MenuHandlers {
	return &MenuHandlers{menuSvc: menuSvc, availabilitySvc: availabilitySvc}
}

// ListMenus lists the menus of a branch, seeding the defaults on first use
func (h *MenuHandlers) ListMenus(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}
	branchID, err := branchScope(c)
	if err != nil {
		return err
	}

	menus, err := h.menuSvc.List(ctx, tenantID, branchID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"menus": menus,
	})
}

// CreateMenuRequest represents the menu creation payload
type CreateMenuRequest struct {
	MenuType    string `json:"menu_type" validate:"required"`
	DisplayName string `json:"display_name"`
}

// CreateMenu creates a custom menu type for a branch
func (h *MenuHandlers) CreateMenu(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateMenuRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}
	branchID, err := branchScope(c)
	if err != nil {
		return err
	}

	menu, err := h.menuSvc.Create(ctx, tenantID, branchID, req.MenuType, req.DisplayName)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, menu)
}

// DeleteMenu deletes a custom menu type; default menus are protected
func (h *MenuHandlers) DeleteMenu(c echo.Context) error {
	ctx := c.Request().Context()

	menuType := c.Param("type")
	if menuType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Menu type is required")
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}
	branchID, err := branchScope(c)
	if err != nil {
		return err
	}

	if err := h.menuSvc.Delete(ctx, tenantID, branchID, menuType); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Menu deleted successfully",
	})
}

// SetMenuActive flips a menu's availability and cascades to its items
func (h *MenuHandlers) SetMenuActive(c echo.Context) error {
	ctx := c.Request().Context()

	menuType := c.Param("type")
	if menuType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Menu type is required")
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

	if err := h.availabilitySvc.SetMenuActive(ctx, tenantID, branchID, menuType, *req.Active); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"menu_type": menuType,
		"active":    *req.Active,
	})
}

// AssignItemRequest represents the menu assignment payload
type AssignItemRequest struct {
	FoodItemID   string `json:"food_item_id" validate:"required"`
	DisplayOrder int    `json:"display_order"`
}

// AssignItem places a food item on a menu
func (h *MenuHandlers) AssignItem(c echo.Context) error {
	ctx := c.Request().Context()

	menuType := c.Param("type")
	if menuType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Menu type is required")
	}

	var req AssignItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	foodItemID, err := common.ValidateUUID(req.FoodItemID, "food_item_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}
	branchID, err := branchScope(c)
	if err != nil {
		return err
	}

	if err := h.menuSvc.AssignItem(ctx, tenantID, branchID, menuType, foodItemID, req.DisplayOrder); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"menu_type":    menuType,
		"food_item_id": foodItemID,
	})
}

// UnassignItem removes a food item from a menu
func (h *MenuHandlers) UnassignItem(c echo.Context) error {
	ctx := c.Request().Context()

	menuType := c.Param("type")
	if menuType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Menu type is required")
	}

	foodItemID, err := pathID(c, "item_id")
	if err != nil {
		return err
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	if err := h.menuSvc.UnassignItem(ctx, tenantID, menuType, foodItemID); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Item removed from menu",
	})
}

// ListAssignments lists the items assigned to a menu
func (h *MenuHandlers) ListAssignments(c echo.Context) error {
	ctx := c.Request().Context()

	menuType := c.Param("type")
	if menuType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Menu type is required")
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	assignments, err := h.menuSvc.ListAssignments(ctx, tenantID, menuType)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"menu_type":   menuType,
		"assignments": assignments,
	})
}
