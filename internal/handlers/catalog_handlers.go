package handlers

import (
	"net/http"

	"menucraft/internal/common"
	"menucraft/internal/models"
	"menucraft/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CatalogHandlers handles add-on, variation, buffet and combo meal requests
type CatalogHandlers struct {
	catalogSvc services.CatalogService
}

// NewCatalogHandlers creates a new catalog handlers instance
func NewCatalogHandlers(catalogSvc services.CatalogService) *CatalogHandlers {
	return &CatalogHandlers{catalogSvc: catalogSvc}
}

// --- Add-on groups ---

// CreateAddOnGroupRequest represents the add-on group creation payload
type CreateAddOnGroupRequest struct {
	Name          string     `json:"name" validate:"required"`
	Description   string     `json:"description"`
	SelectionMode string     `json:"selection_mode"`
	MaxSelect     int        `json:"max_select"`
	BranchID      *uuid.UUID `json:"branch_id"`
}

func (h *CatalogHandlers) CreateAddOnGroup(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateAddOnGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	group := &models.AddOnGroup{
		BranchID:      req.BranchID,
		Name:          req.Name,
		Description:   req.Description,
		SelectionMode: req.SelectionMode,
		MaxSelect:     req.MaxSelect,
		IsActive:      true,
	}

	if err := h.catalogSvc.CreateAddOnGroup(ctx, tenantID, group); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, group)
}

func (h *CatalogHandlers) UpdateAddOnGroup(c echo.Context) error {
	ctx := c.Request().Context()

	groupID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req models.AddOnGroupUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	if err := h.catalogSvc.UpdateAddOnGroup(ctx, tenantID, groupID, &req); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Add-on group updated"})
}

func (h *CatalogHandlers) DeleteAddOnGroup(c echo.Context) error {
	ctx := c.Request().Context()

	groupID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	if err := h.catalogSvc.DeleteAddOnGroup(ctx, tenantID, groupID); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Add-on group deleted"})
}

func (h *CatalogHandlers) ListAddOnGroups(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListCategoriesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	groups, err := h.catalogSvc.ListAddOnGroups(ctx, tenantID, req.Limit, req.Offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"addon_groups": groups,
	})
}

// --- Add-ons ---

// CreateAddOnRequest represents the add-on creation payload
type CreateAddOnRequest struct {
	GroupID uuid.UUID `json:"group_id" validate:"required"`
	Name    string    `json:"name" validate:"required"`
	Price   float64   `json:"price"`
}

func (h *CatalogHandlers) CreateAddOn(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateAddOnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	addon := &models.AddOn{
		GroupID:  req.GroupID,
		Name:     req.Name,
		Price:    req.Price,
		IsActive: true,
	}

	if err := h.catalogSvc.CreateAddOn(ctx, tenantID, addon); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, addon)
}

func (h *CatalogHandlers) UpdateAddOn(c echo.Context) error {
	ctx := c.Request().Context()

	addonID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req models.AddOnUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	if err := h.catalogSvc.UpdateAddOn(ctx, tenantID, addonID, &req); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Add-on updated"})
}

func (h *CatalogHandlers) DeleteAddOn(c echo.Context) error {
	ctx := c.Request().Context()

	addonID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	if err := h.catalogSvc.DeleteAddOn(ctx, tenantID, addonID); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Add-on deleted"})
}

func (h *CatalogHandlers) ListAddOns(c echo.Context) error {
	ctx := c.Request().Context()

	groupID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	addons, err := h.catalogSvc.ListAddOns(ctx, tenantID, groupID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"addons": addons,
	})
}

// --- Variation groups ---

// CreateVariationGroupRequest represents the variation group creation payload
type CreateVariationGroupRequest struct {
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	BranchID    *uuid.UUID `json:"branch_id"`
}

func (h *CatalogHandlers) CreateVariationGroup(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateVariationGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	group := &models.VariationGroup{
		BranchID:    req.BranchID,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}

	if err := h.catalogSvc.CreateVariationGroup(ctx, tenantID, group); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, group)
}

func (h *CatalogHandlers) UpdateVariationGroup(c echo.Context) error {
	ctx := c.Request().Context()

	groupID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req models.VariationGroupUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	if err := h.catalogSvc.UpdateVariationGroup(ctx, tenantID, groupID, &req); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Variation group updated"})
}

func (h *CatalogHandlers) DeleteVariationGroup(c echo.Context) error {
	ctx := c.Request().Context()

	groupID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	if err := h.catalogSvc.DeleteVariationGroup(ctx, tenantID, groupID); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Variation group deleted"})
}

func (h *CatalogHandlers) ListVariationGroups(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListCategoriesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	groups, err := h.catalogSvc.ListVariationGroups(ctx, tenantID, req.Limit, req.Offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"variation_groups": groups,
	})
}

// --- Variations ---

// CreateVariationRequest represents the variation creation payload
type CreateVariationRequest struct {
	GroupID    uuid.UUID `json:"group_id" validate:"required"`
	Name       string    `json:"name" validate:"required"`
	PriceDelta float64   `json:"price_delta"`
}

func (h *CatalogHandlers) CreateVariation(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateVariationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	variation := &models.Variation{
		GroupID:    req.GroupID,
		Name:       req.Name,
		PriceDelta: req.PriceDelta,
		IsActive:   true,
	}

	if err := h.catalogSvc.CreateVariation(ctx, tenantID, variation); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, variation)
}

func (h *CatalogHandlers) UpdateVariation(c echo.Context) error {
	ctx := c.Request().Context()

	variationID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req models.VariationUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	if err := h.catalogSvc.UpdateVariation(ctx, tenantID, variationID, &req); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Variation updated"})
}

func (h *CatalogHandlers) DeleteVariation(c echo.Context) error {
	ctx := c.Request().Context()

	variationID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	if err := h.catalogSvc.DeleteVariation(ctx, tenantID, variationID); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Variation deleted"})
}

func (h *CatalogHandlers) ListVariations(c echo.Context) error {
	ctx := c.Request().Context()

	groupID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	variations, err := h.catalogSvc.ListVariations(ctx, tenantID, groupID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"variations": variations,
	})
}

// --- Buffets ---

// BuffetRequest represents the buffet create/update payload
type BuffetRequest struct {
	Name           string  `json:"name" validate:"required"`
	Description    string  `json:"description"`
	PricePerPerson float64 `json:"price_per_person"`
	AvailableFrom  string  `json:"available_from"`
	AvailableTo    string  `json:"available_to"`
	IsActive       *bool   `json:"is_active"`
}

func (h *CatalogHandlers) CreateBuffet(c echo.Context) error {
	ctx := c.Request().Context()

	var req BuffetRequest
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

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	buffet := &models.Buffet{
		BranchID:       branchID,
		Name:           req.Name,
		Description:    req.Description,
		PricePerPerson: req.PricePerPerson,
		AvailableFrom:  req.AvailableFrom,
		AvailableTo:    req.AvailableTo,
		IsActive:       active,
	}

	if err := h.catalogSvc.CreateBuffet(ctx, tenantID, buffet); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, buffet)
}

func (h *CatalogHandlers) UpdateBuffet(c echo.Context) error {
	ctx := c.Request().Context()

	buffetID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req BuffetRequest
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

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	buffet := &models.Buffet{
		ID:             buffetID,
		BranchID:       branchID,
		Name:           req.Name,
		Description:    req.Description,
		PricePerPerson: req.PricePerPerson,
		AvailableFrom:  req.AvailableFrom,
		AvailableTo:    req.AvailableTo,
		IsActive:       active,
	}

	if err := h.catalogSvc.UpdateBuffet(ctx, tenantID, buffet); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, buffet)
}

func (h *CatalogHandlers) DeleteBuffet(c echo.Context) error {
	ctx := c.Request().Context()

	buffetID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	if err := h.catalogSvc.DeleteBuffet(ctx, tenantID, buffetID); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Buffet deleted"})
}

func (h *CatalogHandlers) ListBuffets(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}
	branchID, err := branchScope(c)
	if err != nil {
		return err
	}

	buffets, err := h.catalogSvc.ListBuffets(ctx, tenantID, branchID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"buffets": buffets,
	})
}

// --- Combo meals ---

// ComboMealItemRequest is one line of a combo meal payload
type ComboMealItemRequest struct {
	FoodItemID uuid.UUID `json:"food_item_id" validate:"required"`
	Quantity   int       `json:"quantity"`
}

// ComboMealRequest represents the combo meal create/update payload
type ComboMealRequest struct {
	Name        string                 `json:"name" validate:"required"`
	Description string                 `json:"description"`
	Price       float64                `json:"price"`
	IsActive    *bool                  `json:"is_active"`
	Items       []ComboMealItemRequest `json:"items"`
}

func comboFromRequest(req *ComboMealRequest, branchID uuid.UUID) *models.ComboMeal {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	combo := &models.ComboMeal{
		BranchID:    branchID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    active,
	}
	for _, item := range req.Items {
		combo.Items = append(combo.Items, models.ComboMealItem{
			FoodItemID: item.FoodItemID,
			Quantity:   item.Quantity,
		})
	}
	return combo
}

func (h *CatalogHandlers) CreateComboMeal(c echo.Context) error {
	ctx := c.Request().Context()

	var req ComboMealRequest
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

	combo := comboFromRequest(&req, branchID)
	if err := h.catalogSvc.CreateComboMeal(ctx, tenantID, combo); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, combo)
}

func (h *CatalogHandlers) UpdateComboMeal(c echo.Context) error {
	ctx := c.Request().Context()

	comboID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ComboMealRequest
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

	combo := comboFromRequest(&req, branchID)
	combo.ID = comboID
	if err := h.catalogSvc.UpdateComboMeal(ctx, tenantID, combo); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, combo)
}

func (h *CatalogHandlers) GetComboMeal(c echo.Context) error {
	ctx := c.Request().Context()

	comboID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	combo, err := h.catalogSvc.GetComboMeal(ctx, tenantID, comboID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, combo)
}

func (h *CatalogHandlers) DeleteComboMeal(c echo.Context) error {
	ctx := c.Request().Context()

	comboID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	if err := h.catalogSvc.DeleteComboMeal(ctx, tenantID, comboID); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Combo meal deleted"})
}

func (h *CatalogHandlers) ListComboMeals(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}
	branchID, err := branchScope(c)
	if err != nil {
		return err
	}

	combos, err := h.catalogSvc.ListComboMeals(ctx, tenantID, branchID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"combo_meals": combos,
	})
}
