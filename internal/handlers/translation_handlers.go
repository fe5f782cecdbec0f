package handlers

import (
	"net/http"

	"menucraft/internal/common"
	"menucraft/internal/services"

	"github.com/labstack/echo/v4"
)

// TranslationHandlers handles translation HTTP requests
type TranslationHandlers struct {
	translationSvc services.TranslationService
}

// NewTranslationHandlers creates a new translation handlers instance
func NewTranslationHandlers(translationSvc services.TranslationService) *TranslationHandlers {
	return &TranslationHandlers{translationSvc: translationSvc}
}

// ListTranslations returns all stored translations for one entity
func (h *TranslationHandlers) ListTranslations(c echo.Context) error {
	ctx := c.Request().Context()

	entityType := c.Param("entity_type")
	if entityType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "entity_type is required")
	}
	entityID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	translations, err := h.translationSvc.ListByEntity(ctx, tenantID, entityType, entityID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"translations": translations,
	})
}

// SetManualTranslationRequest represents a manual translation override
type SetManualTranslationRequest struct {
	Locale string `json:"locale" validate:"required"`
	Field  string `json:"field" validate:"required"`
	Value  string `json:"value" validate:"required"`
}

// SetManualTranslation stores an operator-written translation. Manual rows
// survive later machine refreshes.
func (h *TranslationHandlers) SetManualTranslation(c echo.Context) error {
	ctx := c.Request().Context()

	entityType := c.Param("entity_type")
	if entityType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "entity_type is required")
	}
	entityID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req SetManualTranslationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Locale == "" || req.Field == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "locale and field are required")
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	if err := h.translationSvc.SetManual(ctx, tenantID, entityType, entityID, req.Locale, req.Field, req.Value); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Translation saved",
	})
}

// RefreshTranslations re-queues machine translation for one entity
func (h *TranslationHandlers) RefreshTranslations(c echo.Context) error {
	ctx := c.Request().Context()

	entityType := c.Param("entity_type")
	if entityType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "entity_type is required")
	}
	entityID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	if err := h.translationSvc.RefreshEntity(ctx, tenantID, entityType, entityID); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Translations refreshed",
	})
}
