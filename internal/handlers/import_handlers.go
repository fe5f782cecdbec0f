package handlers

import (
	"io"
	"log"
	"net/http"

	"menucraft/internal/common"
	"menucraft/internal/services"

	"github.com/labstack/echo/v4"
)

// ImportHandlers handles CSV sheet import requests
type ImportHandlers struct {
	importSvc    services.CatalogImportService
	maxFileBytes int64
}

// NewImportHandlers creates a new import handlers instance
func NewImportHandlers(importSvc services.CatalogImportService, maxFileBytes int64) *ImportHandlers {
	return &ImportHandlers{importSvc: importSvc, maxFileBytes: maxFileBytes}
}

func (h *ImportHandlers) readSheet(c echo.Context) ([]byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if h.maxFileBytes > 0 && fileHeader.Size > h.maxFileBytes {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Failed to open uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Failed to read uploaded file")
	}
	return data, nil
}

// ImportFoodItems runs a food item sheet reconciliation
func (h *ImportHandlers) ImportFoodItems(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}
	branchID, err := branchScope(c)
	if err != nil {
		return err
	}

	data, err := h.readSheet(c)
	if err != nil {
		return err
	}

	result, err := h.importSvc.ImportFoodItems(ctx, tenantID, branchID, data)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	log.Printf("Food item import for tenant %s: %d rows, %d created, %d updated, %d failed",
		tenantID, result.TotalRows, result.CreatedCount, result.UpdatedCount, result.FailedCount)

	return c.JSON(http.StatusOK, result)
}

// ImportAddOns runs an add-on sheet reconciliation
func (h *ImportHandlers) ImportAddOns(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}
	branchID, err := branchScope(c)
	if err != nil {
		return err
	}

	data, err := h.readSheet(c)
	if err != nil {
		return err
	}

	result, err := h.importSvc.ImportAddOns(ctx, tenantID, branchID, data)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	log.Printf("Add-on import for tenant %s: %d rows, %d created, %d updated, %d failed",
		tenantID, result.TotalRows, result.CreatedCount, result.UpdatedCount, result.FailedCount)

	return c.JSON(http.StatusOK, result)
}

// ImportVariations runs a variation sheet reconciliation
func (h *ImportHandlers) ImportVariations(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}
	branchID, err := branchScope(c)
	if err != nil {
		return err
	}

	data, err := h.readSheet(c)
	if err != nil {
		return err
	}

	result, err := h.importSvc.ImportVariations(ctx, tenantID, branchID, data)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	log.Printf("Variation import for tenant %s: %d rows, %d created, %d updated, %d failed",
		tenantID, result.TotalRows, result.CreatedCount, result.UpdatedCount, result.FailedCount)

	return c.JSON(http.StatusOK, result)
}
