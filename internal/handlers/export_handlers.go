package handlers

import (
	"fmt"
	"log"
	"net/http"

	"menucraft/internal/common"
	"menucraft/internal/services"

	"github.com/labstack/echo/v4"
)

// ExportHandlers serves catalog sheets as CSV downloads
type ExportHandlers struct {
	exportSvc services.CatalogExportService
}

// NewExportHandlers creates a new export handlers instance
func NewExportHandlers(exportSvc services.CatalogExportService) *ExportHandlers {
	return &ExportHandlers{exportSvc: exportSvc}
}

func sendSheet(c echo.Context, result *services.ExportResult) error {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", result.FileName))
	return c.Blob(http.StatusOK, "text/csv", []byte(result.FileContent))
}

// ExportFoodItems downloads the branch's food item sheet
func (h *ExportHandlers) ExportFoodItems(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}
	branchID, err := branchScope(c)
	if err != nil {
		return err
	}

	result, err := h.exportSvc.ExportFoodItems(ctx, tenantID, branchID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	log.Printf("Food item export for tenant %s: %d records", tenantID, result.RecordsExported)
	return sendSheet(c, result)
}

// ExportAddOns downloads the tenant's add-on sheet
func (h *ExportHandlers) ExportAddOns(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	result, err := h.exportSvc.ExportAddOns(ctx, tenantID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	log.Printf("Add-on export for tenant %s: %d records", tenantID, result.RecordsExported)
	return sendSheet(c, result)
}

// ExportVariations downloads the tenant's variation sheet
func (h *ExportHandlers) ExportVariations(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, err := tenantScope(c)
	if err != nil {
		return err
	}

	result, err := h.exportSvc.ExportVariations(ctx, tenantID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	log.Printf("Variation export for tenant %s: %d records", tenantID, result.RecordsExported)
	return sendSheet(c, result)
}
