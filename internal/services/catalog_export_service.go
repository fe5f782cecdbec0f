package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"menucraft/internal/common"
	"menucraft/internal/models"
	"menucraft/internal/repositories"

	"github.com/google/uuid"
)

const exportPageSize = 500

// ExportResult carries one generated sheet. The columns match what the import
// endpoints accept, so an exported sheet can be edited and re-imported as-is.
type ExportResult struct {
	FileName        string `json:"file_name"`
	FileContent     string `json:"-"`
	RecordsExported int    `json:"records_exported"`
}

type CatalogExportService interface {
	ExportFoodItems(ctx context.Context, tenantID, branchID uuid.UUID) (*ExportResult, error)
	ExportAddOns(ctx context.Context, tenantID uuid.UUID) (*ExportResult, error)
	ExportVariations(ctx context.Context, tenantID uuid.UUID) (*ExportResult, error)
}

type catalogExportService struct {
	categoryRepo       repositories.CategoryRepository
	foodItemRepo       repositories.FoodItemRepository
	assignmentRepo     repositories.MenuAssignmentRepository
	addOnGroupRepo     repositories.AddOnGroupRepository
	addOnRepo          repositories.AddOnRepository
	variationGroupRepo repositories.VariationGroupRepository
	variationRepo      repositories.VariationRepository
}

func NewCatalogExportService(
	categoryRepo repositories.CategoryRepository,
	foodItemRepo repositories.FoodItemRepository,
	assignmentRepo repositories.MenuAssignmentRepository,
	addOnGroupRepo repositories.AddOnGroupRepository,
	addOnRepo repositories.AddOnRepository,
	variationGroupRepo repositories.VariationGroupRepository,
	variationRepo repositories.VariationRepository,
) CatalogExportService {
	return &catalogExportService{
		categoryRepo:       categoryRepo,
		foodItemRepo:       foodItemRepo,
		assignmentRepo:     assignmentRepo,
		addOnGroupRepo:     addOnGroupRepo,
		addOnRepo:          addOnRepo,
		variationGroupRepo: variationGroupRepo,
		variationRepo:      variationRepo,
	}
}

func (s *catalogExportService) ExportFoodItems(ctx context.Context, tenantID, branchID uuid.UUID) (*ExportResult, error) {
	categoryRefs, err := s.categoryRepo.ListNames(ctx, tenantID, nil)
	if err != nil {
		return nil, &common.PersistenceError{Op: "list category names", Err: err}
	}
	categoryNames := make(map[uuid.UUID]string, len(categoryRefs))
	for _, ref := range categoryRefs {
		categoryNames[ref.ID] = ref.Name
	}

	var sb strings.Builder
	writer := csv.NewWriter(&sb)
	if err := writer.Write([]string{"category_name", "item_name", "description", "base_price",
		"stock_mode", "is_active", "menu_types"}); err != nil {
		return nil, &common.PersistenceError{Op: "write export header", Err: err}
	}

	records := 0
	for offset := 0; ; offset += exportPageSize {
		items, err := s.foodItemRepo.List(ctx, tenantID, branchID, exportPageSize, offset)
		if err != nil {
			return nil, &common.PersistenceError{Op: "list food items", Err: err}
		}
		for _, item := range items {
			assignments, err := s.assignmentRepo.ListByFoodItem(ctx, tenantID, item.ID)
			if err != nil {
				return nil, &common.PersistenceError{Op: "list menu assignments", Err: err}
			}
			menuTypes := make([]string, 0, len(assignments))
			for _, a := range assignments {
				menuTypes = append(menuTypes, a.MenuType)
			}
			sort.Strings(menuTypes)

			record := []string{
				categoryNames[item.CategoryID],
				item.Name,
				item.Description,
				formatFloat(item.BasePrice),
				item.StockMode,
				strconv.FormatBool(item.IsActive),
				strings.Join(menuTypes, "|"),
			}
			if err := writer.Write(record); err != nil {
				return nil, &common.PersistenceError{Op: "write export record", Err: err}
			}
			records++
		}
		if len(items) < exportPageSize {
			break
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, &common.PersistenceError{Op: "flush export", Err: err}
	}
	return &ExportResult{
		FileName:        exportFileName("food_items", tenantID),
		FileContent:     sb.String(),
		RecordsExported: records,
	}, nil
}

func (s *catalogExportService) ExportAddOns(ctx context.Context, tenantID uuid.UUID) (*ExportResult, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)
	if err := writer.Write([]string{"group_name", "addon_name", "price", "selection_mode",
		"max_select", "is_active"}); err != nil {
		return nil, &common.PersistenceError{Op: "write export header", Err: err}
	}

	records := 0
	err := s.eachAddOnGroup(ctx, tenantID, func(group *models.AddOnGroup) error {
		addons, err := s.addOnRepo.ListByGroup(ctx, tenantID, group.ID)
		if err != nil {
			return &common.PersistenceError{Op: "list add-ons", Err: err}
		}
		for _, addon := range addons {
			record := []string{
				group.Name,
				addon.Name,
				formatFloat(addon.Price),
				group.SelectionMode,
				strconv.Itoa(group.MaxSelect),
				strconv.FormatBool(addon.IsActive),
			}
			if err := writer.Write(record); err != nil {
				return &common.PersistenceError{Op: "write export record", Err: err}
			}
			records++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, &common.PersistenceError{Op: "flush export", Err: err}
	}
	return &ExportResult{
		FileName:        exportFileName("addons", tenantID),
		FileContent:     sb.String(),
		RecordsExported: records,
	}, nil
}

func (s *catalogExportService) ExportVariations(ctx context.Context, tenantID uuid.UUID) (*ExportResult, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)
	if err := writer.Write([]string{"group_name", "variation_name", "price_delta", "is_active"}); err != nil {
		return nil, &common.PersistenceError{Op: "write export header", Err: err}
	}

	records := 0
	for offset := 0; ; offset += exportPageSize {
		groups, err := s.variationGroupRepo.List(ctx, tenantID, exportPageSize, offset)
		if err != nil {
			return nil, &common.PersistenceError{Op: "list variation groups", Err: err}
		}
		for _, group := range groups {
			variations, err := s.variationRepo.ListByGroup(ctx, tenantID, group.ID)
			if err != nil {
				return nil, &common.PersistenceError{Op: "list variations", Err: err}
			}
			for _, variation := range variations {
				record := []string{
					group.Name,
					variation.Name,
					formatFloat(variation.PriceDelta),
					strconv.FormatBool(variation.IsActive),
				}
				if err := writer.Write(record); err != nil {
					return nil, &common.PersistenceError{Op: "write export record", Err: err}
				}
				records++
			}
		}
		if len(groups) < exportPageSize {
			break
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, &common.PersistenceError{Op: "flush export", Err: err}
	}
	return &ExportResult{
		FileName:        exportFileName("variations", tenantID),
		FileContent:     sb.String(),
		RecordsExported: records,
	}, nil
}

func (s *catalogExportService) eachAddOnGroup(ctx context.Context, tenantID uuid.UUID, fn func(*models.AddOnGroup) error) error {
	for offset := 0; ; offset += exportPageSize {
		groups, err := s.addOnGroupRepo.List(ctx, tenantID, exportPageSize, offset)
		if err != nil {
			return &common.PersistenceError{Op: "list add-on groups", Err: err}
		}
		for _, group := range groups {
			if err := fn(group); err != nil {
				return err
			}
		}
		if len(groups) < exportPageSize {
			return nil
		}
	}
}

func exportFileName(sheet string, tenantID uuid.UUID) string {
	return fmt.Sprintf("%s_%s_%s.csv", sheet, tenantID.String(), time.Now().Format("2006-01-02"))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
