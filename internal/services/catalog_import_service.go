package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"menucraft/internal/common"
	"menucraft/internal/events"
	"menucraft/internal/importer"
	"menucraft/internal/models"
	"menucraft/internal/repositories"

	"github.com/google/uuid"
)

const maxConcurrentUpdates = 10

// SheetTarget adapts one sheet shape (food items, add-ons, variations) to the
// shared reconciliation engine. A target is built fresh per run and carries the
// run's tenant, branch and natural-key snapshots.
type SheetTarget interface {
	EntityType() string
	ParentEntityType() string
	Schema() importer.FieldSchema

	// Snapshot loads the parent and child natural-key indexes once, up front.
	// Every row of the run resolves against these plus whatever the run itself
	// creates; nothing re-reads the store per row.
	Snapshot(ctx context.Context) error

	Validate(row importer.Row) error
	ParentName(row importer.Row) string
	ChildName(row importer.Row) string

	ResolveParent(name string) (uuid.UUID, bool)
	// CreateParents bulk-inserts missing parents by name and folds the new ids
	// into the parent index. The result maps normalized names to their failure,
	// if any; absent names succeeded.
	CreateParents(ctx context.Context, names []string) map[string]error

	ResolveChild(parentID uuid.UUID, name string) (uuid.UUID, bool)
	// StageChild buffers a create and registers its id in the child index, so a
	// later duplicate row in the same sheet classifies as an update.
	StageChild(parentID uuid.UUID, row importer.Row) uuid.UUID
	// FlushChildren inserts everything staged. The result maps draft ids to
	// their failure, if any; absent ids succeeded.
	FlushChildren(ctx context.Context) map[uuid.UUID]error

	UpdateChild(ctx context.Context, childID, parentID uuid.UUID, row importer.Row) error
}

type CatalogImportService interface {
	ImportFoodItems(ctx context.Context, tenantID, branchID uuid.UUID, data []byte) (*models.ImportResult, error)
	ImportAddOns(ctx context.Context, tenantID, branchID uuid.UUID, data []byte) (*models.ImportResult, error)
	ImportVariations(ctx context.Context, tenantID, branchID uuid.UUID, data []byte) (*models.ImportResult, error)
}

type catalogImportService struct {
	categoryRepo       repositories.CategoryRepository
	foodItemRepo       repositories.FoodItemRepository
	assignmentRepo     repositories.MenuAssignmentRepository
	addOnGroupRepo     repositories.AddOnGroupRepository
	addOnRepo          repositories.AddOnRepository
	variationGroupRepo repositories.VariationGroupRepository
	variationRepo      repositories.VariationRepository
	enqueuer           TaskEnqueuer
	recorder           events.Recorder
	maxRows            int
}

func NewCatalogImportService(
	categoryRepo repositories.CategoryRepository,
	foodItemRepo repositories.FoodItemRepository,
	assignmentRepo repositories.MenuAssignmentRepository,
	addOnGroupRepo repositories.AddOnGroupRepository,
	addOnRepo repositories.AddOnRepository,
	variationGroupRepo repositories.VariationGroupRepository,
	variationRepo repositories.VariationRepository,
	enqueuer TaskEnqueuer,
	recorder events.Recorder,
	maxRows int,
) CatalogImportService {
	return &catalogImportService{
		categoryRepo:       categoryRepo,
		foodItemRepo:       foodItemRepo,
		assignmentRepo:     assignmentRepo,
		addOnGroupRepo:     addOnGroupRepo,
		addOnRepo:          addOnRepo,
		variationGroupRepo: variationGroupRepo,
		variationRepo:      variationRepo,
		enqueuer:           enqueuer,
		recorder:           recorder,
		maxRows:            maxRows,
	}
}

func (s *catalogImportService) ImportFoodItems(ctx context.Context, tenantID, branchID uuid.UUID, data []byte) (*models.ImportResult, error) {
	target := newFoodItemSheetTarget(tenantID, branchID, s.categoryRepo, s.foodItemRepo, s.assignmentRepo)
	return s.run(ctx, tenantID, target, data)
}

func (s *catalogImportService) ImportAddOns(ctx context.Context, tenantID, branchID uuid.UUID, data []byte) (*models.ImportResult, error) {
	target := newAddOnSheetTarget(tenantID, branchID, s.addOnGroupRepo, s.addOnRepo)
	return s.run(ctx, tenantID, target, data)
}

func (s *catalogImportService) ImportVariations(ctx context.Context, tenantID, branchID uuid.UUID, data []byte) (*models.ImportResult, error) {
	target := newVariationSheetTarget(tenantID, branchID, s.variationGroupRepo, s.variationRepo)
	return s.run(ctx, tenantID, target, data)
}

// run is the two-pass reconciliation loop. Pass one validates every row in
// isolation and collects parents named before they exist anywhere in the
// store. Pass two classifies each surviving row as a create or an update
// against the snapshot, bulk-inserts the creates and applies the updates with
// bounded concurrency. A failing row never takes any other row down with it.
func (s *catalogImportService) run(ctx context.Context, tenantID uuid.UUID, target SheetTarget, data []byte) (*models.ImportResult, error) {
	rows, err := importer.Parse(data, target.Schema())
	if err != nil {
		return nil, &common.ValidationError{Field: "file", Reason: err.Error()}
	}
	if s.maxRows > 0 && len(rows) > s.maxRows {
		return nil, &common.ValidationError{Field: "file",
			Reason: fmt.Sprintf("sheet has %d data rows, the limit is %d", len(rows), s.maxRows)}
	}
	if err := target.Snapshot(ctx); err != nil {
		return nil, &common.PersistenceError{Op: "snapshot natural keys", Err: err}
	}

	result := &models.ImportResult{TotalRows: len(rows)}
	failRow := func(number int, message string) {
		result.FailedCount++
		result.Errors = append(result.Errors, models.ImportRowError{RowNumber: number, Message: message})
	}

	// Pass one: per-row validation, and forward references to missing parents.
	valid := make([]importer.Row, 0, len(rows))
	seenMissing := make(map[string]bool)
	var missing []string
	for _, row := range rows {
		if len(row.Errs) > 0 {
			failRow(row.Number, strings.Join(row.Errs, "; "))
			continue
		}
		if err := target.Validate(row); err != nil {
			failRow(row.Number, err.Error())
			continue
		}
		valid = append(valid, row)
		name := target.ParentName(row)
		if _, ok := target.ResolveParent(name); !ok {
			key := NormalizeName(name)
			if !seenMissing[key] {
				seenMissing[key] = true
				missing = append(missing, name)
			}
		}
	}

	parentErrs := map[string]error{}
	if len(missing) > 0 {
		parentErrs = target.CreateParents(ctx, missing)
	}

	// Pass two: classify. Duplicate rows for the same child within one sheet
	// resolve in order: the first stages a create, the rest become updates.
	type pendingUpdate struct {
		row      importer.Row
		childID  uuid.UUID
		parentID uuid.UUID
	}
	type pendingCreate struct {
		row     importer.Row
		draftID uuid.UUID
	}
	var updates []pendingUpdate
	var creates []pendingCreate
	for _, row := range valid {
		name := target.ParentName(row)
		parentID, ok := target.ResolveParent(name)
		if !ok {
			if perr := parentErrs[NormalizeName(name)]; perr != nil {
				failRow(row.Number, fmt.Sprintf("%s %q: %v", target.ParentEntityType(), name, perr))
			} else {
				failRow(row.Number, (&common.ReferenceNotFoundError{EntityType: target.ParentEntityType(), Name: name}).Error())
			}
			continue
		}
		if childID, ok := target.ResolveChild(parentID, target.ChildName(row)); ok {
			updates = append(updates, pendingUpdate{row: row, childID: childID, parentID: parentID})
		} else {
			draftID := target.StageChild(parentID, row)
			creates = append(creates, pendingCreate{row: row, draftID: draftID})
		}
	}

	createErrs := target.FlushChildren(ctx)
	for _, c := range creates {
		if cerr := createErrs[c.draftID]; cerr != nil {
			failRow(c.row.Number, cerr.Error())
			continue
		}
		result.CreatedCount++
		result.SuccessCount++
		s.enqueueTranslation(ctx, tenantID, target.EntityType(), c.draftID)
	}

	sem := make(chan struct{}, maxConcurrentUpdates)
	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, u := range updates {
		wg.Add(1)
		sem <- struct{}{}
		go func(u pendingUpdate) {
			defer wg.Done()
			defer func() { <-sem }()
			uerr := target.UpdateChild(ctx, u.childID, u.parentID, u.row)
			mu.Lock()
			defer mu.Unlock()
			if uerr != nil {
				failRow(u.row.Number, uerr.Error())
				return
			}
			result.UpdatedCount++
			result.SuccessCount++
			s.enqueueTranslation(ctx, tenantID, target.EntityType(), u.childID)
		}(u)
	}
	wg.Wait()

	sort.Slice(result.Errors, func(i, j int) bool {
		return result.Errors[i].RowNumber < result.Errors[j].RowNumber
	})
	return result, nil
}

func (s *catalogImportService) enqueueTranslation(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID) {
	if err := s.enqueuer.EnqueueTranslation(ctx, tenantID, entityType, entityID); err != nil {
		s.recorder.SwallowedError(entityType, entityID, events.KindEnqueue, err)
	}
}
