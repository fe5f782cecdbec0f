package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"menucraft/internal/common"
	"menucraft/internal/importer"
	"menucraft/internal/models"
	"menucraft/internal/repositories"

	"github.com/google/uuid"
)

func requireField(row importer.Row, field string) error {
	if row.Get(field) == "" {
		return &common.ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}

func boolFromRow(row importer.Row, field string) *bool {
	raw := row.Get(field)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil // the reader already flagged the cell
	}
	return &v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, "|") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// --- food items sheet ---

type foodItemSheetTarget struct {
	tenantID       uuid.UUID
	branchID       uuid.UUID
	categoryRepo   repositories.CategoryRepository
	foodItemRepo   repositories.FoodItemRepository
	assignmentRepo repositories.MenuAssignmentRepository

	parents  *NameIndex
	children *NameIndex
	staged   []*models.FoodItem
	menus    map[uuid.UUID][]string
}

func newFoodItemSheetTarget(tenantID, branchID uuid.UUID, categoryRepo repositories.CategoryRepository,
	foodItemRepo repositories.FoodItemRepository, assignmentRepo repositories.MenuAssignmentRepository) *foodItemSheetTarget {
	return &foodItemSheetTarget{
		tenantID:       tenantID,
		branchID:       branchID,
		categoryRepo:   categoryRepo,
		foodItemRepo:   foodItemRepo,
		assignmentRepo: assignmentRepo,
		menus:          make(map[uuid.UUID][]string),
	}
}

func (t *foodItemSheetTarget) EntityType() string       { return models.EntityTypeFoodItem }
func (t *foodItemSheetTarget) ParentEntityType() string { return models.EntityTypeCategory }

func (t *foodItemSheetTarget) Schema() importer.FieldSchema {
	return importer.FieldSchema{
		{Name: "category_name", Kind: importer.KindString, Required: true},
		{Name: "item_name", Kind: importer.KindString, Required: true},
		{Name: "description", Kind: importer.KindString},
		{Name: "base_price", Kind: importer.KindFloat, Required: true},
		{Name: "stock_mode", Kind: importer.KindString},
		{Name: "is_active", Kind: importer.KindBool},
		{Name: "menu_types", Kind: importer.KindString},
	}
}

// Sheet categories live in the tenant-wide namespace; only items are pinned to
// the importing branch.
func (t *foodItemSheetTarget) Snapshot(ctx context.Context) error {
	parentRefs, err := t.categoryRepo.ListNames(ctx, t.tenantID, nil)
	if err != nil {
		return err
	}
	childRefs, err := t.foodItemRepo.ListNames(ctx, t.tenantID, t.branchID)
	if err != nil {
		return err
	}
	t.parents = NewNameIndex(parentRefs)
	t.children = NewNameIndex(childRefs)
	return nil
}

func (t *foodItemSheetTarget) Validate(row importer.Row) error {
	if err := requireField(row, "category_name"); err != nil {
		return err
	}
	if err := requireField(row, "item_name"); err != nil {
		return err
	}
	if err := requireField(row, "base_price"); err != nil {
		return err
	}
	if row.Float("base_price") < 0 {
		return &common.ValidationError{Field: "base_price", Reason: "must not be negative"}
	}
	switch mode := row.Get("stock_mode"); mode {
	case "", models.StockModeUnlimited, models.StockModeTracked, models.StockModeDaily:
	default:
		return &common.ValidationError{Field: "stock_mode", Reason: fmt.Sprintf("unknown mode %q", mode)}
	}
	return nil
}

func (t *foodItemSheetTarget) ParentName(row importer.Row) string { return row.Get("category_name") }
func (t *foodItemSheetTarget) ChildName(row importer.Row) string  { return row.Get("item_name") }

func (t *foodItemSheetTarget) ResolveParent(name string) (uuid.UUID, bool) {
	return t.parents.Resolve(name)
}

func (t *foodItemSheetTarget) CreateParents(ctx context.Context, names []string) map[string]error {
	drafts := make([]*models.Category, 0, len(names))
	for _, name := range names {
		drafts = append(drafts, &models.Category{
			ID:           uuid.New(),
			TenantID:     t.tenantID,
			Name:         strings.TrimSpace(name),
			CategoryType: "food",
			IsActive:     true,
		})
	}
	errs := make(map[string]error)
	if err := t.categoryRepo.InsertMany(ctx, drafts); err != nil {
		// Batch failed somewhere; retry one by one so a single bad name does
		// not block the rest.
		for _, draft := range drafts {
			if cerr := t.categoryRepo.Create(ctx, draft); cerr != nil {
				errs[NormalizeName(draft.Name)] = common.WrapStoreError("create category", models.EntityTypeCategory, draft.Name, cerr)
				continue
			}
			t.parents.Add(draft.Name, draft.ID)
		}
		return errs
	}
	for _, draft := range drafts {
		t.parents.Add(draft.Name, draft.ID)
	}
	return errs
}

// Food item names are unique per branch, not per category, so child resolution
// ignores the parent.
func (t *foodItemSheetTarget) ResolveChild(_ uuid.UUID, name string) (uuid.UUID, bool) {
	return t.children.Resolve(name)
}

func (t *foodItemSheetTarget) StageChild(parentID uuid.UUID, row importer.Row) uuid.UUID {
	item := &models.FoodItem{
		ID:          uuid.New(),
		TenantID:    t.tenantID,
		BranchID:    t.branchID,
		CategoryID:  parentID,
		Name:        row.Get("item_name"),
		Description: row.Get("description"),
		BasePrice:   row.Float("base_price"),
		StockMode:   models.StockModeUnlimited,
		IsActive:    true,
	}
	if mode := row.Get("stock_mode"); mode != "" {
		item.StockMode = mode
	}
	if active := boolFromRow(row, "is_active"); active != nil {
		item.IsActive = *active
	}
	if menuTypes := splitList(row.Get("menu_types")); len(menuTypes) > 0 {
		t.menus[item.ID] = menuTypes
	}
	t.staged = append(t.staged, item)
	t.children.Add(item.Name, item.ID)
	return item.ID
}

func (t *foodItemSheetTarget) FlushChildren(ctx context.Context) map[uuid.UUID]error {
	errs := make(map[uuid.UUID]error)
	if len(t.staged) == 0 {
		return errs
	}
	if err := t.foodItemRepo.InsertMany(ctx, t.staged); err != nil {
		for _, item := range t.staged {
			if cerr := t.foodItemRepo.Create(ctx, item); cerr != nil {
				errs[item.ID] = common.WrapStoreError("create food item", models.EntityTypeFoodItem, item.Name, cerr)
			}
		}
	}
	for _, item := range t.staged {
		if errs[item.ID] != nil {
			continue
		}
		if aerr := t.assignMenus(ctx, item.ID); aerr != nil {
			errs[item.ID] = aerr
		}
	}
	return errs
}

func (t *foodItemSheetTarget) UpdateChild(ctx context.Context, childID, parentID uuid.UUID, row importer.Row) error {
	price := row.Float("base_price")
	upd := &models.FoodItemUpdate{
		CategoryID: &parentID,
		BasePrice:  &price,
	}
	if description := row.Get("description"); description != "" {
		upd.Description = &description
	}
	if mode := row.Get("stock_mode"); mode != "" {
		upd.StockMode = &mode
	}
	if active := boolFromRow(row, "is_active"); active != nil {
		upd.IsActive = active
	}
	if err := t.foodItemRepo.UpdateFields(ctx, t.tenantID, childID, upd); err != nil {
		return common.WrapStoreError("update food item", models.EntityTypeFoodItem, row.Get("item_name"), err)
	}
	if menuTypes := splitList(row.Get("menu_types")); len(menuTypes) > 0 {
		t.menus[childID] = menuTypes
		return t.assignMenus(ctx, childID)
	}
	return nil
}

func (t *foodItemSheetTarget) assignMenus(ctx context.Context, itemID uuid.UUID) error {
	for _, menuType := range t.menus[itemID] {
		assignment := &models.MenuAssignment{
			ID:         uuid.New(),
			TenantID:   t.tenantID,
			MenuType:   NormalizeName(menuType),
			FoodItemID: itemID,
		}
		if err := t.assignmentRepo.Assign(ctx, assignment); err != nil {
			return common.WrapStoreError("assign menu", models.EntityTypeMenu, menuType, err)
		}
	}
	return nil
}

// --- add-ons sheet ---

type addOnSheetTarget struct {
	tenantID  uuid.UUID
	groupRepo repositories.AddOnGroupRepository
	addOnRepo repositories.AddOnRepository

	parents  *NameIndex
	children *ChildIndex
	staged   []*models.AddOn
}

func newAddOnSheetTarget(tenantID, _ uuid.UUID, groupRepo repositories.AddOnGroupRepository,
	addOnRepo repositories.AddOnRepository) *addOnSheetTarget {
	return &addOnSheetTarget{tenantID: tenantID, groupRepo: groupRepo, addOnRepo: addOnRepo}
}

func (t *addOnSheetTarget) EntityType() string       { return models.EntityTypeAddOn }
func (t *addOnSheetTarget) ParentEntityType() string { return models.EntityTypeAddOnGroup }

func (t *addOnSheetTarget) Schema() importer.FieldSchema {
	return importer.FieldSchema{
		{Name: "group_name", Kind: importer.KindString, Required: true},
		{Name: "addon_name", Kind: importer.KindString, Required: true},
		{Name: "price", Kind: importer.KindFloat, Required: true},
		{Name: "selection_mode", Kind: importer.KindString},
		{Name: "max_select", Kind: importer.KindInt},
		{Name: "is_active", Kind: importer.KindBool},
	}
}

func (t *addOnSheetTarget) Snapshot(ctx context.Context) error {
	parentRefs, err := t.groupRepo.ListNames(ctx, t.tenantID, nil)
	if err != nil {
		return err
	}
	childRefs, err := t.addOnRepo.ListNameRefs(ctx, t.tenantID)
	if err != nil {
		return err
	}
	t.parents = NewNameIndex(parentRefs)
	t.children = NewChildIndex(childRefs)
	return nil
}

func (t *addOnSheetTarget) Validate(row importer.Row) error {
	if err := requireField(row, "group_name"); err != nil {
		return err
	}
	if err := requireField(row, "addon_name"); err != nil {
		return err
	}
	if err := requireField(row, "price"); err != nil {
		return err
	}
	if row.Float("price") < 0 {
		return &common.ValidationError{Field: "price", Reason: "must not be negative"}
	}
	switch mode := row.Get("selection_mode"); mode {
	case "", models.SelectionModeSingle, models.SelectionModeMultiple:
	default:
		return &common.ValidationError{Field: "selection_mode", Reason: fmt.Sprintf("unknown mode %q", mode)}
	}
	return nil
}

func (t *addOnSheetTarget) ParentName(row importer.Row) string { return row.Get("group_name") }
func (t *addOnSheetTarget) ChildName(row importer.Row) string  { return row.Get("addon_name") }

func (t *addOnSheetTarget) ResolveParent(name string) (uuid.UUID, bool) {
	return t.parents.Resolve(name)
}

func (t *addOnSheetTarget) CreateParents(ctx context.Context, names []string) map[string]error {
	drafts := make([]*models.AddOnGroup, 0, len(names))
	for _, name := range names {
		drafts = append(drafts, &models.AddOnGroup{
			ID:            uuid.New(),
			TenantID:      t.tenantID,
			Name:          strings.TrimSpace(name),
			SelectionMode: models.SelectionModeMultiple,
			IsActive:      true,
		})
	}
	errs := make(map[string]error)
	if err := t.groupRepo.InsertMany(ctx, drafts); err != nil {
		for _, draft := range drafts {
			if cerr := t.groupRepo.Create(ctx, draft); cerr != nil {
				errs[NormalizeName(draft.Name)] = common.WrapStoreError("create addon group", models.EntityTypeAddOnGroup, draft.Name, cerr)
				continue
			}
			t.parents.Add(draft.Name, draft.ID)
		}
		return errs
	}
	for _, draft := range drafts {
		t.parents.Add(draft.Name, draft.ID)
	}
	return errs
}

func (t *addOnSheetTarget) ResolveChild(parentID uuid.UUID, name string) (uuid.UUID, bool) {
	return t.children.Resolve(parentID, name)
}

func (t *addOnSheetTarget) StageChild(parentID uuid.UUID, row importer.Row) uuid.UUID {
	addon := &models.AddOn{
		ID:       uuid.New(),
		TenantID: t.tenantID,
		GroupID:  parentID,
		Name:     row.Get("addon_name"),
		Price:    row.Float("price"),
		IsActive: true,
	}
	if active := boolFromRow(row, "is_active"); active != nil {
		addon.IsActive = *active
	}
	t.staged = append(t.staged, addon)
	t.children.Add(parentID, addon.Name, addon.ID)
	return addon.ID
}

func (t *addOnSheetTarget) FlushChildren(ctx context.Context) map[uuid.UUID]error {
	errs := make(map[uuid.UUID]error)
	if len(t.staged) == 0 {
		return errs
	}
	if err := t.addOnRepo.InsertMany(ctx, t.staged); err != nil {
		for _, addon := range t.staged {
			if cerr := t.addOnRepo.Create(ctx, addon); cerr != nil {
				errs[addon.ID] = common.WrapStoreError("create addon", models.EntityTypeAddOn, addon.Name, cerr)
			}
		}
	}
	return errs
}

func (t *addOnSheetTarget) UpdateChild(ctx context.Context, childID, _ uuid.UUID, row importer.Row) error {
	price := row.Float("price")
	upd := &models.AddOnUpdate{Price: &price}
	if active := boolFromRow(row, "is_active"); active != nil {
		upd.IsActive = active
	}
	if err := t.addOnRepo.UpdateFields(ctx, t.tenantID, childID, upd); err != nil {
		return common.WrapStoreError("update addon", models.EntityTypeAddOn, row.Get("addon_name"), err)
	}
	return nil
}

// --- variations sheet ---

type variationSheetTarget struct {
	tenantID      uuid.UUID
	groupRepo     repositories.VariationGroupRepository
	variationRepo repositories.VariationRepository

	parents  *NameIndex
	children *ChildIndex
	staged   []*models.Variation
}

func newVariationSheetTarget(tenantID, _ uuid.UUID, groupRepo repositories.VariationGroupRepository,
	variationRepo repositories.VariationRepository) *variationSheetTarget {
	return &variationSheetTarget{tenantID: tenantID, groupRepo: groupRepo, variationRepo: variationRepo}
}

func (t *variationSheetTarget) EntityType() string       { return models.EntityTypeVariation }
func (t *variationSheetTarget) ParentEntityType() string { return models.EntityTypeVariationGroup }

func (t *variationSheetTarget) Schema() importer.FieldSchema {
	return importer.FieldSchema{
		{Name: "group_name", Kind: importer.KindString, Required: true},
		{Name: "variation_name", Kind: importer.KindString, Required: true},
		{Name: "price_delta", Kind: importer.KindFloat},
		{Name: "is_active", Kind: importer.KindBool},
	}
}

func (t *variationSheetTarget) Snapshot(ctx context.Context) error {
	parentRefs, err := t.groupRepo.ListNames(ctx, t.tenantID, nil)
	if err != nil {
		return err
	}
	childRefs, err := t.variationRepo.ListNameRefs(ctx, t.tenantID)
	if err != nil {
		return err
	}
	t.parents = NewNameIndex(parentRefs)
	t.children = NewChildIndex(childRefs)
	return nil
}

func (t *variationSheetTarget) Validate(row importer.Row) error {
	if err := requireField(row, "group_name"); err != nil {
		return err
	}
	return requireField(row, "variation_name")
}

func (t *variationSheetTarget) ParentName(row importer.Row) string { return row.Get("group_name") }
func (t *variationSheetTarget) ChildName(row importer.Row) string {
	return row.Get("variation_name")
}

func (t *variationSheetTarget) ResolveParent(name string) (uuid.UUID, bool) {
	return t.parents.Resolve(name)
}

func (t *variationSheetTarget) CreateParents(ctx context.Context, names []string) map[string]error {
	drafts := make([]*models.VariationGroup, 0, len(names))
	for _, name := range names {
		drafts = append(drafts, &models.VariationGroup{
			ID:       uuid.New(),
			TenantID: t.tenantID,
			Name:     strings.TrimSpace(name),
			IsActive: true,
		})
	}
	errs := make(map[string]error)
	if err := t.groupRepo.InsertMany(ctx, drafts); err != nil {
		for _, draft := range drafts {
			if cerr := t.groupRepo.Create(ctx, draft); cerr != nil {
				errs[NormalizeName(draft.Name)] = common.WrapStoreError("create variation group", models.EntityTypeVariationGroup, draft.Name, cerr)
				continue
			}
			t.parents.Add(draft.Name, draft.ID)
		}
		return errs
	}
	for _, draft := range drafts {
		t.parents.Add(draft.Name, draft.ID)
	}
	return errs
}

func (t *variationSheetTarget) ResolveChild(parentID uuid.UUID, name string) (uuid.UUID, bool) {
	return t.children.Resolve(parentID, name)
}

func (t *variationSheetTarget) StageChild(parentID uuid.UUID, row importer.Row) uuid.UUID {
	variation := &models.Variation{
		ID:         uuid.New(),
		TenantID:   t.tenantID,
		GroupID:    parentID,
		Name:       row.Get("variation_name"),
		PriceDelta: row.Float("price_delta"),
		IsActive:   true,
	}
	if active := boolFromRow(row, "is_active"); active != nil {
		variation.IsActive = *active
	}
	t.staged = append(t.staged, variation)
	t.children.Add(parentID, variation.Name, variation.ID)
	return variation.ID
}

func (t *variationSheetTarget) FlushChildren(ctx context.Context) map[uuid.UUID]error {
	errs := make(map[uuid.UUID]error)
	if len(t.staged) == 0 {
		return errs
	}
	if err := t.variationRepo.InsertMany(ctx, t.staged); err != nil {
		for _, variation := range t.staged {
			if cerr := t.variationRepo.Create(ctx, variation); cerr != nil {
				errs[variation.ID] = common.WrapStoreError("create variation", models.EntityTypeVariation, variation.Name, cerr)
			}
		}
	}
	return errs
}

func (t *variationSheetTarget) UpdateChild(ctx context.Context, childID, _ uuid.UUID, row importer.Row) error {
	upd := &models.VariationUpdate{}
	if row.Get("price_delta") != "" {
		delta := row.Float("price_delta")
		upd.PriceDelta = &delta
	}
	if active := boolFromRow(row, "is_active"); active != nil {
		upd.IsActive = active
	}
	if err := t.variationRepo.UpdateFields(ctx, t.tenantID, childID, upd); err != nil {
		return common.WrapStoreError("update variation", models.EntityTypeVariation, row.Get("variation_name"), err)
	}
	return nil
}
