package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"menucraft/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type FoodItemRepository interface {
	Create(ctx context.Context, item *models.FoodItem) error
	InsertMany(ctx context.Context, items []*models.FoodItem) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.FoodItem, error)
	FindByNaturalKey(ctx context.Context, tenantID, branchID uuid.UUID, name string) (*models.FoodItem, error)
	ListNames(ctx context.Context, tenantID, branchID uuid.UUID) ([]NameRef, error)
	List(ctx context.Context, tenantID, branchID uuid.UUID, limit, offset int) ([]*models.FoodItem, error)
	ListByCategory(ctx context.Context, tenantID, categoryID uuid.UUID) ([]*models.FoodItem, error)
	CountByCategory(ctx context.Context, tenantID, categoryID uuid.UUID) (int, error)
	UpdateFields(ctx context.Context, tenantID, id uuid.UUID, upd *models.FoodItemUpdate) error
	SetActive(ctx context.Context, tenantID, id uuid.UUID, active bool) error
	BulkSetActive(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, active bool) error
	SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error

	ReplaceLabels(ctx context.Context, tenantID, itemID uuid.UUID, labels []string) error
	ListLabels(ctx context.Context, tenantID, itemID uuid.UUID) ([]string, error)
	ReplaceAddOnGroups(ctx context.Context, tenantID, itemID uuid.UUID, groupIDs []uuid.UUID) error
	ListAddOnGroupIDs(ctx context.Context, tenantID, itemID uuid.UUID) ([]uuid.UUID, error)
	ResetDailyAvailability(ctx context.Context) (int64, error)
	PurgeExpiredDiscounts(ctx context.Context) (int64, error)

	CreateDiscount(ctx context.Context, tenantID uuid.UUID, discount *models.ItemDiscount) error
	ListDiscounts(ctx context.Context, tenantID, itemID uuid.UUID) ([]models.ItemDiscount, error)
	DeleteDiscount(ctx context.Context, tenantID, itemID, discountID uuid.UUID) error
}

type foodItemRepo struct {
	db Database
}

func NewFoodItemRepo(db Database) FoodItemRepository {
	return &foodItemRepo{db: db}
}

const foodItemColumns = `id, tenant_id, branch_id, category_id, name, description, base_price, stock_mode, is_active, deleted_at, created_at, updated_at`

func scanFoodItem(row pgx.Row) (*models.FoodItem, error) {
	item := &models.FoodItem{}
	err := row.Scan(&item.ID, &item.TenantID, &item.BranchID, &item.CategoryID, &item.Name, &item.Description,
		&item.BasePrice, &item.StockMode, &item.IsActive, &item.DeletedAt, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *foodItemRepo) Create(ctx context.Context, item *models.FoodItem) error {
	query := `
		INSERT INTO food_items (id, tenant_id, branch_id, category_id, name, description, base_price, stock_mode, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.TenantID, item.BranchID, item.CategoryID, item.Name,
		item.Description, item.BasePrice, item.StockMode, item.IsActive)
	return err
}

func (r *foodItemRepo) InsertMany(ctx context.Context, items []*models.FoodItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
		INSERT INTO food_items (id, tenant_id, branch_id, category_id, name, description, base_price, stock_mode, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.ID, item.TenantID, item.BranchID, item.CategoryID, item.Name,
			item.Description, item.BasePrice, item.StockMode, item.IsActive)
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close()
	for range items {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *foodItemRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.FoodItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM food_items
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`, foodItemColumns)
	return scanFoodItem(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *foodItemRepo) FindByNaturalKey(ctx context.Context, tenantID, branchID uuid.UUID, name string) (*models.FoodItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM food_items
		WHERE tenant_id = $1 AND branch_id = $2
		  AND lower(btrim(name)) = lower(btrim($3)) AND deleted_at IS NULL
	`, foodItemColumns)
	item, err := scanFoodItem(r.db.QueryRow(ctx, query, tenantID, branchID, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *foodItemRepo) ListNames(ctx context.Context, tenantID, branchID uuid.UUID) ([]NameRef, error) {
	query := `
		SELECT id, name
		FROM food_items
		WHERE tenant_id = $1 AND branch_id = $2 AND deleted_at IS NULL
	`
	rows, err := r.db.Query(ctx, query, tenantID, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []NameRef
	for rows.Next() {
		var ref NameRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *foodItemRepo) List(ctx context.Context, tenantID, branchID uuid.UUID, limit, offset int) ([]*models.FoodItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM food_items
		WHERE tenant_id = $1 AND branch_id = $2 AND deleted_at IS NULL
		ORDER BY name ASC
		LIMIT $3 OFFSET $4
	`, foodItemColumns)
	rows, err := r.db.Query(ctx, query, tenantID, branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFoodItems(rows)
}

func (r *foodItemRepo) ListByCategory(ctx context.Context, tenantID, categoryID uuid.UUID) ([]*models.FoodItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM food_items
		WHERE tenant_id = $1 AND category_id = $2 AND deleted_at IS NULL
		ORDER BY name ASC
	`, foodItemColumns)
	rows, err := r.db.Query(ctx, query, tenantID, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFoodItems(rows)
}

func collectFoodItems(rows pgx.Rows) ([]*models.FoodItem, error) {
	var items []*models.FoodItem
	for rows.Next() {
		item, err := scanFoodItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *foodItemRepo) CountByCategory(ctx context.Context, tenantID, categoryID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM food_items
		WHERE tenant_id = $1 AND category_id = $2 AND deleted_at IS NULL
	`
	var count int
	err := r.db.QueryRow(ctx, query, tenantID, categoryID).Scan(&count)
	return count, err
}

func (r *foodItemRepo) UpdateFields(ctx context.Context, tenantID, id uuid.UUID, upd *models.FoodItemUpdate) error {
	set := []string{}
	args := []interface{}{}
	idx := 1
	add := func(column string, value interface{}) {
		set = append(set, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}
	if upd.CategoryID != nil {
		add("category_id", *upd.CategoryID)
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.BasePrice != nil {
		add("base_price", *upd.BasePrice)
	}
	if upd.StockMode != nil {
		add("stock_mode", *upd.StockMode)
	}
	if upd.IsActive != nil {
		add("is_active", *upd.IsActive)
	}
	if len(set) == 0 {
		return nil
	}
	query := fmt.Sprintf(`
		UPDATE food_items
		SET %s, updated_at = NOW()
		WHERE tenant_id = $%d AND id = $%d AND deleted_at IS NULL
	`, strings.Join(set, ", "), idx, idx+1)
	args = append(args, tenantID, id)
	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *foodItemRepo) SetActive(ctx context.Context, tenantID, id uuid.UUID, active bool) error {
	query := `
		UPDATE food_items
		SET is_active = $3, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`
	_, err := r.db.Exec(ctx, query, tenantID, id, active)
	return err
}

func (r *foodItemRepo) BulkSetActive(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, active bool) error {
	if len(ids) == 0 {
		return nil
	}
	query := `
		UPDATE food_items
		SET is_active = $3, updated_at = NOW()
		WHERE tenant_id = $1 AND id = ANY($2) AND deleted_at IS NULL
	`
	_, err := r.db.Exec(ctx, query, tenantID, ids, active)
	return err
}

func (r *foodItemRepo) SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `
		UPDATE food_items
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

// ResetDailyAvailability flips every daily-stock item back to active. Runs at
// service-day rollover across all tenants.
func (r *foodItemRepo) ResetDailyAvailability(ctx context.Context) (int64, error) {
	query := `
		UPDATE food_items
		SET is_active = TRUE, updated_at = NOW()
		WHERE stock_mode = $1 AND is_active = FALSE AND deleted_at IS NULL
	`
	tag, err := r.db.Exec(ctx, query, models.StockModeDaily)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *foodItemRepo) PurgeExpiredDiscounts(ctx context.Context) (int64, error) {
	query := `DELETE FROM item_discounts WHERE ends_at < NOW()`
	tag, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *foodItemRepo) ReplaceLabels(ctx context.Context, tenantID, itemID uuid.UUID, labels []string) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM food_item_labels WHERE tenant_id = $1 AND food_item_id = $2`, tenantID, itemID)
	for _, label := range labels {
		batch.Queue(`INSERT INTO food_item_labels (tenant_id, food_item_id, label) VALUES ($1, $2, $3)`,
			tenantID, itemID, label)
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < len(labels)+1; i++ {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *foodItemRepo) ListLabels(ctx context.Context, tenantID, itemID uuid.UUID) ([]string, error) {
	query := `
		SELECT label
		FROM food_item_labels
		WHERE tenant_id = $1 AND food_item_id = $2
		ORDER BY label ASC
	`
	rows, err := r.db.Query(ctx, query, tenantID, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

func (r *foodItemRepo) ReplaceAddOnGroups(ctx context.Context, tenantID, itemID uuid.UUID, groupIDs []uuid.UUID) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM food_item_addon_groups WHERE tenant_id = $1 AND food_item_id = $2`, tenantID, itemID)
	for _, groupID := range groupIDs {
		batch.Queue(`INSERT INTO food_item_addon_groups (tenant_id, food_item_id, addon_group_id) VALUES ($1, $2, $3)`,
			tenantID, itemID, groupID)
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < len(groupIDs)+1; i++ {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *foodItemRepo) ListAddOnGroupIDs(ctx context.Context, tenantID, itemID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT addon_group_id
		FROM food_item_addon_groups
		WHERE tenant_id = $1 AND food_item_id = $2
	`
	rows, err := r.db.Query(ctx, query, tenantID, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *foodItemRepo) CreateDiscount(ctx context.Context, tenantID uuid.UUID, discount *models.ItemDiscount) error {
	query := `
		INSERT INTO item_discounts (id, tenant_id, food_item_id, name, percent, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query, discount.ID, tenantID, discount.FoodItemID, discount.Name,
		discount.Percent, discount.StartsAt, discount.EndsAt)
	return err
}

func (r *foodItemRepo) ListDiscounts(ctx context.Context, tenantID, itemID uuid.UUID) ([]models.ItemDiscount, error) {
	query := `
		SELECT id, food_item_id, name, percent, starts_at, ends_at
		FROM item_discounts
		WHERE tenant_id = $1 AND food_item_id = $2
		ORDER BY starts_at ASC
	`
	rows, err := r.db.Query(ctx, query, tenantID, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var discounts []models.ItemDiscount
	for rows.Next() {
		var d models.ItemDiscount
		if err := rows.Scan(&d.ID, &d.FoodItemID, &d.Name, &d.Percent, &d.StartsAt, &d.EndsAt); err != nil {
			return nil, err
		}
		discounts = append(discounts, d)
	}
	return discounts, rows.Err()
}

func (r *foodItemRepo) DeleteDiscount(ctx context.Context, tenantID, itemID, discountID uuid.UUID) error {
	query := `DELETE FROM item_discounts WHERE tenant_id = $1 AND food_item_id = $2 AND id = $3`
	_, err := r.db.Exec(ctx, query, tenantID, itemID, discountID)
	return err
}
