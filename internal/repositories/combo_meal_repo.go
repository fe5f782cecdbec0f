package repositories

import (
	"context"
	"errors"
	"fmt"

	"menucraft/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ComboMealRepository interface {
	Create(ctx context.Context, combo *models.ComboMeal) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.ComboMeal, error)
	FindByNaturalKey(ctx context.Context, tenantID, branchID uuid.UUID, name string) (*models.ComboMeal, error)
	List(ctx context.Context, tenantID, branchID uuid.UUID) ([]*models.ComboMeal, error)
	Update(ctx context.Context, combo *models.ComboMeal) error
	SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error
	ReplaceItems(ctx context.Context, tenantID, comboID uuid.UUID, items []models.ComboMealItem) error
	ListItems(ctx context.Context, tenantID, comboID uuid.UUID) ([]models.ComboMealItem, error)
	CountByFoodItem(ctx context.Context, tenantID, foodItemID uuid.UUID) (int, error)
}

type comboMealRepo struct {
	db Database
}

func NewComboMealRepo(db Database) ComboMealRepository {
	return &comboMealRepo{db: db}
}

const comboMealColumns = `id, tenant_id, branch_id, name, description, price, is_active, deleted_at, created_at, updated_at`

func scanComboMeal(row pgx.Row) (*models.ComboMeal, error) {
	combo := &models.ComboMeal{}
	err := row.Scan(&combo.ID, &combo.TenantID, &combo.BranchID, &combo.Name, &combo.Description,
		&combo.Price, &combo.IsActive, &combo.DeletedAt, &combo.CreatedAt, &combo.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return combo, nil
}

func (r *comboMealRepo) Create(ctx context.Context, combo *models.ComboMeal) error {
	query := `
		INSERT INTO combo_meals (id, tenant_id, branch_id, name, description, price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, combo.ID, combo.TenantID, combo.BranchID, combo.Name,
		combo.Description, combo.Price, combo.IsActive)
	return err
}

func (r *comboMealRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.ComboMeal, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM combo_meals
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`, comboMealColumns)
	return scanComboMeal(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *comboMealRepo) FindByNaturalKey(ctx context.Context, tenantID, branchID uuid.UUID, name string) (*models.ComboMeal, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM combo_meals
		WHERE tenant_id = $1 AND branch_id = $2
		  AND lower(btrim(name)) = lower(btrim($3)) AND deleted_at IS NULL
	`, comboMealColumns)
	combo, err := scanComboMeal(r.db.QueryRow(ctx, query, tenantID, branchID, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return combo, nil
}

func (r *comboMealRepo) List(ctx context.Context, tenantID, branchID uuid.UUID) ([]*models.ComboMeal, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM combo_meals
		WHERE tenant_id = $1 AND branch_id = $2 AND deleted_at IS NULL
		ORDER BY name ASC
	`, comboMealColumns)
	rows, err := r.db.Query(ctx, query, tenantID, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var combos []*models.ComboMeal
	for rows.Next() {
		combo, err := scanComboMeal(rows)
		if err != nil {
			return nil, err
		}
		combos = append(combos, combo)
	}
	return combos, rows.Err()
}

func (r *comboMealRepo) Update(ctx context.Context, combo *models.ComboMeal) error {
	query := `
		UPDATE combo_meals
		SET name = $3, description = $4, price = $5, is_active = $6, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`
	_, err := r.db.Exec(ctx, query, combo.TenantID, combo.ID, combo.Name, combo.Description,
		combo.Price, combo.IsActive)
	return err
}

func (r *comboMealRepo) SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `
		UPDATE combo_meals
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

func (r *comboMealRepo) ReplaceItems(ctx context.Context, tenantID, comboID uuid.UUID, items []models.ComboMealItem) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM combo_meal_items WHERE tenant_id = $1 AND combo_meal_id = $2`, tenantID, comboID)
	for _, item := range items {
		batch.Queue(`INSERT INTO combo_meal_items (id, tenant_id, combo_meal_id, food_item_id, quantity) VALUES ($1, $2, $3, $4, $5)`,
			item.ID, tenantID, comboID, item.FoodItemID, item.Quantity)
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < len(items)+1; i++ {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *comboMealRepo) ListItems(ctx context.Context, tenantID, comboID uuid.UUID) ([]models.ComboMealItem, error) {
	query := `
		SELECT id, combo_meal_id, food_item_id, quantity
		FROM combo_meal_items
		WHERE tenant_id = $1 AND combo_meal_id = $2
	`
	rows, err := r.db.Query(ctx, query, tenantID, comboID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ComboMealItem
	for rows.Next() {
		var item models.ComboMealItem
		if err := rows.Scan(&item.ID, &item.ComboMealID, &item.FoodItemID, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *comboMealRepo) CountByFoodItem(ctx context.Context, tenantID, foodItemID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM combo_meal_items cmi
		JOIN combo_meals cm ON cm.tenant_id = cmi.tenant_id AND cm.id = cmi.combo_meal_id
		WHERE cmi.tenant_id = $1 AND cmi.food_item_id = $2 AND cm.deleted_at IS NULL
	`
	var count int
	err := r.db.QueryRow(ctx, query, tenantID, foodItemID).Scan(&count)
	return count, err
}
