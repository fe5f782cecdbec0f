package repositories

import (
	"context"

	"menucraft/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MenuAssignmentRepository interface {
	Assign(ctx context.Context, assignment *models.MenuAssignment) error
	Unassign(ctx context.Context, tenantID uuid.UUID, menuType string, foodItemID uuid.UUID) error
	ListByMenuType(ctx context.Context, tenantID uuid.UUID, menuType string) ([]*models.MenuAssignment, error)
	ListByMenuTypeForBranch(ctx context.Context, tenantID, branchID uuid.UUID, menuType string) ([]*models.MenuAssignment, error)
	ListByFoodItem(ctx context.Context, tenantID, foodItemID uuid.UUID) ([]*models.MenuAssignment, error)
	CountActiveMenusByItems(ctx context.Context, tenantID, branchID uuid.UUID, foodItemIDs []uuid.UUID) (map[uuid.UUID]int, error)
	CountActiveItemsByMenus(ctx context.Context, tenantID uuid.UUID, menuTypes []string) (map[string]int, error)
}

type menuAssignmentRepo struct {
	db Database
}

func NewMenuAssignmentRepo(db Database) MenuAssignmentRepository {
	return &menuAssignmentRepo{db: db}
}

func (r *menuAssignmentRepo) Assign(ctx context.Context, assignment *models.MenuAssignment) error {
	query := `
		INSERT INTO menu_assignments (id, tenant_id, menu_type, food_item_id, display_order)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tenant_id, menu_type, food_item_id) DO UPDATE SET display_order = EXCLUDED.display_order
	`
	_, err := r.db.Exec(ctx, query, assignment.ID, assignment.TenantID, assignment.MenuType,
		assignment.FoodItemID, assignment.DisplayOrder)
	return err
}

func (r *menuAssignmentRepo) Unassign(ctx context.Context, tenantID uuid.UUID, menuType string, foodItemID uuid.UUID) error {
	query := `DELETE FROM menu_assignments WHERE tenant_id = $1 AND menu_type = $2 AND food_item_id = $3`
	_, err := r.db.Exec(ctx, query, tenantID, menuType, foodItemID)
	return err
}

func (r *menuAssignmentRepo) ListByMenuType(ctx context.Context, tenantID uuid.UUID, menuType string) ([]*models.MenuAssignment, error) {
	query := `
		SELECT id, tenant_id, menu_type, food_item_id, display_order
		FROM menu_assignments
		WHERE tenant_id = $1 AND menu_type = $2
		ORDER BY display_order ASC
	`
	rows, err := r.db.Query(ctx, query, tenantID, menuType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAssignments(rows)
}

// ListByMenuTypeForBranch narrows a menu-type listing to assignments whose
// food item lives on the given branch. Assignments themselves carry no branch;
// menu types are shared tenant-wide, so cascades must scope through the items.
func (r *menuAssignmentRepo) ListByMenuTypeForBranch(ctx context.Context, tenantID, branchID uuid.UUID, menuType string) ([]*models.MenuAssignment, error) {
	query := `
		SELECT ma.id, ma.tenant_id, ma.menu_type, ma.food_item_id, ma.display_order
		FROM menu_assignments ma
		JOIN food_items fi ON fi.tenant_id = ma.tenant_id AND fi.id = ma.food_item_id
		WHERE ma.tenant_id = $1 AND fi.branch_id = $2 AND ma.menu_type = $3
		  AND fi.deleted_at IS NULL
		ORDER BY ma.display_order ASC
	`
	rows, err := r.db.Query(ctx, query, tenantID, branchID, menuType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAssignments(rows)
}

func (r *menuAssignmentRepo) ListByFoodItem(ctx context.Context, tenantID, foodItemID uuid.UUID) ([]*models.MenuAssignment, error) {
	query := `
		SELECT id, tenant_id, menu_type, food_item_id, display_order
		FROM menu_assignments
		WHERE tenant_id = $1 AND food_item_id = $2
	`
	rows, err := r.db.Query(ctx, query, tenantID, foodItemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAssignments(rows)
}

func collectAssignments(rows pgx.Rows) ([]*models.MenuAssignment, error) {
	var assignments []*models.MenuAssignment
	for rows.Next() {
		a := &models.MenuAssignment{}
		if err := rows.Scan(&a.ID, &a.TenantID, &a.MenuType, &a.FoodItemID, &a.DisplayOrder); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// CountActiveMenusByItems reports, per food item, how many active menus on the
// branch currently contain it. Items absent from the result are on no active menu.
func (r *menuAssignmentRepo) CountActiveMenusByItems(ctx context.Context, tenantID, branchID uuid.UUID, foodItemIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(foodItemIDs))
	if len(foodItemIDs) == 0 {
		return counts, nil
	}
	query := `
		SELECT ma.food_item_id, COUNT(*)
		FROM menu_assignments ma
		JOIN menus m ON m.tenant_id = ma.tenant_id AND m.branch_id = $2 AND m.menu_type = ma.menu_type
		WHERE ma.tenant_id = $1 AND ma.food_item_id = ANY($3)
		  AND m.is_active = TRUE AND m.deleted_at IS NULL
		GROUP BY ma.food_item_id
	`
	rows, err := r.db.Query(ctx, query, tenantID, branchID, foodItemIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var itemID uuid.UUID
		var count int
		if err := rows.Scan(&itemID, &count); err != nil {
			return nil, err
		}
		counts[itemID] = count
	}
	return counts, rows.Err()
}

// CountActiveItemsByMenus reports, per menu type, how many active food items it
// still contains. Menu types absent from the result have none.
func (r *menuAssignmentRepo) CountActiveItemsByMenus(ctx context.Context, tenantID uuid.UUID, menuTypes []string) (map[string]int, error) {
	counts := make(map[string]int, len(menuTypes))
	if len(menuTypes) == 0 {
		return counts, nil
	}
	query := `
		SELECT ma.menu_type, COUNT(*)
		FROM menu_assignments ma
		JOIN food_items fi ON fi.tenant_id = ma.tenant_id AND fi.id = ma.food_item_id
		WHERE ma.tenant_id = $1 AND ma.menu_type = ANY($2)
		  AND fi.is_active = TRUE AND fi.deleted_at IS NULL
		GROUP BY ma.menu_type
	`
	rows, err := r.db.Query(ctx, query, tenantID, menuTypes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var menuType string
		var count int
		if err := rows.Scan(&menuType, &count); err != nil {
			return nil, err
		}
		counts[menuType] = count
	}
	return counts, rows.Err()
}
