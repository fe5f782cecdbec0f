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

type MenuRepository interface {
	Create(ctx context.Context, menu *models.Menu) error
	GetByType(ctx context.Context, tenantID, branchID uuid.UUID, menuType string) (*models.Menu, error)
	GetByTypes(ctx context.Context, tenantID, branchID uuid.UUID, menuTypes []string) ([]*models.Menu, error)
	List(ctx context.Context, tenantID, branchID uuid.UUID) ([]*models.Menu, error)
	SetActive(ctx context.Context, tenantID, branchID uuid.UUID, menuType string, active bool) error
	BulkSetActiveByTypes(ctx context.Context, tenantID, branchID uuid.UUID, menuTypes []string, active bool) error
	SoftDelete(ctx context.Context, tenantID, branchID uuid.UUID, menuType string) error
	SeedDefaults(ctx context.Context, tenantID, branchID uuid.UUID) error
}

type menuRepo struct {
	db Database
}

func NewMenuRepo(db Database) MenuRepository {
	return &menuRepo{db: db}
}

const menuColumns = `id, tenant_id, branch_id, menu_type, display_name, is_active, is_default, deleted_at, created_at, updated_at`

func scanMenu(row pgx.Row) (*models.Menu, error) {
	menu := &models.Menu{}
	err := row.Scan(&menu.ID, &menu.TenantID, &menu.BranchID, &menu.MenuType, &menu.DisplayName,
		&menu.IsActive, &menu.IsDefault, &menu.DeletedAt, &menu.CreatedAt, &menu.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return menu, nil
}

func (r *menuRepo) Create(ctx context.Context, menu *models.Menu) error {
	query := `
		INSERT INTO menus (id, tenant_id, branch_id, menu_type, display_name, is_active, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, menu.ID, menu.TenantID, menu.BranchID, menu.MenuType,
		menu.DisplayName, menu.IsActive, menu.IsDefault)
	return err
}

func (r *menuRepo) GetByType(ctx context.Context, tenantID, branchID uuid.UUID, menuType string) (*models.Menu, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM menus
		WHERE tenant_id = $1 AND branch_id = $2 AND menu_type = $3 AND deleted_at IS NULL
	`, menuColumns)
	menu, err := scanMenu(r.db.QueryRow(ctx, query, tenantID, branchID, menuType))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return menu, nil
}

func (r *menuRepo) GetByTypes(ctx context.Context, tenantID, branchID uuid.UUID, menuTypes []string) ([]*models.Menu, error) {
	if len(menuTypes) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM menus
		WHERE tenant_id = $1 AND branch_id = $2 AND menu_type = ANY($3) AND deleted_at IS NULL
	`, menuColumns)
	rows, err := r.db.Query(ctx, query, tenantID, branchID, menuTypes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMenus(rows)
}

func (r *menuRepo) List(ctx context.Context, tenantID, branchID uuid.UUID) ([]*models.Menu, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM menus
		WHERE tenant_id = $1 AND branch_id = $2 AND deleted_at IS NULL
		ORDER BY menu_type ASC
	`, menuColumns)
	rows, err := r.db.Query(ctx, query, tenantID, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMenus(rows)
}

func collectMenus(rows pgx.Rows) ([]*models.Menu, error) {
	var menus []*models.Menu
	for rows.Next() {
		menu, err := scanMenu(rows)
		if err != nil {
			return nil, err
		}
		menus = append(menus, menu)
	}
	return menus, rows.Err()
}

func (r *menuRepo) SetActive(ctx context.Context, tenantID, branchID uuid.UUID, menuType string, active bool) error {
	query := `
		UPDATE menus
		SET is_active = $4, updated_at = NOW()
		WHERE tenant_id = $1 AND branch_id = $2 AND menu_type = $3 AND deleted_at IS NULL
	`
	_, err := r.db.Exec(ctx, query, tenantID, branchID, menuType, active)
	return err
}

func (r *menuRepo) BulkSetActiveByTypes(ctx context.Context, tenantID, branchID uuid.UUID, menuTypes []string, active bool) error {
	if len(menuTypes) == 0 {
		return nil
	}
	query := `
		UPDATE menus
		SET is_active = $4, updated_at = NOW()
		WHERE tenant_id = $1 AND branch_id = $2 AND menu_type = ANY($3) AND deleted_at IS NULL
	`
	_, err := r.db.Exec(ctx, query, tenantID, branchID, menuTypes, active)
	return err
}

// SoftDelete never touches default menus regardless of what the caller asks for.
func (r *menuRepo) SoftDelete(ctx context.Context, tenantID, branchID uuid.UUID, menuType string) error {
	query := `
		UPDATE menus
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE tenant_id = $1 AND branch_id = $2 AND menu_type = $3 AND is_default = FALSE AND deleted_at IS NULL
	`
	_, err := r.db.Exec(ctx, query, tenantID, branchID, menuType)
	return err
}

func (r *menuRepo) SeedDefaults(ctx context.Context, tenantID, branchID uuid.UUID) error {
	query := `
		INSERT INTO menus (id, tenant_id, branch_id, menu_type, display_name, is_active, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, TRUE, NOW(), NOW())
		ON CONFLICT (tenant_id, branch_id, menu_type) DO NOTHING
	`
	batch := &pgx.Batch{}
	for _, menuType := range models.DefaultMenuTypes {
		batch.Queue(query, uuid.New(), tenantID, branchID, menuType, titleCase(menuType))
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close()
	for range models.DefaultMenuTypes {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
