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

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	InsertMany(ctx context.Context, categories []*models.Category) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Category, error)
	FindByNaturalKey(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID, name string) (*models.Category, error)
	ListNames(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID) ([]NameRef, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Category, error)
	UpdateFields(ctx context.Context, tenantID, id uuid.UUID, upd *models.CategoryUpdate) error
	SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error
	CountChildren(ctx context.Context, tenantID, parentID uuid.UUID) (int, error)
}

type categoryRepo struct {
	db Database
}

func NewCategoryRepo(db Database) CategoryRepository {
	return &categoryRepo{db: db}
}

const categoryColumns = `id, tenant_id, branch_id, name, description, category_type, parent_id, display_order, is_active, deleted_at, created_at, updated_at`

func scanCategory(row pgx.Row) (*models.Category, error) {
	category := &models.Category{}
	err := row.Scan(&category.ID, &category.TenantID, &category.BranchID, &category.Name, &category.Description,
		&category.CategoryType, &category.ParentID, &category.DisplayOrder, &category.IsActive,
		&category.DeletedAt, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (id, tenant_id, branch_id, name, description, category_type, parent_id, display_order, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, category.ID, category.TenantID, category.BranchID, category.Name,
		category.Description, category.CategoryType, category.ParentID, category.DisplayOrder, category.IsActive)
	return err
}

func (r *categoryRepo) InsertMany(ctx context.Context, categories []*models.Category) error {
	if len(categories) == 0 {
		return nil
	}
	query := `
		INSERT INTO categories (id, tenant_id, branch_id, name, description, category_type, parent_id, display_order, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	batch := &pgx.Batch{}
	for _, category := range categories {
		batch.Queue(query, category.ID, category.TenantID, category.BranchID, category.Name,
			category.Description, category.CategoryType, category.ParentID, category.DisplayOrder, category.IsActive)
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close()
	for range categories {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *categoryRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Category, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM categories
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`, categoryColumns)
	return scanCategory(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *categoryRepo) FindByNaturalKey(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID, name string) (*models.Category, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM categories
		WHERE tenant_id = $1 AND branch_id IS NOT DISTINCT FROM $2
		  AND lower(btrim(name)) = lower(btrim($3)) AND deleted_at IS NULL
	`, categoryColumns)
	category, err := scanCategory(r.db.QueryRow(ctx, query, tenantID, branchID, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *categoryRepo) ListNames(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID) ([]NameRef, error) {
	query := `
		SELECT id, name
		FROM categories
		WHERE tenant_id = $1 AND branch_id IS NOT DISTINCT FROM $2 AND deleted_at IS NULL
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

func (r *categoryRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Category, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM categories
		WHERE tenant_id = $1 AND deleted_at IS NULL
		ORDER BY display_order ASC, name ASC
		LIMIT $2 OFFSET $3
	`, categoryColumns)
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *categoryRepo) UpdateFields(ctx context.Context, tenantID, id uuid.UUID, upd *models.CategoryUpdate) error {
	set := []string{}
	args := []interface{}{}
	idx := 1
	add := func(column string, value interface{}) {
		set = append(set, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.CategoryType != nil {
		add("category_type", *upd.CategoryType)
	}
	if upd.ParentID != nil {
		add("parent_id", *upd.ParentID)
	}
	if upd.DisplayOrder != nil {
		add("display_order", *upd.DisplayOrder)
	}
	if upd.IsActive != nil {
		add("is_active", *upd.IsActive)
	}
	if len(set) == 0 {
		return nil
	}
	query := fmt.Sprintf(`
		UPDATE categories
		SET %s, updated_at = NOW()
		WHERE tenant_id = $%d AND id = $%d AND deleted_at IS NULL
	`, strings.Join(set, ", "), idx, idx+1)
	args = append(args, tenantID, id)
	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *categoryRepo) CountChildren(ctx context.Context, tenantID, parentID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM categories
		WHERE tenant_id = $1 AND parent_id = $2 AND deleted_at IS NULL
	`
	var count int
	err := r.db.QueryRow(ctx, query, tenantID, parentID).Scan(&count)
	return count, err
}

func (r *categoryRepo) SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `
		UPDATE categories
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}
