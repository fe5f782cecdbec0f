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

type AddOnGroupRepository interface {
	Create(ctx context.Context, group *models.AddOnGroup) error
	InsertMany(ctx context.Context, groups []*models.AddOnGroup) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.AddOnGroup, error)
	FindByNaturalKey(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID, name string) (*models.AddOnGroup, error)
	ListNames(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID) ([]NameRef, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.AddOnGroup, error)
	UpdateFields(ctx context.Context, tenantID, id uuid.UUID, upd *models.AddOnGroupUpdate) error
	SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error
	CountAddOns(ctx context.Context, tenantID, groupID uuid.UUID) (int, error)
}

type addOnGroupRepo struct {
	db Database
}

func NewAddOnGroupRepo(db Database) AddOnGroupRepository {
	return &addOnGroupRepo{db: db}
}

const addOnGroupColumns = `id, tenant_id, branch_id, name, description, selection_mode, max_select, is_active, deleted_at, created_at, updated_at`

func scanAddOnGroup(row pgx.Row) (*models.AddOnGroup, error) {
	group := &models.AddOnGroup{}
	err := row.Scan(&group.ID, &group.TenantID, &group.BranchID, &group.Name, &group.Description,
		&group.SelectionMode, &group.MaxSelect, &group.IsActive, &group.DeletedAt, &group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (r *addOnGroupRepo) Create(ctx context.Context, group *models.AddOnGroup) error {
	query := `
		INSERT INTO addon_groups (id, tenant_id, branch_id, name, description, selection_mode, max_select, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, group.ID, group.TenantID, group.BranchID, group.Name,
		group.Description, group.SelectionMode, group.MaxSelect, group.IsActive)
	return err
}

func (r *addOnGroupRepo) InsertMany(ctx context.Context, groups []*models.AddOnGroup) error {
	if len(groups) == 0 {
		return nil
	}
	query := `
		INSERT INTO addon_groups (id, tenant_id, branch_id, name, description, selection_mode, max_select, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	batch := &pgx.Batch{}
	for _, group := range groups {
		batch.Queue(query, group.ID, group.TenantID, group.BranchID, group.Name,
			group.Description, group.SelectionMode, group.MaxSelect, group.IsActive)
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close()
	for range groups {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *addOnGroupRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.AddOnGroup, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM addon_groups
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`, addOnGroupColumns)
	return scanAddOnGroup(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *addOnGroupRepo) FindByNaturalKey(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID, name string) (*models.AddOnGroup, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM addon_groups
		WHERE tenant_id = $1 AND branch_id IS NOT DISTINCT FROM $2
		  AND lower(btrim(name)) = lower(btrim($3)) AND deleted_at IS NULL
	`, addOnGroupColumns)
	group, err := scanAddOnGroup(r.db.QueryRow(ctx, query, tenantID, branchID, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (r *addOnGroupRepo) ListNames(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID) ([]NameRef, error) {
	query := `
		SELECT id, name
		FROM addon_groups
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

func (r *addOnGroupRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.AddOnGroup, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM addon_groups
		WHERE tenant_id = $1 AND deleted_at IS NULL
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`, addOnGroupColumns)
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*models.AddOnGroup
	for rows.Next() {
		group, err := scanAddOnGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

func (r *addOnGroupRepo) UpdateFields(ctx context.Context, tenantID, id uuid.UUID, upd *models.AddOnGroupUpdate) error {
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
	if upd.SelectionMode != nil {
		add("selection_mode", *upd.SelectionMode)
	}
	if upd.MaxSelect != nil {
		add("max_select", *upd.MaxSelect)
	}
	if upd.IsActive != nil {
		add("is_active", *upd.IsActive)
	}
	if len(set) == 0 {
		return nil
	}
	query := fmt.Sprintf(`
		UPDATE addon_groups
		SET %s, updated_at = NOW()
		WHERE tenant_id = $%d AND id = $%d AND deleted_at IS NULL
	`, strings.Join(set, ", "), idx, idx+1)
	args = append(args, tenantID, id)
	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *addOnGroupRepo) SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `
		UPDATE addon_groups
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

func (r *addOnGroupRepo) CountAddOns(ctx context.Context, tenantID, groupID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM addons
		WHERE tenant_id = $1 AND group_id = $2 AND deleted_at IS NULL
	`
	var count int
	err := r.db.QueryRow(ctx, query, tenantID, groupID).Scan(&count)
	return count, err
}

type AddOnRepository interface {
	Create(ctx context.Context, addon *models.AddOn) error
	InsertMany(ctx context.Context, addons []*models.AddOn) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.AddOn, error)
	ListByGroup(ctx context.Context, tenantID, groupID uuid.UUID) ([]*models.AddOn, error)
	ListNameRefs(ctx context.Context, tenantID uuid.UUID) ([]ChildNameRef, error)
	UpdateFields(ctx context.Context, tenantID, id uuid.UUID, upd *models.AddOnUpdate) error
	SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error
}

type addOnRepo struct {
	db Database
}

func NewAddOnRepo(db Database) AddOnRepository {
	return &addOnRepo{db: db}
}

const addOnColumns = `id, tenant_id, group_id, name, price, is_active, deleted_at, created_at, updated_at`

func scanAddOn(row pgx.Row) (*models.AddOn, error) {
	addon := &models.AddOn{}
	err := row.Scan(&addon.ID, &addon.TenantID, &addon.GroupID, &addon.Name, &addon.Price,
		&addon.IsActive, &addon.DeletedAt, &addon.CreatedAt, &addon.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return addon, nil
}

func (r *addOnRepo) Create(ctx context.Context, addon *models.AddOn) error {
	query := `
		INSERT INTO addons (id, tenant_id, group_id, name, price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, addon.ID, addon.TenantID, addon.GroupID, addon.Name, addon.Price, addon.IsActive)
	return err
}

func (r *addOnRepo) InsertMany(ctx context.Context, addons []*models.AddOn) error {
	if len(addons) == 0 {
		return nil
	}
	query := `
		INSERT INTO addons (id, tenant_id, group_id, name, price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	batch := &pgx.Batch{}
	for _, addon := range addons {
		batch.Queue(query, addon.ID, addon.TenantID, addon.GroupID, addon.Name, addon.Price, addon.IsActive)
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close()
	for range addons {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *addOnRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.AddOn, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM addons
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`, addOnColumns)
	return scanAddOn(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *addOnRepo) ListByGroup(ctx context.Context, tenantID, groupID uuid.UUID) ([]*models.AddOn, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM addons
		WHERE tenant_id = $1 AND group_id = $2 AND deleted_at IS NULL
		ORDER BY name ASC
	`, addOnColumns)
	rows, err := r.db.Query(ctx, query, tenantID, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addons []*models.AddOn
	for rows.Next() {
		addon, err := scanAddOn(rows)
		if err != nil {
			return nil, err
		}
		addons = append(addons, addon)
	}
	return addons, rows.Err()
}

func (r *addOnRepo) ListNameRefs(ctx context.Context, tenantID uuid.UUID) ([]ChildNameRef, error) {
	query := `
		SELECT id, group_id, name
		FROM addons
		WHERE tenant_id = $1 AND deleted_at IS NULL
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []ChildNameRef
	for rows.Next() {
		var ref ChildNameRef
		if err := rows.Scan(&ref.ID, &ref.ParentID, &ref.Name); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *addOnRepo) UpdateFields(ctx context.Context, tenantID, id uuid.UUID, upd *models.AddOnUpdate) error {
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
	if upd.Price != nil {
		add("price", *upd.Price)
	}
	if upd.IsActive != nil {
		add("is_active", *upd.IsActive)
	}
	if len(set) == 0 {
		return nil
	}
	query := fmt.Sprintf(`
		UPDATE addons
		SET %s, updated_at = NOW()
		WHERE tenant_id = $%d AND id = $%d AND deleted_at IS NULL
	`, strings.Join(set, ", "), idx, idx+1)
	args = append(args, tenantID, id)
	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *addOnRepo) SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `
		UPDATE addons
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}
