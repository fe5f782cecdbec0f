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

type VariationGroupRepository interface {
	Create(ctx context.Context, group *models.VariationGroup) error
	InsertMany(ctx context.Context, groups []*models.VariationGroup) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.VariationGroup, error)
	FindByNaturalKey(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID, name string) (*models.VariationGroup, error)
	ListNames(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID) ([]NameRef, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.VariationGroup, error)
	UpdateFields(ctx context.Context, tenantID, id uuid.UUID, upd *models.VariationGroupUpdate) error
	SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error
	CountVariations(ctx context.Context, tenantID, groupID uuid.UUID) (int, error)
}

type variationGroupRepo struct {
	db Database
}

func NewVariationGroupRepo(db Database) VariationGroupRepository {
	return &variationGroupRepo{db: db}
}

const variationGroupColumns = `id, tenant_id, branch_id, name, description, is_active, deleted_at, created_at, updated_at`

func scanVariationGroup(row pgx.Row) (*models.VariationGroup, error) {
	group := &models.VariationGroup{}
	err := row.Scan(&group.ID, &group.TenantID, &group.BranchID, &group.Name, &group.Description,
		&group.IsActive, &group.DeletedAt, &group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (r *variationGroupRepo) Create(ctx context.Context, group *models.VariationGroup) error {
	query := `
		INSERT INTO variation_groups (id, tenant_id, branch_id, name, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, group.ID, group.TenantID, group.BranchID, group.Name,
		group.Description, group.IsActive)
	return err
}

func (r *variationGroupRepo) InsertMany(ctx context.Context, groups []*models.VariationGroup) error {
	if len(groups) == 0 {
		return nil
	}
	query := `
		INSERT INTO variation_groups (id, tenant_id, branch_id, name, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	batch := &pgx.Batch{}
	for _, group := range groups {
		batch.Queue(query, group.ID, group.TenantID, group.BranchID, group.Name, group.Description, group.IsActive)
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

func (r *variationGroupRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.VariationGroup, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM variation_groups
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`, variationGroupColumns)
	return scanVariationGroup(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *variationGroupRepo) FindByNaturalKey(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID, name string) (*models.VariationGroup, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM variation_groups
		WHERE tenant_id = $1 AND branch_id IS NOT DISTINCT FROM $2
		  AND lower(btrim(name)) = lower(btrim($3)) AND deleted_at IS NULL
	`, variationGroupColumns)
	group, err := scanVariationGroup(r.db.QueryRow(ctx, query, tenantID, branchID, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (r *variationGroupRepo) ListNames(ctx context.Context, tenantID uuid.UUID, branchID *uuid.UUID) ([]NameRef, error) {
	query := `
		SELECT id, name
		FROM variation_groups
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

func (r *variationGroupRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.VariationGroup, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM variation_groups
		WHERE tenant_id = $1 AND deleted_at IS NULL
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`, variationGroupColumns)
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*models.VariationGroup
	for rows.Next() {
		group, err := scanVariationGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

func (r *variationGroupRepo) UpdateFields(ctx context.Context, tenantID, id uuid.UUID, upd *models.VariationGroupUpdate) error {
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
	if upd.IsActive != nil {
		add("is_active", *upd.IsActive)
	}
	if len(set) == 0 {
		return nil
	}
	query := fmt.Sprintf(`
		UPDATE variation_groups
		SET %s, updated_at = NOW()
		WHERE tenant_id = $%d AND id = $%d AND deleted_at IS NULL
	`, strings.Join(set, ", "), idx, idx+1)
	args = append(args, tenantID, id)
	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *variationGroupRepo) SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `
		UPDATE variation_groups
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

func (r *variationGroupRepo) CountVariations(ctx context.Context, tenantID, groupID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM variations
		WHERE tenant_id = $1 AND group_id = $2 AND deleted_at IS NULL
	`
	var count int
	err := r.db.QueryRow(ctx, query, tenantID, groupID).Scan(&count)
	return count, err
}

type VariationRepository interface {
	Create(ctx context.Context, variation *models.Variation) error
	InsertMany(ctx context.Context, variations []*models.Variation) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Variation, error)
	ListByGroup(ctx context.Context, tenantID, groupID uuid.UUID) ([]*models.Variation, error)
	ListNameRefs(ctx context.Context, tenantID uuid.UUID) ([]ChildNameRef, error)
	UpdateFields(ctx context.Context, tenantID, id uuid.UUID, upd *models.VariationUpdate) error
	SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error
}

type variationRepo struct {
	db Database
}

func NewVariationRepo(db Database) VariationRepository {
	return &variationRepo{db: db}
}

const variationColumns = `id, tenant_id, group_id, name, price_delta, is_active, deleted_at, created_at, updated_at`

func scanVariation(row pgx.Row) (*models.Variation, error) {
	variation := &models.Variation{}
	err := row.Scan(&variation.ID, &variation.TenantID, &variation.GroupID, &variation.Name,
		&variation.PriceDelta, &variation.IsActive, &variation.DeletedAt, &variation.CreatedAt, &variation.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return variation, nil
}

func (r *variationRepo) Create(ctx context.Context, variation *models.Variation) error {
	query := `
		INSERT INTO variations (id, tenant_id, group_id, name, price_delta, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, variation.ID, variation.TenantID, variation.GroupID,
		variation.Name, variation.PriceDelta, variation.IsActive)
	return err
}

func (r *variationRepo) InsertMany(ctx context.Context, variations []*models.Variation) error {
	if len(variations) == 0 {
		return nil
	}
	query := `
		INSERT INTO variations (id, tenant_id, group_id, name, price_delta, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	batch := &pgx.Batch{}
	for _, variation := range variations {
		batch.Queue(query, variation.ID, variation.TenantID, variation.GroupID,
			variation.Name, variation.PriceDelta, variation.IsActive)
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close()
	for range variations {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *variationRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Variation, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM variations
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`, variationColumns)
	return scanVariation(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *variationRepo) ListByGroup(ctx context.Context, tenantID, groupID uuid.UUID) ([]*models.Variation, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM variations
		WHERE tenant_id = $1 AND group_id = $2 AND deleted_at IS NULL
		ORDER BY name ASC
	`, variationColumns)
	rows, err := r.db.Query(ctx, query, tenantID, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variations []*models.Variation
	for rows.Next() {
		variation, err := scanVariation(rows)
		if err != nil {
			return nil, err
		}
		variations = append(variations, variation)
	}
	return variations, rows.Err()
}

func (r *variationRepo) ListNameRefs(ctx context.Context, tenantID uuid.UUID) ([]ChildNameRef, error) {
	query := `
		SELECT id, group_id, name
		FROM variations
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

func (r *variationRepo) UpdateFields(ctx context.Context, tenantID, id uuid.UUID, upd *models.VariationUpdate) error {
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
	if upd.PriceDelta != nil {
		add("price_delta", *upd.PriceDelta)
	}
	if upd.IsActive != nil {
		add("is_active", *upd.IsActive)
	}
	if len(set) == 0 {
		return nil
	}
	query := fmt.Sprintf(`
		UPDATE variations
		SET %s, updated_at = NOW()
		WHERE tenant_id = $%d AND id = $%d AND deleted_at IS NULL
	`, strings.Join(set, ", "), idx, idx+1)
	args = append(args, tenantID, id)
	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *variationRepo) SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `
		UPDATE variations
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}
