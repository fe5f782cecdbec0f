package repositories

import (
	"context"
	"errors"
	"fmt"

	"menucraft/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BuffetRepository interface {
	Create(ctx context.Context, buffet *models.Buffet) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Buffet, error)
	FindByNaturalKey(ctx context.Context, tenantID, branchID uuid.UUID, name string) (*models.Buffet, error)
	List(ctx context.Context, tenantID, branchID uuid.UUID) ([]*models.Buffet, error)
	Update(ctx context.Context, buffet *models.Buffet) error
	SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error
}

type buffetRepo struct {
	db Database
}

func NewBuffetRepo(db Database) BuffetRepository {
	return &buffetRepo{db: db}
}

const buffetColumns = `id, tenant_id, branch_id, name, description, price_per_person, available_from, available_to, is_active, deleted_at, created_at, updated_at`

func scanBuffet(row pgx.Row) (*models.Buffet, error) {
	buffet := &models.Buffet{}
	err := row.Scan(&buffet.ID, &buffet.TenantID, &buffet.BranchID, &buffet.Name, &buffet.Description,
		&buffet.PricePerPerson, &buffet.AvailableFrom, &buffet.AvailableTo, &buffet.IsActive,
		&buffet.DeletedAt, &buffet.CreatedAt, &buffet.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return buffet, nil
}

func (r *buffetRepo) Create(ctx context.Context, buffet *models.Buffet) error {
	query := `
		INSERT INTO buffets (id, tenant_id, branch_id, name, description, price_per_person, available_from, available_to, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, buffet.ID, buffet.TenantID, buffet.BranchID, buffet.Name,
		buffet.Description, buffet.PricePerPerson, buffet.AvailableFrom, buffet.AvailableTo, buffet.IsActive)
	return err
}

func (r *buffetRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Buffet, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM buffets
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`, buffetColumns)
	return scanBuffet(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *buffetRepo) FindByNaturalKey(ctx context.Context, tenantID, branchID uuid.UUID, name string) (*models.Buffet, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM buffets
		WHERE tenant_id = $1 AND branch_id = $2
		  AND lower(btrim(name)) = lower(btrim($3)) AND deleted_at IS NULL
	`, buffetColumns)
	buffet, err := scanBuffet(r.db.QueryRow(ctx, query, tenantID, branchID, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return buffet, nil
}

func (r *buffetRepo) List(ctx context.Context, tenantID, branchID uuid.UUID) ([]*models.Buffet, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM buffets
		WHERE tenant_id = $1 AND branch_id = $2 AND deleted_at IS NULL
		ORDER BY name ASC
	`, buffetColumns)
	rows, err := r.db.Query(ctx, query, tenantID, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buffets []*models.Buffet
	for rows.Next() {
		buffet, err := scanBuffet(rows)
		if err != nil {
			return nil, err
		}
		buffets = append(buffets, buffet)
	}
	return buffets, rows.Err()
}

func (r *buffetRepo) Update(ctx context.Context, buffet *models.Buffet) error {
	query := `
		UPDATE buffets
		SET name = $3, description = $4, price_per_person = $5, available_from = $6, available_to = $7, is_active = $8, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`
	_, err := r.db.Exec(ctx, query, buffet.TenantID, buffet.ID, buffet.Name, buffet.Description,
		buffet.PricePerPerson, buffet.AvailableFrom, buffet.AvailableTo, buffet.IsActive)
	return err
}

func (r *buffetRepo) SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `
		UPDATE buffets
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}
