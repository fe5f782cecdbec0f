package repositories

import (
	"context"

	"menucraft/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TranslationRepository interface {
	Upsert(ctx context.Context, translation *models.Translation) error
	UpsertMany(ctx context.Context, translations []*models.Translation) error
	ListByEntity(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID) ([]*models.Translation, error)
	DeleteByEntity(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID) error
}

type translationRepo struct {
	db Database
}

func NewTranslationRepo(db Database) TranslationRepository {
	return &translationRepo{db: db}
}

// Machine rows overwrite machine rows; a manual row wins over any later
// machine run, which is what the WHERE clause on the upsert enforces.
const translationUpsertQuery = `
	INSERT INTO translations (id, tenant_id, entity_type, entity_id, locale, field, value, status, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	ON CONFLICT (tenant_id, entity_type, entity_id, locale, field) DO UPDATE
	SET value = EXCLUDED.value, status = EXCLUDED.status, updated_at = NOW()
	WHERE translations.status != 'manual' OR EXCLUDED.status = 'manual'
`

func (r *translationRepo) Upsert(ctx context.Context, translation *models.Translation) error {
	_, err := r.db.Exec(ctx, translationUpsertQuery, translation.ID, translation.TenantID,
		translation.EntityType, translation.EntityID, translation.Locale, translation.Field,
		translation.Value, translation.Status)
	return err
}

func (r *translationRepo) UpsertMany(ctx context.Context, translations []*models.Translation) error {
	if len(translations) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, t := range translations {
		batch.Queue(translationUpsertQuery, t.ID, t.TenantID, t.EntityType, t.EntityID, t.Locale, t.Field, t.Value, t.Status)
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close()
	for range translations {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *translationRepo) ListByEntity(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID) ([]*models.Translation, error) {
	query := `
		SELECT id, tenant_id, entity_type, entity_id, locale, field, value, status, updated_at
		FROM translations
		WHERE tenant_id = $1 AND entity_type = $2 AND entity_id = $3
		ORDER BY locale ASC, field ASC
	`
	rows, err := r.db.Query(ctx, query, tenantID, entityType, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var translations []*models.Translation
	for rows.Next() {
		t := &models.Translation{}
		if err := rows.Scan(&t.ID, &t.TenantID, &t.EntityType, &t.EntityID, &t.Locale, &t.Field,
			&t.Value, &t.Status, &t.UpdatedAt); err != nil {
			return nil, err
		}
		translations = append(translations, t)
	}
	return translations, rows.Err()
}

func (r *translationRepo) DeleteByEntity(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID) error {
	query := `DELETE FROM translations WHERE tenant_id = $1 AND entity_type = $2 AND entity_id = $3`
	_, err := r.db.Exec(ctx, query, tenantID, entityType, entityID)
	return err
}
