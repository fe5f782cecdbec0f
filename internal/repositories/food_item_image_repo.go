package repositories

import (
	"context"

	"menucraft/internal/models"

	"github.com/google/uuid"
)

type FoodItemImageRepository interface {
	Create(ctx context.Context, image *models.FoodItemImage) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.FoodItemImage, error)
	ListByFoodItem(ctx context.Context, tenantID, foodItemID uuid.UUID) ([]*models.FoodItemImage, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type foodItemImageRepo struct {
	db Database
}

func NewFoodItemImageRepo(db Database) FoodItemImageRepository {
	return &foodItemImageRepo{db: db}
}

func (r *foodItemImageRepo) Create(ctx context.Context, image *models.FoodItemImage) error {
	query := `
		INSERT INTO food_item_images (id, tenant_id, food_item_id, object_key, alt_text, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(ctx, query, image.ID, image.TenantID, image.FoodItemID, image.ObjectKey, image.AltText)
	return err
}

func (r *foodItemImageRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.FoodItemImage, error) {
	query := `
		SELECT id, tenant_id, food_item_id, object_key, alt_text, created_at
		FROM food_item_images
		WHERE tenant_id = $1 AND id = $2
	`
	image := &models.FoodItemImage{}
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&image.ID, &image.TenantID, &image.FoodItemID,
		&image.ObjectKey, &image.AltText, &image.CreatedAt)
	if err != nil {
		return nil, err
	}
	return image, nil
}

func (r *foodItemImageRepo) ListByFoodItem(ctx context.Context, tenantID, foodItemID uuid.UUID) ([]*models.FoodItemImage, error) {
	query := `
		SELECT id, tenant_id, food_item_id, object_key, alt_text, created_at
		FROM food_item_images
		WHERE tenant_id = $1 AND food_item_id = $2
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, tenantID, foodItemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []*models.FoodItemImage
	for rows.Next() {
		image := &models.FoodItemImage{}
		if err := rows.Scan(&image.ID, &image.TenantID, &image.FoodItemID, &image.ObjectKey,
			&image.AltText, &image.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}

func (r *foodItemImageRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM food_item_images WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}
