package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/car-assistant/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CarImageRepository handles car image metadata persistence
type CarImageRepository struct {
	db *PostgresDB
}

// NewCarImageRepository creates a new car image repository
func NewCarImageRepository(db *PostgresDB) *CarImageRepository {
	return &CarImageRepository{db: db}
}

// Create stores metadata for a new car image
func (r *CarImageRepository) Create(ctx context.Context, image *models.CarImage) error {
	if image.ID == "" {
		image.ID = uuid.New().String()
	}

	now := time.Now()
	image.CreatedAt = now
	if image.TakenAt.IsZero() {
		image.TakenAt = now
	}

	query := `
		INSERT INTO car_images (id, car_id, user_id, image_url, caption, tags, taken_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Pool().Exec(ctx, query,
		image.ID,
		image.CarID,
		image.UserID,
		image.ImageURL,
		image.Caption,
		EncodeStringSlice(image.Tags),
		image.TakenAt,
		image.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create car image: %w", err)
	}

	return nil
}

// GetByID retrieves a car image by ID
func (r *CarImageRepository) GetByID(ctx context.Context, id string) (*models.CarImage, error) {
	query := `
		SELECT id, car_id, user_id, image_url, caption, tags, taken_at, created_at
		FROM car_images
		WHERE id = $1
	`

	var image models.CarImage
	var tagsJSON sql.NullString

	err := r.db.Pool().QueryRow(ctx, query, id).Scan(
		&image.ID,
		&image.CarID,
		&image.UserID,
		&image.ImageURL,
		&image.Caption,
		&tagsJSON,
		&image.TakenAt,
		&image.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("car image not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get car image: %w", err)
	}

	image.Tags = DecodeStringSlice(tagsJSON.String)

	return &image, nil
}

// ListByCar retrieves images for a car, newest first
func (r *CarImageRepository) ListByCar(ctx context.Context, carID string, limit, offset int) ([]*models.CarImage, error) {
	query := `
		SELECT id, car_id, user_id, image_url, caption, tags, taken_at, created_at
		FROM car_images
		WHERE car_id = $1
		ORDER BY taken_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool().Query(ctx, query, carID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list car images: %w", err)
	}
	defer rows.Close()

	var images []*models.CarImage
	for rows.Next() {
		var image models.CarImage
		var tagsJSON sql.NullString

		err := rows.Scan(
			&image.ID,
			&image.CarID,
			&image.UserID,
			&image.ImageURL,
			&image.Caption,
			&tagsJSON,
			&image.TakenAt,
			&image.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan car image: %w", err)
		}

		image.Tags = DecodeStringSlice(tagsJSON.String)
		images = append(images, &image)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating car images: %w", err)
	}

	return images, nil
}

// Delete deletes a car image by ID
func (r *CarImageRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM car_images WHERE id = $1`

	result, err := r.db.Pool().Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete car image: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("car image not found: %s", id)
	}

	return nil
}
