package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/car-assistant/internal/models"
	"github.com/car-assistant/internal/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// HealthScoreRepository handles AI health score persistence. Scores are
// append-only; the newest row per car is the current score.
type HealthScoreRepository struct {
	db *PostgresDB
}

// NewHealthScoreRepository creates a new health score repository
func NewHealthScoreRepository(db *PostgresDB) *HealthScoreRepository {
	return &HealthScoreRepository{db: db}
}

// Create stores a new health score
func (r *HealthScoreRepository) Create(ctx context.Context, score *models.HealthScore) error {
	if score.ID == "" {
		score.ID = uuid.New().String()
	}

	if err := validateScoreCategory(score.Category); err != nil {
		return err
	}
	if score.Score < 0 || score.Score > 100 {
		return &types.ServiceError{
			Code:    "INVALID_PARAMETER",
			Message: fmt.Sprintf("score out of range: %f", score.Score),
			Details: map[string]interface{}{
				"score": score.Score,
			},
		}
	}

	score.CreatedAt = time.Now()

	query := `
		INSERT INTO health_scores (id, car_id, category, score, factors, model_version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Pool().Exec(ctx, query,
		score.ID,
		score.CarID,
		score.Category,
		score.Score,
		EncodeStringMap(score.Factors),
		score.ModelVersion,
		score.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create health score: %w", err)
	}

	return nil
}

// LatestByCar retrieves the most recent health score for a car
func (r *HealthScoreRepository) LatestByCar(ctx context.Context, carID string) (*models.HealthScore, error) {
	query := `
		SELECT id, car_id, category, score, factors, model_version, created_at
		FROM health_scores
		WHERE car_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var score models.HealthScore
	var factorsJSON sql.NullString

	err := r.db.Pool().QueryRow(ctx, query, carID).Scan(
		&score.ID,
		&score.CarID,
		&score.Category,
		&score.Score,
		&factorsJSON,
		&score.ModelVersion,
		&score.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("health score not found for car: %s", carID)
		}
		return nil, fmt.Errorf("failed to get latest health score: %w", err)
	}

	score.Factors = DecodeStringMap(factorsJSON.String)

	return &score, nil
}

// ListByCar retrieves health scores for a car, newest first
func (r *HealthScoreRepository) ListByCar(ctx context.Context, carID string, limit, offset int) ([]*models.HealthScore, error) {
	query := `
		SELECT id, car_id, category, score, factors, model_version, created_at
		FROM health_scores
		WHERE car_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool().Query(ctx, query, carID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list health scores: %w", err)
	}
	defer rows.Close()

	var scores []*models.HealthScore
	for rows.Next() {
		var score models.HealthScore
		var factorsJSON sql.NullString

		err := rows.Scan(
			&score.ID,
			&score.CarID,
			&score.Category,
			&score.Score,
			&factorsJSON,
			&score.ModelVersion,
			&score.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan health score: %w", err)
		}

		score.Factors = DecodeStringMap(factorsJSON.String)
		scores = append(scores, &score)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating health scores: %w", err)
	}

	return scores, nil
}

// validateScoreCategory validates that the category is one of the allowed values
func validateScoreCategory(category types.ScoreCategory) error {
	switch category {
	case types.ScoreOverall, types.ScoreEngine, types.ScoreBrakes,
		types.ScoreBattery, types.ScoreTires:
		return nil
	default:
		return &types.ServiceError{
			Code:    "INVALID_PARAMETER",
			Message: fmt.Sprintf("invalid score category: %s", category),
			Details: map[string]interface{}{
				"category": category,
			},
		}
	}
}
