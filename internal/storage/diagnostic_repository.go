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

// AudioDiagnosticRepository handles audio diagnostic persistence
type AudioDiagnosticRepository struct {
	db *PostgresDB
}

// NewAudioDiagnosticRepository creates a new audio diagnostic repository
func NewAudioDiagnosticRepository(db *PostgresDB) *AudioDiagnosticRepository {
	return &AudioDiagnosticRepository{db: db}
}

// Create stores a new audio diagnostic
func (r *AudioDiagnosticRepository) Create(ctx context.Context, diag *models.AudioDiagnostic) error {
	if diag.ID == "" {
		diag.ID = uuid.New().String()
	}
	if diag.Status == "" {
		diag.Status = types.DiagnosticPending
	}
	if err := validateDiagnosticStatus(diag.Status); err != nil {
		return err
	}

	now := time.Now()
	diag.CreatedAt = now
	if diag.RecordedAt.IsZero() {
		diag.RecordedAt = now
	}

	query := `
		INSERT INTO audio_diagnostics (id, car_id, user_id, audio_url, duration_ms, status, labels, findings, recorded_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Pool().Exec(ctx, query,
		diag.ID,
		diag.CarID,
		diag.UserID,
		diag.AudioURL,
		diag.DurationMs,
		diag.Status,
		EncodeStringSlice(diag.Labels),
		EncodeStringMap(diag.Findings),
		diag.RecordedAt,
		diag.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create audio diagnostic: %w", err)
	}

	return nil
}

// GetByID retrieves an audio diagnostic by ID
func (r *AudioDiagnosticRepository) GetByID(ctx context.Context, id string) (*models.AudioDiagnostic, error) {
	query := `
		SELECT id, car_id, user_id, audio_url, duration_ms, status, labels, findings, recorded_at, created_at
		FROM audio_diagnostics
		WHERE id = $1
	`

	var diag models.AudioDiagnostic
	var labelsJSON, findingsJSON sql.NullString

	err := r.db.Pool().QueryRow(ctx, query, id).Scan(
		&diag.ID,
		&diag.CarID,
		&diag.UserID,
		&diag.AudioURL,
		&diag.DurationMs,
		&diag.Status,
		&labelsJSON,
		&findingsJSON,
		&diag.RecordedAt,
		&diag.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("audio diagnostic not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get audio diagnostic: %w", err)
	}

	diag.Labels = DecodeStringSlice(labelsJSON.String)
	diag.Findings = DecodeStringMap(findingsJSON.String)

	return &diag, nil
}

// ListByCar retrieves audio diagnostics for a car, newest first
func (r *AudioDiagnosticRepository) ListByCar(ctx context.Context, carID string, limit, offset int) ([]*models.AudioDiagnostic, error) {
	query := `
		SELECT id, car_id, user_id, audio_url, duration_ms, status, labels, findings, recorded_at, created_at
		FROM audio_diagnostics
		WHERE car_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool().Query(ctx, query, carID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audio diagnostics: %w", err)
	}
	defer rows.Close()

	var diags []*models.AudioDiagnostic
	for rows.Next() {
		var diag models.AudioDiagnostic
		var labelsJSON, findingsJSON sql.NullString

		err := rows.Scan(
			&diag.ID,
			&diag.CarID,
			&diag.UserID,
			&diag.AudioURL,
			&diag.DurationMs,
			&diag.Status,
			&labelsJSON,
			&findingsJSON,
			&diag.RecordedAt,
			&diag.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audio diagnostic: %w", err)
		}

		diag.Labels = DecodeStringSlice(labelsJSON.String)
		diag.Findings = DecodeStringMap(findingsJSON.String)
		diags = append(diags, &diag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audio diagnostics: %w", err)
	}

	return diags, nil
}

// Delete deletes an audio diagnostic by ID
func (r *AudioDiagnosticRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM audio_diagnostics WHERE id = $1`

	result, err := r.db.Pool().Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete audio diagnostic: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("audio diagnostic not found: %s", id)
	}

	return nil
}

// VideoDiagnosticRepository handles video diagnostic persistence
type VideoDiagnosticRepository struct {
	db *PostgresDB
}

// NewVideoDiagnosticRepository creates a new video diagnostic repository
func NewVideoDiagnosticRepository(db *PostgresDB) *VideoDiagnosticRepository {
	return &VideoDiagnosticRepository{db: db}
}

// Create stores a new video diagnostic
func (r *VideoDiagnosticRepository) Create(ctx context.Context, diag *models.VideoDiagnostic) error {
	if diag.ID == "" {
		diag.ID = uuid.New().String()
	}
	if diag.Status == "" {
		diag.Status = types.DiagnosticPending
	}
	if err := validateDiagnosticStatus(diag.Status); err != nil {
		return err
	}

	now := time.Now()
	diag.CreatedAt = now
	if diag.RecordedAt.IsZero() {
		diag.RecordedAt = now
	}

	query := `
		INSERT INTO video_diagnostics (id, car_id, user_id, video_url, duration_ms, frame_count, status, labels, findings, recorded_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Pool().Exec(ctx, query,
		diag.ID,
		diag.CarID,
		diag.UserID,
		diag.VideoURL,
		diag.DurationMs,
		diag.FrameCount,
		diag.Status,
		EncodeStringSlice(diag.Labels),
		EncodeStringMap(diag.Findings),
		diag.RecordedAt,
		diag.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create video diagnostic: %w", err)
	}

	return nil
}

// GetByID retrieves a video diagnostic by ID
func (r *VideoDiagnosticRepository) GetByID(ctx context.Context, id string) (*models.VideoDiagnostic, error) {
	query := `
		SELECT id, car_id, user_id, video_url, duration_ms, frame_count, status, labels, findings, recorded_at, created_at
		FROM video_diagnostics
		WHERE id = $1
	`

	var diag models.VideoDiagnostic
	var labelsJSON, findingsJSON sql.NullString

	err := r.db.Pool().QueryRow(ctx, query, id).Scan(
		&diag.ID,
		&diag.CarID,
		&diag.UserID,
		&diag.VideoURL,
		&diag.DurationMs,
		&diag.FrameCount,
		&diag.Status,
		&labelsJSON,
		&findingsJSON,
		&diag.RecordedAt,
		&diag.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("video diagnostic not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get video diagnostic: %w", err)
	}

	diag.Labels = DecodeStringSlice(labelsJSON.String)
	diag.Findings = DecodeStringMap(findingsJSON.String)

	return &diag, nil
}

// ListByCar retrieves video diagnostics for a car, newest first
func (r *VideoDiagnosticRepository) ListByCar(ctx context.Context, carID string, limit, offset int) ([]*models.VideoDiagnostic, error) {
	query := `
		SELECT id, car_id, user_id, video_url, duration_ms, frame_count, status, labels, findings, recorded_at, created_at
		FROM video_diagnostics
		WHERE car_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool().Query(ctx, query, carID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list video diagnostics: %w", err)
	}
	defer rows.Close()

	var diags []*models.VideoDiagnostic
	for rows.Next() {
		var diag models.VideoDiagnostic
		var labelsJSON, findingsJSON sql.NullString

		err := rows.Scan(
			&diag.ID,
			&diag.CarID,
			&diag.UserID,
			&diag.VideoURL,
			&diag.DurationMs,
			&diag.FrameCount,
			&diag.Status,
			&labelsJSON,
			&findingsJSON,
			&diag.RecordedAt,
			&diag.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video diagnostic: %w", err)
		}

		diag.Labels = DecodeStringSlice(labelsJSON.String)
		diag.Findings = DecodeStringMap(findingsJSON.String)
		diags = append(diags, &diag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating video diagnostics: %w", err)
	}

	return diags, nil
}

// Delete deletes a video diagnostic by ID
func (r *VideoDiagnosticRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM video_diagnostics WHERE id = $1`

	result, err := r.db.Pool().Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete video diagnostic: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("video diagnostic not found: %s", id)
	}

	return nil
}

// validateDiagnosticStatus validates that the status is one of the allowed values
func validateDiagnosticStatus(status types.DiagnosticStatus) error {
	switch status {
	case types.DiagnosticPending, types.DiagnosticAnalyzed, types.DiagnosticFailed:
		return nil
	default:
		return &types.ServiceError{
			Code:    "INVALID_PARAMETER",
			Message: fmt.Sprintf("invalid diagnostic status: %s", status),
			Details: map[string]interface{}{
				"status": status,
			},
		}
	}
}
