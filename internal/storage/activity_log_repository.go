package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/car-assistant/internal/models"
	"github.com/google/uuid"
)

// ActivityLogRepository handles the append-only user activity history
type ActivityLogRepository struct {
	db *PostgresDB
}

// NewActivityLogRepository creates a new activity log repository
func NewActivityLogRepository(db *PostgresDB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Insert appends a new activity log entry. Entries are never updated or
// deleted.
func (r *ActivityLogRepository) Insert(ctx context.Context, entry *models.ActivityLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CreatedAt = time.Now()

	query := `
		INSERT INTO activity_logs (id, user_id, car_id, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool().Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.CarID,
		entry.Action,
		EncodeStringMap(entry.Details),
		entry.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}

	return nil
}

// ListByUser retrieves activity log entries for a user, newest first
func (r *ActivityLogRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.ActivityLog, error) {
	query := `
		SELECT id, user_id, car_id, action, details, created_at
		FROM activity_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool().Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	defer rows.Close()

	var entries []*models.ActivityLog
	for rows.Next() {
		var entry models.ActivityLog
		var detailsJSON sql.NullString

		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.CarID,
			&entry.Action,
			&detailsJSON,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity log: %w", err)
		}

		entry.Details = DecodeStringMap(detailsJSON.String)
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity logs: %w", err)
	}

	return entries, nil
}

// CountByUser returns the number of activity log entries for a user
func (r *ActivityLogRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM activity_logs WHERE user_id = $1`

	err := r.db.Pool().QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count activity logs: %w", err)
	}

	return count, nil
}
