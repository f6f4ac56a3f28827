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

// ReminderRepository handles maintenance reminder persistence
type ReminderRepository struct {
	db *PostgresDB
}

// NewReminderRepository creates a new reminder repository
func NewReminderRepository(db *PostgresDB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// Create creates a new reminder
func (r *ReminderRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	if reminder.ID == "" {
		reminder.ID = uuid.New().String()
	}

	now := time.Now()
	reminder.CreatedAt = now
	reminder.UpdatedAt = now

	query := `
		INSERT INTO reminders (id, user_id, car_id, title, notes, due_at, channels, done, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Pool().Exec(ctx, query,
		reminder.ID,
		reminder.UserID,
		reminder.CarID,
		reminder.Title,
		reminder.Notes,
		reminder.DueAt,
		EncodeStringSlice(reminder.Channels),
		reminder.Done,
		reminder.CreatedAt,
		reminder.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}

	return nil
}

// GetByID retrieves a reminder by ID
func (r *ReminderRepository) GetByID(ctx context.Context, id string) (*models.Reminder, error) {
	query := `
		SELECT id, user_id, car_id, title, notes, due_at, channels, done, created_at, updated_at
		FROM reminders
		WHERE id = $1
	`

	var reminder models.Reminder
	var channelsJSON sql.NullString

	err := r.db.Pool().QueryRow(ctx, query, id).Scan(
		&reminder.ID,
		&reminder.UserID,
		&reminder.CarID,
		&reminder.Title,
		&reminder.Notes,
		&reminder.DueAt,
		&channelsJSON,
		&reminder.Done,
		&reminder.CreatedAt,
		&reminder.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("reminder not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get reminder: %w", err)
	}

	reminder.Channels = DecodeStringSlice(channelsJSON.String)

	return &reminder, nil
}

// ListByUser retrieves reminders for a user ordered by due time
func (r *ReminderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.Reminder, error) {
	query := `
		SELECT id, user_id, car_id, title, notes, due_at, channels, done, created_at, updated_at
		FROM reminders
		WHERE user_id = $1
		ORDER BY due_at ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool().Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	return scanReminders(rows)
}

// ListDue retrieves open reminders for a user that are due at or before the
// given time
func (r *ReminderRepository) ListDue(ctx context.Context, userID string, due time.Time) ([]*models.Reminder, error) {
	query := `
		SELECT id, user_id, car_id, title, notes, due_at, channels, done, created_at, updated_at
		FROM reminders
		WHERE user_id = $1 AND due_at <= $2 AND done = FALSE
		ORDER BY due_at ASC
	`

	rows, err := r.db.Pool().Query(ctx, query, userID, due)
	if err != nil {
		return nil, fmt.Errorf("failed to list due reminders: %w", err)
	}
	defer rows.Close()

	return scanReminders(rows)
}

// MarkDone marks a reminder as completed
func (r *ReminderRepository) MarkDone(ctx context.Context, id string) error {
	query := `
		UPDATE reminders
		SET done = TRUE, updated_at = $2
		WHERE id = $1
	`

	result, err := r.db.Pool().Exec(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to mark reminder done: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reminder not found: %s", id)
	}

	return nil
}

// Delete deletes a reminder by ID
func (r *ReminderRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM reminders WHERE id = $1`

	result, err := r.db.Pool().Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reminder not found: %s", id)
	}

	return nil
}

// scanReminders collects reminder rows, decoding the channel list column
func scanReminders(rows pgx.Rows) ([]*models.Reminder, error) {
	var reminders []*models.Reminder
	for rows.Next() {
		var reminder models.Reminder
		var channelsJSON sql.NullString

		err := rows.Scan(
			&reminder.ID,
			&reminder.UserID,
			&reminder.CarID,
			&reminder.Title,
			&reminder.Notes,
			&reminder.DueAt,
			&channelsJSON,
			&reminder.Done,
			&reminder.CreatedAt,
			&reminder.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}

		reminder.Channels = DecodeStringSlice(channelsJSON.String)
		reminders = append(reminders, &reminder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reminders: %w", err)
	}

	return reminders, nil
}
