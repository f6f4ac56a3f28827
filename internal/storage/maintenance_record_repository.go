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

// MaintenanceRecordRepository handles maintenance record persistence
type MaintenanceRecordRepository struct {
	db *PostgresDB
}

// NewMaintenanceRecordRepository creates a new maintenance record repository
func NewMaintenanceRecordRepository(db *PostgresDB) *MaintenanceRecordRepository {
	return &MaintenanceRecordRepository{db: db}
}

// Create creates a new maintenance record
func (r *MaintenanceRecordRepository) Create(ctx context.Context, record *models.MaintenanceRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	if err := validateServiceCategory(record.Category); err != nil {
		return err
	}

	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	if record.PerformedAt.IsZero() {
		record.PerformedAt = now
	}

	query := `
		INSERT INTO maintenance_records (id, car_id, user_id, category, title, description, mileage, cost_cents, parts_replaced, performed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Pool().Exec(ctx, query,
		record.ID,
		record.CarID,
		record.UserID,
		record.Category,
		record.Title,
		record.Description,
		record.Mileage,
		record.CostCents,
		EncodeStringSlice(record.PartsReplaced),
		record.PerformedAt,
		record.CreatedAt,
		record.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create maintenance record: %w", err)
	}

	return nil
}

// GetByID retrieves a maintenance record by ID
func (r *MaintenanceRecordRepository) GetByID(ctx context.Context, id string) (*models.MaintenanceRecord, error) {
	query := `
		SELECT id, car_id, user_id, category, title, description, mileage, cost_cents, parts_replaced, performed_at, created_at, updated_at
		FROM maintenance_records
		WHERE id = $1
	`

	var record models.MaintenanceRecord
	var partsJSON sql.NullString

	err := r.db.Pool().QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.CarID,
		&record.UserID,
		&record.Category,
		&record.Title,
		&record.Description,
		&record.Mileage,
		&record.CostCents,
		&partsJSON,
		&record.PerformedAt,
		&record.CreatedAt,
		&record.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("maintenance record not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get maintenance record: %w", err)
	}

	record.PartsReplaced = DecodeStringSlice(partsJSON.String)

	return &record, nil
}

// ListByCar retrieves maintenance records for a car, newest first
func (r *MaintenanceRecordRepository) ListByCar(ctx context.Context, carID string, limit, offset int) ([]*models.MaintenanceRecord, error) {
	query := `
		SELECT id, car_id, user_id, category, title, description, mileage, cost_cents, parts_replaced, performed_at, created_at, updated_at
		FROM maintenance_records
		WHERE car_id = $1
		ORDER BY performed_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool().Query(ctx, query, carID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance records: %w", err)
	}
	defer rows.Close()

	var records []*models.MaintenanceRecord
	for rows.Next() {
		var record models.MaintenanceRecord
		var partsJSON sql.NullString

		err := rows.Scan(
			&record.ID,
			&record.CarID,
			&record.UserID,
			&record.Category,
			&record.Title,
			&record.Description,
			&record.Mileage,
			&record.CostCents,
			&partsJSON,
			&record.PerformedAt,
			&record.CreatedAt,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan maintenance record: %w", err)
		}

		record.PartsReplaced = DecodeStringSlice(partsJSON.String)
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating maintenance records: %w", err)
	}

	return records, nil
}

// Update updates an existing maintenance record
func (r *MaintenanceRecordRepository) Update(ctx context.Context, record *models.MaintenanceRecord) error {
	if err := validateServiceCategory(record.Category); err != nil {
		return err
	}

	record.UpdatedAt = time.Now()

	query := `
		UPDATE maintenance_records
		SET category = $2, title = $3, description = $4, mileage = $5, cost_cents = $6, parts_replaced = $7, performed_at = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Pool().Exec(ctx, query,
		record.ID,
		record.Category,
		record.Title,
		record.Description,
		record.Mileage,
		record.CostCents,
		EncodeStringSlice(record.PartsReplaced),
		record.PerformedAt,
		record.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update maintenance record: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("maintenance record not found: %s", record.ID)
	}

	return nil
}

// Delete deletes a maintenance record by ID
func (r *MaintenanceRecordRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM maintenance_records WHERE id = $1`

	result, err := r.db.Pool().Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete maintenance record: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("maintenance record not found: %s", id)
	}

	return nil
}

// validateServiceCategory validates that the category is one of the allowed values
func validateServiceCategory(category types.ServiceCategory) error {
	switch category {
	case types.ServiceOilChange, types.ServiceTireRotation, types.ServiceBrakes,
		types.ServiceBattery, types.ServiceInspection, types.ServiceRepair, types.ServiceOther:
		return nil
	default:
		return &types.ServiceError{
			Code:    "INVALID_PARAMETER",
			Message: fmt.Sprintf("invalid service category: %s", category),
			Details: map[string]interface{}{
				"category": category,
			},
		}
	}
}
