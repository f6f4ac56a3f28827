package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/car-assistant/internal/models"
	"github.com/car-assistant/internal/types"
)

// TestCreateMaintenanceRecord_Success tests logging a service
func TestCreateMaintenanceRecord_Success(t *testing.T) {
	server := createTestServer()

	reqBody := map[string]interface{}{
		"category":      "oil_change",
		"title":         "Oil and filter change",
		"mileage":       42000,
		"costCents":     8999,
		"partsReplaced": []string{"oil filter", "drain plug gasket"},
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest("POST", "/api/cars/car-1/maintenance", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-123")

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}

	var response models.MaintenanceRecord
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.CarID != "car-1" {
		t.Errorf("Expected car ID 'car-1', got '%s'", response.CarID)
	}

	if response.UserID != "user-123" {
		t.Errorf("Expected user ID 'user-123', got '%s'", response.UserID)
	}
}

// TestCreateMaintenanceRecord_MissingUserID tests record creation without user ID
func TestCreateMaintenanceRecord_MissingUserID(t *testing.T) {
	server := createTestServer()

	reqBody := map[string]interface{}{
		"category": "oil_change",
		"title":    "Oil change",
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest("POST", "/api/cars/car-1/maintenance", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
}

// TestCreateMaintenanceRecord_MissingTitle tests record creation without a title
func TestCreateMaintenanceRecord_MissingTitle(t *testing.T) {
	server := createTestServer()

	reqBody := map[string]interface{}{
		"category": "oil_change",
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest("POST", "/api/cars/car-1/maintenance", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-123")

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

// TestCreateMaintenanceRecord_InvalidCategory tests that a storage validation
// error comes back as a 400
func TestCreateMaintenanceRecord_InvalidCategory(t *testing.T) {
	server := createTestServer()
	server.maintenance = &mockMaintenanceStore{
		createFunc: func(ctx context.Context, record *models.MaintenanceRecord) error {
			return &types.ServiceError{
				Code:    "INVALID_PARAMETER",
				Message: fmt.Sprintf("invalid service category: %s", record.Category),
			}
		},
	}

	reqBody := map[string]interface{}{
		"category": "flux_capacitor",
		"title":    "Time circuits",
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest("POST", "/api/cars/car-1/maintenance", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-123")

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	var response ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.Error.Code != ErrCodeInvalidInput {
		t.Errorf("Expected code '%s', got '%s'", ErrCodeInvalidInput, response.Error.Code)
	}
}

// TestListMaintenanceRecords_Success tests service history retrieval
func TestListMaintenanceRecords_Success(t *testing.T) {
	server := createTestServer()

	req := httptest.NewRequest("GET", "/api/cars/car-1/maintenance?limit=10&offset=0", nil)
	w := httptest.NewRecorder()

	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response []*models.MaintenanceRecord
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(response) == 0 {
		t.Error("Expected at least one record")
	}
}

// TestPaginationDefaults tests that bad pagination values fall back silently
func TestPaginationDefaults(t *testing.T) {
	server := createTestServer()

	var gotLimit, gotOffset int
	server.maintenance = &mockMaintenanceStore{
		listByCarFunc: func(ctx context.Context, carID string, limit, offset int) ([]*models.MaintenanceRecord, error) {
			gotLimit = limit
			gotOffset = offset
			return nil, nil
		},
	}

	req := httptest.NewRequest("GET", "/api/cars/car-1/maintenance?limit=abc&offset=-5", nil)
	w := httptest.NewRecorder()

	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if gotLimit != 50 {
		t.Errorf("Expected default limit 50, got %d", gotLimit)
	}

	if gotOffset != 0 {
		t.Errorf("Expected default offset 0, got %d", gotOffset)
	}
}

// TestGetMaintenanceRecord_NotFound tests retrieval of a missing record
func TestGetMaintenanceRecord_NotFound(t *testing.T) {
	server := createTestServer()
	server.maintenance = &mockMaintenanceStore{
		getByIDFunc: func(ctx context.Context, id string) (*models.MaintenanceRecord, error) {
			return nil, fmt.Errorf("maintenance record not found: %s", id)
		},
	}

	req := httptest.NewRequest("GET", "/api/maintenance/missing-record", nil)
	w := httptest.NewRecorder()

	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

// TestUpdateMaintenanceRecord_Success tests a partial update
func TestUpdateMaintenanceRecord_Success(t *testing.T) {
	server := createTestServer()

	var updated *models.MaintenanceRecord
	server.maintenance = &mockMaintenanceStore{
		updateFunc: func(ctx context.Context, record *models.MaintenanceRecord) error {
			updated = record
			return nil
		},
	}

	reqBody := map[string]interface{}{
		"mileage": 43500,
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest("PUT", "/api/maintenance/record-123", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if updated == nil {
		t.Fatal("Expected the store update to be called")
	}

	if updated.Mileage != 43500 {
		t.Errorf("Expected mileage 43500, got %d", updated.Mileage)
	}

	// Fields absent from the body keep their stored values
	if updated.Title != "Oil change" {
		t.Errorf("Expected title 'Oil change', got '%s'", updated.Title)
	}
}

// TestDeleteMaintenanceRecord_Success tests record deletion
func TestDeleteMaintenanceRecord_Success(t *testing.T) {
	server := createTestServer()

	req := httptest.NewRequest("DELETE", "/api/maintenance/record-123", nil)
	w := httptest.NewRecorder()

	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
}

// TestCreateScore_Success tests recording a health score
func TestCreateScore_Success(t *testing.T) {
	server := createTestServer()

	reqBody := map[string]interface{}{
		"category":     "engine",
		"score":        91.2,
		"factors":      map[string]interface{}{"vibration": 0.1},
		"modelVersion": "v3",
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest("POST", "/api/cars/car-1/scores", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}

	var response models.HealthScore
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.CarID != "car-1" {
		t.Errorf("Expected car ID 'car-1', got '%s'", response.CarID)
	}

	if response.Score != 91.2 {
		t.Errorf("Expected score 91.2, got %f", response.Score)
	}
}

// TestGetLatestScore_Success tests the latest score read
func TestGetLatestScore_Success(t *testing.T) {
	server := createTestServer()

	req := httptest.NewRequest("GET", "/api/cars/car-1/scores/latest", nil)
	w := httptest.NewRecorder()

	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response models.HealthScore
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.CarID != "car-1" {
		t.Errorf("Expected car ID 'car-1', got '%s'", response.CarID)
	}
}

// TestGetLatestScore_NotFound tests a car with no scores yet
func TestGetLatestScore_NotFound(t *testing.T) {
	server := createTestServer()
	server.scores = &mockScoreStore{
		latestByCarFunc: func(ctx context.Context, carID string) (*models.HealthScore, error) {
			return nil, fmt.Errorf("health score not found for car: %s", carID)
		},
	}

	req := httptest.NewRequest("GET", "/api/cars/new-car/scores/latest", nil)
	w := httptest.NewRecorder()

	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

// TestCreateReminder_Success tests reminder creation
func TestCreateReminder_Success(t *testing.T) {
	server := createTestServer()

	reqBody := map[string]interface{}{
		"carId":    "car-1",
		"title":    "Rotate tires",
		"dueAt":    time.Now().Add(30 * 24 * time.Hour).Format(time.RFC3339),
		"channels": []string{"push"},
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest("POST", "/api/reminders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-123")

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}

	var response models.Reminder
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.UserID != "user-123" {
		t.Errorf("Expected user ID 'user-123', got '%s'", response.UserID)
	}
}

// TestCreateReminder_MissingDueDate tests reminder creation without a due date
func TestCreateReminder_MissingDueDate(t *testing.T) {
	server := createTestServer()

	reqBody := map[string]interface{}{
		"carId": "car-1",
		"title": "Rotate tires",
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest("POST", "/api/reminders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-123")

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

// TestListUserReminders_Due tests the due-only filter
func TestListUserReminders_Due(t *testing.T) {
	server := createTestServer()

	var dueCalled bool
	server.reminders = &mockReminderStore{
		listDueFunc: func(ctx context.Context, userID string, due time.Time) ([]*models.Reminder, error) {
			dueCalled = true
			return []*models.Reminder{
				{ID: "reminder-due", UserID: userID, Title: "Inspection overdue"},
			}, nil
		},
	}

	req := httptest.NewRequest("GET", "/api/users/user-123/reminders?due=true", nil)
	w := httptest.NewRecorder()

	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if !dueCalled {
		t.Error("Expected the due query to be used")
	}
}

// TestMarkReminderDone_Success tests completing a reminder
func TestMarkReminderDone_Success(t *testing.T) {
	server := createTestServer()

	req := httptest.NewRequest("POST", "/api/reminders/reminder-123/done", nil)
	w := httptest.NewRecorder()

	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
}

// TestMarkReminderDone_NotFound tests completing a missing reminder
func TestMarkReminderDone_NotFound(t *testing.T) {
	server := createTestServer()
	server.reminders = &mockReminderStore{
		markDoneFunc: func(ctx context.Context, id string) error {
			return fmt.Errorf("reminder not found: %s", id)
		},
	}

	req := httptest.NewRequest("POST", "/api/reminders/missing/done", nil)
	w := httptest.NewRecorder()

	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

// TestRecordActivity_Success tests appending an activity entry
func TestRecordActivity_Success(t *testing.T) {
	server := createTestServer()

	reqBody := map[string]interface{}{
		"carId":   "car-1",
		"action":  "maintenance_logged",
		"details": map[string]interface{}{"recordId": "record-123"},
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest("POST", "/api/activity", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-123")

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}

	var response models.ActivityLog
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.UserID != "user-123" {
		t.Errorf("Expected user ID 'user-123', got '%s'", response.UserID)
	}
}

// TestRecordActivity_MissingAction tests activity recording without an action
func TestRecordActivity_MissingAction(t *testing.T) {
	server := createTestServer()

	reqBody := map[string]interface{}{
		"carId": "car-1",
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest("POST", "/api/activity", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-123")

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

// TestListUserActivity_Success tests the activity history envelope
func TestListUserActivity_Success(t *testing.T) {
	server := createTestServer()

	req := httptest.NewRequest("GET", "/api/users/user-123/activity", nil)
	w := httptest.NewRecorder()

	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		Entries    []*models.ActivityLog `json:"entries"`
		TotalCount int64                 `json:"totalCount"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(response.Entries) == 0 {
		t.Error("Expected at least one entry")
	}

	if response.TotalCount != 1 {
		t.Errorf("Expected total count 1, got %d", response.TotalCount)
	}
}

// TestCreateAudioDiagnostic_Success tests registering an audio upload
func TestCreateAudioDiagnostic_Success(t *testing.T) {
	server := createTestServer()

	reqBody := map[string]interface{}{
		"audioUrl":   "https://cdn.example.com/audio/engine.wav",
		"durationMs": 12000,
		"labels":     []string{"idle"},
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest("POST", "/api/cars/car-1/audio-diagnostics", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-123")

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}

	var response models.AudioDiagnostic
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.Status != types.DiagnosticPending {
		t.Errorf("Expected status 'pending', got '%s'", response.Status)
	}
}

// TestCreateAudioDiagnostic_MissingURL tests upload registration without a URL
func TestCreateAudioDiagnostic_MissingURL(t *testing.T) {
	server := createTestServer()

	reqBody := map[string]interface{}{
		"durationMs": 12000,
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest("POST", "/api/cars/car-1/audio-diagnostics", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-123")

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

// TestCreateVideoDiagnostic_Success tests registering a video upload
func TestCreateVideoDiagnostic_Success(t *testing.T) {
	server := createTestServer()

	reqBody := map[string]interface{}{
		"videoUrl":   "https://cdn.example.com/video/walkaround.mp4",
		"durationMs": 45000,
		"frameCount": 1350,
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest("POST", "/api/cars/car-1/video-diagnostics", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-123")

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}

	var response models.VideoDiagnostic
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.FrameCount != 1350 {
		t.Errorf("Expected frame count 1350, got %d", response.FrameCount)
	}
}

// TestListAudioDiagnostics_Success tests listing uploads for a car
func TestListAudioDiagnostics_Success(t *testing.T) {
	server := createTestServer()

	req := httptest.NewRequest("GET", "/api/cars/car-1/audio-diagnostics", nil)
	w := httptest.NewRecorder()

	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response []*models.AudioDiagnostic
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(response) == 0 {
		t.Error("Expected at least one diagnostic")
	}
}

// TestCreateCarImage_Success tests registering a photo
func TestCreateCarImage_Success(t *testing.T) {
	server := createTestServer()

	reqBody := map[string]interface{}{
		"imageUrl": "https://cdn.example.com/images/front.jpg",
		"caption":  "After the wash",
		"tags":     []string{"front", "clean"},
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest("POST", "/api/cars/car-1/images", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-123")

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}

	var response models.CarImage
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.Caption == nil || *response.Caption != "After the wash" {
		t.Error("Expected caption to round-trip")
	}
}

// TestDeleteCarImage_NotFound tests deleting a missing photo
func TestDeleteCarImage_NotFound(t *testing.T) {
	server := createTestServer()
	server.images = &mockImageStore{
		deleteFunc: func(ctx context.Context, id string) error {
			return fmt.Errorf("car image not found: %s", id)
		},
	}

	req := httptest.NewRequest("DELETE", "/api/images/missing-image", nil)
	w := httptest.NewRecorder()

	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}
