// Package api provides the HTTP API server implementation.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/car-assistant/internal/logging"
	"github.com/car-assistant/internal/models"
	"github.com/car-assistant/internal/storage"
	"github.com/gorilla/mux"
)

// Store interfaces for dependency injection and testing

// UserStore defines the interface for user profile operations
type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	SetOnlineStatus(ctx context.Context, id string, online bool) error
	SetPushToken(ctx context.Context, id string, token string) error
}

// MaintenanceStore defines the interface for maintenance record operations
type MaintenanceStore interface {
	Create(ctx context.Context, record *models.MaintenanceRecord) error
	GetByID(ctx context.Context, id string) (*models.MaintenanceRecord, error)
	ListByCar(ctx context.Context, carID string, limit, offset int) ([]*models.MaintenanceRecord, error)
	Update(ctx context.Context, record *models.MaintenanceRecord) error
	Delete(ctx context.Context, id string) error
}

// ScoreStore defines the interface for health score operations
type ScoreStore interface {
	Create(ctx context.Context, score *models.HealthScore) error
	LatestByCar(ctx context.Context, carID string) (*models.HealthScore, error)
	ListByCar(ctx context.Context, carID string, limit, offset int) ([]*models.HealthScore, error)
}

// ReminderStore defines the interface for reminder operations
type ReminderStore interface {
	Create(ctx context.Context, reminder *models.Reminder) error
	GetByID(ctx context.Context, id string) (*models.Reminder, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.Reminder, error)
	ListDue(ctx context.Context, userID string, due time.Time) ([]*models.Reminder, error)
	MarkDone(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// ActivityStore defines the interface for activity log operations
type ActivityStore interface {
	Insert(ctx context.Context, entry *models.ActivityLog) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.ActivityLog, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// AudioDiagnosticStore defines the interface for audio diagnostic operations
type AudioDiagnosticStore interface {
	Create(ctx context.Context, diag *models.AudioDiagnostic) error
	GetByID(ctx context.Context, id string) (*models.AudioDiagnostic, error)
	ListByCar(ctx context.Context, carID string, limit, offset int) ([]*models.AudioDiagnostic, error)
	Delete(ctx context.Context, id string) error
}

// VideoDiagnosticStore defines the interface for video diagnostic operations
type VideoDiagnosticStore interface {
	Create(ctx context.Context, diag *models.VideoDiagnostic) error
	GetByID(ctx context.Context, id string) (*models.VideoDiagnostic, error)
	ListByCar(ctx context.Context, carID string, limit, offset int) ([]*models.VideoDiagnostic, error)
	Delete(ctx context.Context, id string) error
}

// CarImageStore defines the interface for car image operations
type CarImageStore interface {
	Create(ctx context.Context, image *models.CarImage) error
	GetByID(ctx context.Context, id string) (*models.CarImage, error)
	ListByCar(ctx context.Context, carID string, limit, offset int) ([]*models.CarImage, error)
	Delete(ctx context.Context, id string) error
}

// Server represents the HTTP API server.
type Server struct {
	router      *mux.Router
	httpServer  *http.Server
	users       UserStore
	maintenance MaintenanceStore
	scores      ScoreStore
	reminders   ReminderStore
	activity    ActivityStore
	audio       AudioDiagnosticStore
	video       VideoDiagnosticStore
	images      CarImageStore
	postgres    *storage.PostgresDB
	mongo       *storage.MongoDB
	config      *ServerConfig
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Host              string
	Port              string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	RequestsPerSecond int // Sustained rate limit per caller
	Burst             int // Requests allowed above the sustained rate
}

// NewServer creates a new API server instance.
func NewServer(
	config *ServerConfig,
	users *storage.UserRepository,
	maintenance *storage.MaintenanceRecordRepository,
	scores *storage.ScoreCache,
	reminders *storage.ReminderRepository,
	activity *storage.ActivityLogRepository,
	audio *storage.AudioDiagnosticRepository,
	video *storage.VideoDiagnosticRepository,
	images *storage.CarImageRepository,
	postgres *storage.PostgresDB,
	mongo *storage.MongoDB,
) *Server {
	s := &Server{
		router:      mux.NewRouter(),
		users:       users,
		maintenance: maintenance,
		scores:      scores,
		reminders:   reminders,
		activity:    activity,
		audio:       audio,
		video:       video,
		images:      images,
		postgres:    postgres,
		mongo:       mongo,
		config:      config,
	}

	s.setupRouter()

	return s
}

// setupRouter configures the router with middleware and routes
func (s *Server) setupRouter() {
	// Create rate limiter
	rateLimiter := NewRateLimiter(s.config.RequestsPerSecond, s.config.Burst)

	// Set up middleware (order matters!)
	s.router.Use(LoggingMiddleware)
	s.router.Use(RecoveryMiddleware)
	s.router.Use(CORSMiddleware)
	s.router.Use(RateLimitMiddleware(rateLimiter)) // Rate limiting after CORS
	s.router.Use(CompressionMiddleware)

	// Set up routes
	s.setupRoutes()

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", s.config.Host, s.config.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// API v1 routes
	api := s.router.PathPrefix("/api").Subrouter()

	// User profile endpoints
	api.HandleFunc("/users/{id}", s.handleGetUser).Methods("GET")
	api.HandleFunc("/users/{id}", s.handleSaveUser).Methods("PUT")
	api.HandleFunc("/users/{id}/status", s.handleSetOnlineStatus).Methods("PUT")
	api.HandleFunc("/users/{id}/push-token", s.handleSetPushToken).Methods("PUT")
	api.HandleFunc("/users/{id}/reminders", s.handleListUserReminders).Methods("GET")
	api.HandleFunc("/users/{id}/activity", s.handleListUserActivity).Methods("GET")

	// Maintenance record endpoints
	api.HandleFunc("/cars/{carId}/maintenance", s.handleCreateMaintenanceRecord).Methods("POST")
	api.HandleFunc("/cars/{carId}/maintenance", s.handleListMaintenanceRecords).Methods("GET")
	api.HandleFunc("/maintenance/{id}", s.handleGetMaintenanceRecord).Methods("GET")
	api.HandleFunc("/maintenance/{id}", s.handleUpdateMaintenanceRecord).Methods("PUT")
	api.HandleFunc("/maintenance/{id}", s.handleDeleteMaintenanceRecord).Methods("DELETE")

	// Health score endpoints
	api.HandleFunc("/cars/{carId}/scores", s.handleCreateScore).Methods("POST")
	api.HandleFunc("/cars/{carId}/scores", s.handleListScores).Methods("GET")
	api.HandleFunc("/cars/{carId}/scores/latest", s.handleGetLatestScore).Methods("GET")

	// Reminder endpoints
	api.HandleFunc("/reminders", s.handleCreateReminder).Methods("POST")
	api.HandleFunc("/reminders/{id}", s.handleGetReminder).Methods("GET")
	api.HandleFunc("/reminders/{id}", s.handleDeleteReminder).Methods("DELETE")
	api.HandleFunc("/reminders/{id}/done", s.handleMarkReminderDone).Methods("POST")

	// Activity log endpoints
	api.HandleFunc("/activity", s.handleRecordActivity).Methods("POST")

	// Diagnostic and image endpoints
	api.HandleFunc("/cars/{carId}/audio-diagnostics", s.handleCreateAudioDiagnostic).Methods("POST")
	api.HandleFunc("/cars/{carId}/audio-diagnostics", s.handleListAudioDiagnostics).Methods("GET")
	api.HandleFunc("/audio-diagnostics/{id}", s.handleGetAudioDiagnostic).Methods("GET")
	api.HandleFunc("/audio-diagnostics/{id}", s.handleDeleteAudioDiagnostic).Methods("DELETE")
	api.HandleFunc("/cars/{carId}/video-diagnostics", s.handleCreateVideoDiagnostic).Methods("POST")
	api.HandleFunc("/cars/{carId}/video-diagnostics", s.handleListVideoDiagnostics).Methods("GET")
	api.HandleFunc("/video-diagnostics/{id}", s.handleGetVideoDiagnostic).Methods("GET")
	api.HandleFunc("/video-diagnostics/{id}", s.handleDeleteVideoDiagnostic).Methods("DELETE")
	api.HandleFunc("/cars/{carId}/images", s.handleCreateCarImage).Methods("POST")
	api.HandleFunc("/cars/{carId}/images", s.handleListCarImages).Methods("GET")
	api.HandleFunc("/images/{id}", s.handleGetCarImage).Methods("GET")
	api.HandleFunc("/images/{id}", s.handleDeleteCarImage).Methods("DELETE")
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.postgres != nil {
		if err := s.postgres.Ping(r.Context()); err != nil {
			respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Database unavailable", nil)
			return
		}
	}

	if s.mongo != nil {
		if err := s.mongo.Ping(r.Context()); err != nil {
			respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Profile store unavailable", nil)
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "car-assistant",
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	logging.GetGlobalLogger().WithField("addr", s.httpServer.Addr).Info("Starting API server")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.GetGlobalLogger().Info("Shutting down API server")
	return s.httpServer.Shutdown(ctx)
}
