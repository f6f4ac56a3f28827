// Package types provides common type definitions for the car assistant system.
package types

// ServiceCategory represents the kind of maintenance service performed
type ServiceCategory string

const (
	// ServiceOilChange represents an engine oil and filter change
	ServiceOilChange ServiceCategory = "oil_change"
	// ServiceTireRotation represents a tire rotation or replacement
	ServiceTireRotation ServiceCategory = "tire_rotation"
	// ServiceBrakes represents brake pad or disc service
	ServiceBrakes ServiceCategory = "brakes"
	// ServiceBattery represents battery inspection or replacement
	ServiceBattery ServiceCategory = "battery"
	// ServiceInspection represents a scheduled or legal inspection
	ServiceInspection ServiceCategory = "inspection"
	// ServiceRepair represents an unscheduled repair
	ServiceRepair ServiceCategory = "repair"
	// ServiceOther represents any service not covered above
	ServiceOther ServiceCategory = "other"
)

// ScoreCategory represents the vehicle subsystem an AI health score applies to
type ScoreCategory string

const (
	// ScoreOverall represents the aggregate vehicle health score
	ScoreOverall ScoreCategory = "overall"
	// ScoreEngine represents the engine health score
	ScoreEngine ScoreCategory = "engine"
	// ScoreBrakes represents the brake system health score
	ScoreBrakes ScoreCategory = "brakes"
	// ScoreBattery represents the battery health score
	ScoreBattery ScoreCategory = "battery"
	// ScoreTires represents the tire health score
	ScoreTires ScoreCategory = "tires"
)

// DiagnosticStatus represents the analysis state of an uploaded diagnostic
type DiagnosticStatus string

const (
	// DiagnosticPending represents a diagnostic waiting for analysis
	DiagnosticPending DiagnosticStatus = "pending"
	// DiagnosticAnalyzed represents a diagnostic with completed analysis
	DiagnosticAnalyzed DiagnosticStatus = "analyzed"
	// DiagnosticFailed represents a diagnostic whose analysis failed
	DiagnosticFailed DiagnosticStatus = "failed"
)

// ActivityAction represents a recorded user or system action
type ActivityAction string

const (
	// ActionMaintenanceLogged is recorded when a maintenance record is created
	ActionMaintenanceLogged ActivityAction = "maintenance_logged"
	// ActionScoreComputed is recorded when an AI health score is stored
	ActionScoreComputed ActivityAction = "score_computed"
	// ActionReminderCreated is recorded when a reminder is created
	ActionReminderCreated ActivityAction = "reminder_created"
	// ActionReminderDone is recorded when a reminder is completed
	ActionReminderDone ActivityAction = "reminder_done"
	// ActionDiagnosticUploaded is recorded when an audio or video diagnostic is uploaded
	ActionDiagnosticUploaded ActivityAction = "diagnostic_uploaded"
	// ActionImageUploaded is recorded when a car image is uploaded
	ActionImageUploaded ActivityAction = "image_uploaded"
	// ActionProfileUpdated is recorded when the remote user profile changes
	ActionProfileUpdated ActivityAction = "profile_updated"
)

// ServiceError represents a structured error response
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}
