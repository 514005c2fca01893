package events

import "time"

const (
	LeaveAppliedTopic       = "hr.leave.applied.v1"
	LeaveStatusChangedTopic = "hr.leave.status.v1"

	LeaveAppliedType       = "leave_applied"
	LeaveStatusChangedType = "leave_status_changed"
)

type LeaveAppliedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	LeaveID    string    `json:"leave_id"`
	UserID     string    `json:"user_id"`
	ManagerID  string    `json:"manager_id,omitempty"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	OccurredAt time.Time `json:"occurred_at"`
}

type LeaveStatusChangedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	LeaveID        string    `json:"leave_id"`
	UserID         string    `json:"user_id"`
	PreviousStatus string    `json:"previous_status"`
	Status         string    `json:"status"`
	Feedback       *string   `json:"feedback,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
