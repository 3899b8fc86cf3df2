package events

import "time"

const ChangeOffStatusChangedTopic = "hr.changeoff.status.v1"

type ChangeOffStatusChangedEvent struct {
	EventType    string    `json:"event_type"`
	ClaimID      string    `json:"claim_id"`
	EmployeeID   string    `json:"employee_id"`
	WorkDate     string    `json:"work_date"`
	DayValue     float64   `json:"day_value"`
	Status       string    `json:"status"`
	RejectReason string    `json:"reject_reason,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
