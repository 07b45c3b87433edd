package events

import "time"

const PayrollGeneratedTopic = "hr.payroll.generated.v1"

type PayrollGeneratedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	RecordID   string    `json:"record_id"`
	EmployeeID string    `json:"employee_id"`
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	NetSalary  string    `json:"net_salary"`
	OccurredAt time.Time `json:"occurred_at"`
}
