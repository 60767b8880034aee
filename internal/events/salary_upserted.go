package events

import "time"

const SalaryUpsertedTopic = "payslip.salary.upserted.v1"

type SalaryUpsertedEvent struct {
	EventType  string    `json:"event_type"`
	MonthYear  string    `json:"month_year"`
	EmpCode    string    `json:"emp_code"`
	ItemCount  int       `json:"item_count"`
	OccurredAt time.Time `json:"occurred_at"`
}
