package events

import "time"

const ImportCompletedTopic = "payslip.import.completed.v1"

type ImportCompletedEvent struct {
	EventType    string    `json:"event_type"`
	MonthYear    string    `json:"month_year"`
	SheetID      uint      `json:"sheet_id"`
	RowsInserted int       `json:"rows_inserted"`
	OccurredAt   time.Time `json:"occurred_at"`
}
