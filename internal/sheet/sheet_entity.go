package sheet

import "time"

// SalarySheet is one pay period, identified by a human-readable label such as
// "November2568". The api window bounds are stored in UTC; either may be nil
// for an open-ended window.
type SalarySheet struct {
	SheetID       uint       `gorm:"column:sheet_id;primaryKey"`
	MonthYear     string     `gorm:"column:month_year;size:50;uniqueIndex;not null"`
	APIActiveFrom *time.Time `gorm:"column:api_active_from"`
	APIActiveTo   *time.Time `gorm:"column:api_active_to"`
	APIIsActive   bool       `gorm:"column:api_is_active;default:false"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
}

func (SalarySheet) TableName() string {
	return "salary_sheets"
}

// WindowOpenAt reports whether the activation window admits the given
// instant. Bounds are inclusive and an absent bound leaves that side open.
func (s *SalarySheet) WindowOpenAt(now time.Time) bool {
	if s.APIActiveFrom != nil && now.Before(s.APIActiveFrom.UTC()) {
		return false
	}
	if s.APIActiveTo != nil && now.After(s.APIActiveTo.UTC()) {
		return false
	}
	return true
}
