package employee

import "time"

// Employee identity is the natural emp_code; rows are created on first sight
// during import or direct upsert and updated in place afterwards.
type Employee struct {
	EmployeeID uint      `gorm:"column:employee_id;primaryKey"`
	EmpCode    string    `gorm:"column:emp_code;size:64;uniqueIndex;not null"`
	FullName   string    `gorm:"column:full_name;size:255;not null"`
	StatusName string    `gorm:"column:status_name;size:100;default:ปกติ"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (Employee) TableName() string {
	return "employees"
}

// DefaultStatus marks an employee still on payroll (the leaver-status column
// defaults to it on import when the cell is blank).
const DefaultStatus = "ปกติ"
