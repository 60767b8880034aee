package tawi

import "time"

// Salary50Tawi holds the annual withholding-tax certificate reference for one
// employee: a single document URL per (year, employee).
type Salary50Tawi struct {
	ID         uint      `gorm:"column:id;primaryKey"`
	Year       string    `gorm:"column:year;size:10;not null;uniqueIndex:uq_tawi_year_employee"`
	EmployeeID uint      `gorm:"column:employee_id;not null;uniqueIndex:uq_tawi_year_employee"`
	URLPDF     string    `gorm:"column:url_pdf;size:500"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (Salary50Tawi) TableName() string {
	return "salary_50tawi"
}
