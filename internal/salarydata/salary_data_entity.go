package salarydata

import "github.com/shopspring/decimal"

// SalaryItem is one named, categorized monetary amount belonging to one
// employee within one period. The composite unique index enforces at most one
// row per (sheet, employee, item name); a replace losing a race fails its
// transaction on the index instead of leaving duplicates.
type SalaryItem struct {
	ItemID     uint            `gorm:"column:item_id;primaryKey"`
	SheetID    uint            `gorm:"column:sheet_id;not null;uniqueIndex:uq_sheet_employee_item"`
	EmployeeID uint            `gorm:"column:employee_id;not null;uniqueIndex:uq_sheet_employee_item"`
	ItemGroup  string          `gorm:"column:item_group;size:20;not null"`
	ItemName   string          `gorm:"column:item_name;size:255;not null;uniqueIndex:uq_sheet_employee_item"`
	Amount     decimal.Decimal `gorm:"column:amount;type:numeric(14,2);default:0"`
}

func (SalaryItem) TableName() string {
	return "salary_items"
}

// ExportRow is the item/employee join feeding the pivot export.
type ExportRow struct {
	EmpCode    string          `gorm:"column:emp_code"`
	FullName   string          `gorm:"column:full_name"`
	StatusName string          `gorm:"column:status_name"`
	ItemGroup  string          `gorm:"column:item_group"`
	ItemName   string          `gorm:"column:item_name"`
	Amount     decimal.Decimal `gorm:"column:amount"`
}
