package meta

import "time"

// Item groups. The whitelist is the authoritative source of which item names
// are valid and which group they belong to.
const (
	GroupEarnings   = "earnings"
	GroupDeductions = "deductions"
	GroupSummary    = "summary"
)

func ValidGroup(group string) bool {
	switch group {
	case GroupEarnings, GroupDeductions, GroupSummary:
		return true
	}
	return false
}

type SalaryItemMeta struct {
	MetaID    uint      `gorm:"column:meta_id;primaryKey"`
	ItemName  string    `gorm:"column:item_name;size:255;uniqueIndex;not null"`
	ItemGroup string    `gorm:"column:item_group;size:20"`
	Remark    string    `gorm:"column:remark;size:255"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (SalaryItemMeta) TableName() string {
	return "salary_item_meta"
}
