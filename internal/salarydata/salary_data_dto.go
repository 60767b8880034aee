package salarydata

// GroupedItems buckets line items into the three fixed groups, item name to
// fixed 2-decimal amount string.
type GroupedItems struct {
	Earnings   map[string]string `json:"earnings"`
	Deductions map[string]string `json:"deductions"`
	Summary    map[string]string `json:"summary"`
}

type SalaryDataResponse struct {
	Sheet      string       `json:"Sheet"`
	EmpCode    string       `json:"รหัสพนักงาน"`
	FullName   string       `json:"ชื่อ - นามสกุล"`
	StatusName string       `json:"สถานะคนลาออก"`
	Datalist   GroupedItems `json:"datalist"`
}

type UpsertSalaryDataRequest struct {
	MonthYear string                    `json:"month-year" binding:"required"`
	EmpID     string                    `json:"emp_id" binding:"required"`
	FullName  string                    `json:"full_name"`
	Status    string                    `json:"status"`
	Datalist  map[string]map[string]any `json:"datalist"`
}

type UpsertStatusResponse struct {
	Status string `json:"status"`
}
