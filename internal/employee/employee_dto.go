package employee

type EmployeeOption struct {
	EmpCode  string `json:"emp_code"`
	FullName string `json:"full_name"`
}

type EmployeeOptionsResponse struct {
	Employees []EmployeeOption `json:"employees"`
}
