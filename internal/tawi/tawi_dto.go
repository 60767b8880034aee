package tawi

type TawiRecordResponse struct {
	Sheet      string `json:"Sheet"`
	URLPDF     string `json:"url_pdf"`
	FullName   string `json:"ชื่อ - นามสกุล"`
	EmpCode    string `json:"รหัสพนักงาน"`
	StatusName string `json:"สถานะคนลาออก"`
}

type UpsertTawiRequest struct {
	Year    string `json:"year" binding:"required"`
	EmpCode string `json:"emp_id" binding:"required"`
	URLPDF  string `json:"url_pdf"`
}

type UpsertTawiResponse struct {
	Status string `json:"status"`
}
