package sheet

type UpdateWindowRequest struct {
	SheetID       uint    `json:"sheet_id" binding:"required"`
	APIIsActive   *bool   `json:"api_is_active"`
	APIActiveFrom *string `json:"api_active_from"`
	APIActiveTo   *string `json:"api_active_to"`
}

type WindowResponse struct {
	SheetID          uint    `json:"sheet_id"`
	APIIsActive      bool    `json:"api_is_active"`
	APIActiveFromBKK *string `json:"api_active_from_bkk"`
	APIActiveToBKK   *string `json:"api_active_to_bkk"`
}

type WindowStatusResponse struct {
	SheetID          uint    `json:"sheet_id"`
	MonthYear        string  `json:"month_year"`
	APIIsActive      bool    `json:"api_is_active"`
	APIActiveFromBKK *string `json:"api_active_from_bkk"`
	APIActiveToBKK   *string `json:"api_active_to_bkk"`
	IsActiveNow      bool    `json:"is_active_now"`
}

type MonthYearsResponse struct {
	MonthYears []string `json:"month_years"`
}
