package importer

type ImportResult struct {
	Status       string `json:"status"`
	Sheet        string `json:"sheet"`
	RowsInserted int    `json:"rows_inserted"`
}
