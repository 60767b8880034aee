package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeUnknownItems = "UNKNOWN_SALARY_ITEMS"

	// Server errors (5xx)
	CodeInternalError = "INTERNAL_ERROR"
)
