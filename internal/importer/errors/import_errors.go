package importererrors

import (
	"net/http"

	"github.com/nrk16p/api-payslip-v2/internal/shared/apperror"
)

var (
	ErrNoFile = apperror.New(
		apperror.CodeInvalidInput,
		"No file uploaded",
		http.StatusBadRequest,
	)

	ErrEmptyFilename = apperror.New(
		apperror.CodeInvalidInput,
		"Empty filename",
		http.StatusBadRequest,
	)

	ErrNoDataRows = apperror.New(
		apperror.CodeInvalidInput,
		"Excel file has no data rows",
		http.StatusBadRequest,
	)
)

// UnreadableFile wraps a workbook parse failure as a client error.
func UnreadableFile(err error) *apperror.AppError {
	return apperror.Wrap(
		err,
		apperror.CodeInvalidInput,
		"Failed to read Excel file",
		http.StatusBadRequest,
	)
}

// UnknownItems reports every offending column plus the allowed set, so the
// caller can fix spelling or create metadata before retrying.
func UnknownItems(unknown, allowed []string) *apperror.AppError {
	return apperror.New(
		apperror.CodeUnknownItems,
		"Unknown salary items detected",
		http.StatusBadRequest,
	).WithDetails(map[string]any{
		"message":         "Some Excel columns do not match salary_item_meta.",
		"unknown_columns": unknown,
		"allowed_columns": allowed,
		"hint":            "Please fix spelling or create metadata before uploading.",
	})
}
