package metaerrors

import (
	"net/http"

	"github.com/nrk16p/api-payslip-v2/internal/shared/apperror"
)

var (
	ErrMetaNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary item meta not found",
		http.StatusNotFound,
	)

	ErrInvalidGroup = apperror.New(
		apperror.CodeInvalidInput,
		"item_group must be one of earnings, deductions, summary",
		http.StatusBadRequest,
	)
)
