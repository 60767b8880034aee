package sheeterrors

import (
	"net/http"

	"github.com/nrk16p/api-payslip-v2/internal/shared/apperror"
)

var ErrSheetNotFound = apperror.New(
	apperror.CodeNotFound,
	"sheet not found",
	http.StatusNotFound,
)
