package tawierrors

import (
	"net/http"

	"github.com/nrk16p/api-payslip-v2/internal/shared/apperror"
)

var ErrEmployeeNotFound = apperror.New(
	apperror.CodeNotFound,
	"employee not found",
	http.StatusNotFound,
)
