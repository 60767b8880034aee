package salarydataerrors

import (
	"net/http"

	"github.com/nrk16p/api-payslip-v2/internal/shared/apperror"
)

var (
	ErrNoSalaryData = apperror.New(
		apperror.CodeNotFound,
		"no salary data",
		http.StatusNotFound,
	)

	ErrConcurrentReplace = apperror.New(
		apperror.CodeConflict,
		"salary items for this period and employee were written concurrently, retry the request",
		http.StatusConflict,
	)
)
