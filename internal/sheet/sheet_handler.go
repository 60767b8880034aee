package sheet

import (
	"net/http"
	"strconv"

	"github.com/nrk16p/api-payslip-v2/internal/shared/apperror"
	"github.com/nrk16p/api-payslip-v2/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) UpdateWindow(c *gin.Context) {
	var req UpdateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpdateWindow(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) GetWindows(c *gin.Context) {
	var sheetID *uint
	if raw := c.Query("sheet_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			h.writeServiceError(c, apperror.InvalidField("sheet_id"))
			return
		}
		v := uint(id)
		sheetID = &v
	}

	resp, err := h.service.ListWindows(c.Request.Context(), sheetID, c.Query("month-year"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) GetMonthYears(c *gin.Context) {
	resp, err := h.service.ListMonthYears(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}
