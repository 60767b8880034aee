package salarydata

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nrk16p/api-payslip-v2/internal/shared/apperror"
	"github.com/nrk16p/api-payslip-v2/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Get(c *gin.Context) {
	monthYear := c.Query("month-year")
	empCode := c.Query("emp_id")

	if monthYear == "" || empCode == "" {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
			"month-year and emp_id required", nil)
		return
	}

	resp, err := h.service.Get(c.Request.Context(), monthYear, empCode)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Upsert(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	var req UpsertSalaryDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Upsert(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) Export(c *gin.Context) {
	monthYear := c.Query("month-year")
	if monthYear == "" {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
			"month-year required", nil)
		return
	}

	file, err := h.service.Export(c.Request.Context(), monthYear)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Data(http.StatusOK, ExportContentType, file.Content)
}
