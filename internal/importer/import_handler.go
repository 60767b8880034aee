package importer

import (
	"encoding/json"
	"net/http"
	"time"

	importererrors "github.com/nrk16p/api-payslip-v2/internal/importer/errors"
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

func (h *Handler) Upload(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.writeServiceError(c, importererrors.ErrNoFile)
		return
	}
	if fileHeader.Filename == "" {
		h.writeServiceError(c, importererrors.ErrEmptyFilename)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.writeServiceError(c, importererrors.UnreadableFile(err))
		return
	}
	defer file.Close()

	result, err := h.service.Import(c.Request.Context(), file)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(result); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, result)
}
