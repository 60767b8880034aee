package importer

import (
	"github.com/nrk16p/api-payslip-v2/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	// Uploads are heavy; keep a per-IP budget on them.
	limited := middleware.RateLimitByIP(1, 3)

	if redisClient != nil {
		r.POST("/upload_excel", limited, middleware.Idempotency(redisClient), handler.Upload)
	} else {
		r.POST("/upload_excel", limited, handler.Upload)
	}
}
