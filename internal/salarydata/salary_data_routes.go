package salarydata

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

	data := r.Group("/salary_data")
	{
		data.GET("/data", handler.Get)
		data.GET("/export", handler.Export)
		if redisClient != nil {
			data.POST("/data", middleware.Idempotency(redisClient), handler.Upsert)
		} else {
			data.POST("/data", handler.Upsert)
		}
	}
}
