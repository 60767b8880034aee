package tawi

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/50tawi/data", handler.Get)
	r.POST("/50tawi/data", handler.Upsert)
}
