package meta

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	items := r.Group("/salary_items")
	{
		items.GET("/meta", handler.List)
		items.POST("/meta", handler.Upsert)
		items.DELETE("/meta", handler.Delete)
	}
}
