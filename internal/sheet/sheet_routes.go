package sheet

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.PATCH("/salary_sheets/api-window", handler.UpdateWindow)
	r.GET("/salary_sheets/api-window", handler.GetWindows)
	r.GET("/salary/month-years", handler.GetMonthYears)
}
