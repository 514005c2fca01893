package attendance

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, writeGuards ...gin.HandlerFunc) {
	attendance := r.Group("/attendance")
	{
		swipe := append(append([]gin.HandlerFunc{}, writeGuards...), handler.Swipe)
		attendance.POST("/swipe/:userId", swipe...)

		attendance.GET("/total-hours/:userId", handler.TotalHours)
		attendance.GET("/history/:userId", handler.History)
		attendance.GET("/export/:userId", handler.Export)
	}
}
