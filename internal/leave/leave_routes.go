package leave

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, writeGuards ...gin.HandlerFunc) {
	guarded := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, writeGuards...), h)
	}

	leaves := r.Group("/leaves")
	{
		leaves.POST("/apply/:userId", guarded(handler.Apply)...)
		leaves.GET("/my-leaves/:userId", handler.MyLeaves)
		leaves.GET("/pending/:managerId", handler.Pending)
		leaves.PATCH("/:leaveId", guarded(handler.UpdateStatus)...)
	}
}
