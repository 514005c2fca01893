package profile

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, writeGuards ...gin.HandlerFunc) {
	guarded := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, writeGuards...), h)
	}

	profiles := r.Group("/profile")
	{
		profiles.GET("/:userId", handler.Get)
		profiles.PUT("/:userId", guarded(handler.Update)...)
	}
}
