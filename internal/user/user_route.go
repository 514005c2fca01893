package user

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the directory under /users. writeGuards run only on
// registration (rate limiting, idempotency).
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, writeGuards ...gin.HandlerFunc) {
	users := r.Group("/users")
	{
		users.GET("", handler.GetAll)
		users.GET("/managers", handler.GetManagers)
		users.GET("/manager/:managerId/employees", handler.GetEmployeesOfManager)

		register := append(append([]gin.HandlerFunc{}, writeGuards...), handler.Register)
		users.POST("", register...)
	}
}
