package attendance

import (
	"go-personnel/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	attendances := r.Group("/attendance")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.GET("/durations", handler.GetDurations)
		attendances.GET("/events", handler.GetMyEvents)
	}
}
