package vacation

import (
	"go-personnel/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	vacations := r.Group("/vacations")
	vacations.Use(middleware.AuthMiddleware())
	{
		vacations.GET("", handler.GetAll)
		vacations.POST("", middleware.Idempotency(rdb), handler.Create)
		vacations.DELETE("/:id", handler.Delete)
	}
}
