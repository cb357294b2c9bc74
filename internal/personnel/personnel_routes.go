package personnel

import (
	"go-personnel/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	personnels := r.Group("/personnels")
	personnels.Use(middleware.AuthMiddleware())
	{
		personnels.GET("", handler.GetAll)
		personnels.GET("/:id", handler.GetByID)
		personnels.POST("", handler.Create)
		personnels.PUT("/:id", handler.Update)
		personnels.PATCH("/:id/active", handler.SetActive)
	}
}
