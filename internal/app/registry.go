package app

import (
	"database/sql"

	"go-personnel/internal/attendance"
	"go-personnel/internal/auth"
	"go-personnel/internal/personnel"
	"go-personnel/internal/shared/clock"
	"go-personnel/internal/vacation"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	clk := clock.System()

	// --- Repositories ---
	personnelRepo := personnel.NewRepository(gormDB)
	vacationRepo := vacation.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)

	// --- Services ---
	personnelService := personnel.NewService(db, personnelRepo)
	vacationService := vacation.NewService(db, vacationRepo, personnelRepo)
	attendanceService := attendance.NewService(db, attendanceRepo, clk, rdb)
	authService := auth.NewService(personnelRepo, vacationService, attendanceService, clk)

	// --- Handlers ---
	personnelHandler := personnel.NewHandler(personnelService)
	vacationHandler := vacation.NewHandler(vacationService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	authHandler := auth.NewHandler(authService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		personnel.RegisterRoutes(api, personnelHandler)
		vacation.RegisterRoutes(api, vacationHandler, rdb)
		attendance.RegisterRoutes(api, attendanceHandler)
	}

	return nil
}
