package app

import (
	"context"
	"os"

	"go-personnel/internal/attendance"
	"go-personnel/internal/personnel"
	"go-personnel/internal/shared/connection"
	"go-personnel/internal/vacation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	if err := gormDB.AutoMigrate(
		&personnel.Personnel{},
		&vacation.Vacation{},
		&attendance.EntryExitEvent{},
	); err != nil {
		return err
	}

	if err := seedAdmin(gormDB); err != nil {
		return err
	}

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	return registerModules(router, db, gormDB, redisClient)
}

// seedAdmin creates the bootstrap admin/admin account on an empty database so
// the very first login is possible. Change the password after first use.
func seedAdmin(gormDB *gorm.DB) error {
	var count int64
	if err := gormDB.Model(&personnel.Personnel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &personnel.Personnel{
		ID:       uuid.New(),
		UserName: "admin",
		FullName: "Administrator",
		Password: string(hashed),
		IsActive: true,
	}
	if err := gormDB.WithContext(context.Background()).Create(admin).Error; err != nil {
		return err
	}
	zap.L().Info("seeded initial admin account")
	return nil
}
