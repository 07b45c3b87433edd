package app

import (
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hr-admin/internal/shared/connection"
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

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	if err := registerModules(router, gormDB, redisClient); err != nil {
		return err
	}

	zap.L().Info("application modules registered")
	return nil
}
