package app

import (
	"context"
	"os"

	"go-leaveco/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp wires infrastructure, registers every module's routes, and starts
// the accrual/rollover scheduler. The returned cancel stops the scheduler on
// shutdown.
func BuildApp(router *gin.Engine) (context.CancelFunc, error) {
	logger := zap.L().Named("app")

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
		return nil, err
	}
	logger.Info("database connection established")

	if err := migrate(gormDB); err != nil {
		return nil, err
	}
	logger.Info("schema migrated")

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return nil, err
	}
	logger.Info("redis connection established")

	schedulerService, err := registerModules(router, gormDB, redisClient)
	if err != nil {
		return nil, err
	}

	// Jobs run at startup and hourly after that; the boundary checks inside
	// RunDue decide whether anything actually fires.
	ctx, cancel := context.WithCancel(context.Background())
	go schedulerService.Start(ctx)

	return cancel, nil
}
