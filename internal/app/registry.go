package app

import (
	"os"

	"go-leaveco/internal/auth"
	"go-leaveco/internal/calendar"
	"go-leaveco/internal/changeoff"
	"go-leaveco/internal/employee"
	"go-leaveco/internal/leave"
	"go-leaveco/internal/ledger"
	"go-leaveco/internal/messaging/kafka"
	"go-leaveco/internal/middleware"
	"go-leaveco/internal/rbac"
	"go-leaveco/internal/scheduler"
	"go-leaveco/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) (scheduler.Service, error) {
	db, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	// --- Repositories ---
	holidayRepo := calendar.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	balanceRepo := ledger.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	claimRepo := changeoff.NewRepository(gormDB)
	jobRepo := scheduler.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return nil, err
	}

	// --- Infrastructure ---
	attachmentStore := storage.NewLocalStore(os.Getenv("UPLOAD_DIR"))

	// --- Services ---
	calendarService := calendar.NewService(holidayRepo)
	ledgerService := ledger.NewService(db, balanceRepo)
	employeeService := employee.NewService(db, employeeRepo, balanceRepo)
	leaveService := leave.NewService(db, leaveRepo, employeeRepo, balanceRepo, calendarService, outboxRepo)
	claimService := changeoff.NewService(db, claimRepo, employeeRepo, balanceRepo, calendarService, attachmentStore, outboxRepo)
	schedulerService := scheduler.NewService(db, jobRepo, employeeRepo, balanceRepo)
	authService := auth.NewService(employeeRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	holidayHandler := calendar.NewHandler(calendarService)
	balanceHandler := ledger.NewHandler(ledgerService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService)
	claimHandler := changeoff.NewHandlerWithRedis(claimService, rdb)
	schedulerHandler := scheduler.NewHandler(schedulerService)

	// --- Global middleware ---
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		calendar.RegisterRoutes(api, holidayHandler, rbacService)
		ledger.RegisterRoutes(api, balanceHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		changeoff.RegisterRoutes(api, claimHandler, rbacService, rdb)
		scheduler.RegisterRoutes(api, schedulerHandler, rbacService)
	}

	return schedulerService, nil
}
