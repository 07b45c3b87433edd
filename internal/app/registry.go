package app

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"hr-admin/internal/attendance"
	"hr-admin/internal/department"
	"hr-admin/internal/employee"
	"hr-admin/internal/leave"
	"hr-admin/internal/messaging/kafka"
	"hr-admin/internal/middleware"
	"hr-admin/internal/overtime"
	"hr-admin/internal/payroll"
	"hr-admin/internal/rbac"
	"hr-admin/internal/rbac/infra"
	"hr-admin/internal/salarystructure"
	"hr-admin/internal/shared/counter"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	structureRepo := salarystructure.NewRepository(gormDB)
	ruleRepo := attendance.NewRuleRepository(gormDB)
	recordRepo := attendance.NewRecordRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	overtimeRepo := overtime.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)
	if err := rbacService.LoadPolicy(); err != nil {
		return err
	}

	// --- Resolvers ---
	structureResolver := salarystructure.NewResolver(structureRepo)
	ruleResolver := attendance.NewRuleResolver(ruleRepo)

	// --- Services ---
	departmentService := department.NewService(gormDB, departmentRepo)
	employeeService := employee.NewService(gormDB, employeeRepo, counterRepo, outboxRepo, rdb)
	structureService := salarystructure.NewService(gormDB, structureRepo, structureResolver)
	ruleService := attendance.NewRuleService(gormDB, ruleRepo, ruleResolver)
	attendanceService := attendance.NewService(gormDB, recordRepo, ruleResolver)
	payrollService := payroll.NewService(gormDB, payrollRepo, structureResolver, outboxRepo)
	leaveService := leave.NewService(gormDB, leaveRepo)
	overtimeService := overtime.NewService(gormDB, overtimeRepo)

	// --- Handlers ---
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService)
	structureHandler := salarystructure.NewHandler(structureService)
	attendanceHandler := attendance.NewHandler(attendanceService, ruleService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	leaveHandler := leave.NewHandler(leaveService)
	overtimeHandler := overtime.NewHandler(overtimeService)

	// --- Routes ---
	router.Use(middleware.RequestID())

	// coarse per-IP guard in front of the per-user limits on each route
	api := router.Group("/api/v1", middleware.RateLimitByIP(20, 60))
	{
		department.RegisterRoutes(api, departmentHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		salarystructure.RegisterRoutes(api, structureHandler, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		overtime.RegisterRoutes(api, overtimeHandler, rbacService)
	}

	return nil
}
