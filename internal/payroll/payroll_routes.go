package payroll

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"hr-admin/internal/middleware"
	"hr-admin/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.GET("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetAll,
		)
		payrolls.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetByID,
		)
		payrolls.POST("/generate",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "generate"),
			middleware.Idempotency(rdb),
			handler.Generate,
		)
		payrolls.POST("/generate-batch",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "generate"),
			middleware.Idempotency(rdb),
			handler.GenerateBatch,
		)
		payrolls.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "update"),
			handler.Update,
		)
		payrolls.POST("/:id/pay",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "pay"),
			handler.MarkAsPaid,
		)
	}
}
