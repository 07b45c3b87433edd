package attendance

import (
	"github.com/gin-gonic/gin"

	"hr-admin/internal/middleware"
	"hr-admin/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	records := r.Group("/attendance")
	records.Use(middleware.AuthMiddleware())
	{
		records.POST("/check-in",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "attendance", "write"),
			handler.CheckIn,
		)
		records.POST("/check-out",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "attendance", "write"),
			handler.CheckOut,
		)
		records.POST("/records",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "attendance", "manage"),
			handler.CreateRecord,
		)
		records.GET("/records",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			handler.GetAllRecords,
		)
		records.GET("/records/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			handler.GetRecordByID,
		)
	}

	rules := r.Group("/attendance-rules")
	rules.Use(middleware.AuthMiddleware())
	{
		rules.GET("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "attendance_rule", "read"),
			handler.GetAllRules,
		)
		rules.GET("/resolve",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "attendance_rule", "read"),
			handler.ResolveRule,
		)
		rules.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "attendance_rule", "read"),
			handler.GetRuleByID,
		)
		rules.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "attendance_rule", "manage"),
			handler.CreateRule,
		)
		rules.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "attendance_rule", "manage"),
			handler.UpdateRule,
		)
		rules.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "attendance_rule", "manage"),
			handler.DeleteRule,
		)
		rules.POST("/:id/promote-default",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "attendance_rule", "manage"),
			handler.PromoteDefaultRule,
		)
		rules.PUT("/:id/employees",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "attendance_rule", "manage"),
			handler.AssignRuleEmployees,
		)
	}
}
