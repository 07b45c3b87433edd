package overtime

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
	overtimes := r.Group("/overtimes")
	overtimes.Use(middleware.AuthMiddleware())
	{
		overtimes.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "overtime", "read"),
			handler.GetAll,
		)
		overtimes.GET("/approved-hours",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "overtime", "read"),
			handler.ApprovedHours,
		)
		overtimes.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "overtime", "read"),
			handler.GetByID,
		)
		overtimes.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "overtime", "create"),
			handler.Create,
		)
		overtimes.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "overtime", "update"),
			handler.Update,
		)
		overtimes.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "overtime", "delete"),
			handler.Delete,
		)
		overtimes.POST("/:id/approve",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "overtime", "approve"),
			handler.Approve,
		)
		overtimes.POST("/:id/reject",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "overtime", "approve"),
			handler.Reject,
		)
	}
}
