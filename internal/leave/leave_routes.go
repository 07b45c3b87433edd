package leave

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
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave", "read"),
			handler.GetAll,
		)
		leaves.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave", "read"),
			handler.GetByID,
		)
		leaves.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			handler.Create,
		)
		leaves.POST("/:id/approve",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "leave", "approve"),
			handler.Approve,
		)
		leaves.POST("/:id/reject",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "leave", "approve"),
			handler.Reject,
		)
		leaves.POST("/:id/cancel",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "leave", "update"),
			handler.Cancel,
		)
	}
}
