package department

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
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	{
		departments.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "department", "read"),
			handler.GetAll,
		)
		departments.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "department", "read"),
			handler.GetByID,
		)
		departments.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "department", "update"),
			handler.Create,
		)
		departments.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "department", "update"),
			handler.Update,
		)
		departments.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "department", "update"),
			handler.Delete,
		)
	}
}
