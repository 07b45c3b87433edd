package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.GetAll,
		)
		employees.GET("/options",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.GetOptions,
		)
		employees.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.GetByID,
		)
		employees.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "employee", "create"),
			handler.Create,
		)
		employees.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "employee", "update"),
			handler.Update,
		)
		employees.POST("/:id/resign",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "employee", "update"),
			handler.Resign,
		)
	}
}
