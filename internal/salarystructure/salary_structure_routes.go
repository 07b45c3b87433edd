package salarystructure

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
	structures := r.Group("/salary-structures")
	structures.Use(middleware.AuthMiddleware())
	{
		structures.GET("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "salary_structure", "read"),
			handler.GetAllStructures,
		)
		structures.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "salary_structure", "read"),
			handler.GetStructureByID,
		)
		structures.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "salary_structure", "update"),
			handler.CreateStructure,
		)
		structures.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "salary_structure", "update"),
			handler.UpdateStructure,
		)
		structures.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "salary_structure", "update"),
			handler.DeleteStructure,
		)
	}

	assignments := r.Group("/salary-structure-assignments")
	assignments.Use(middleware.AuthMiddleware())
	{
		assignments.GET("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "salary_structure", "read"),
			handler.GetAllAssignments,
		)
		assignments.GET("/resolve",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "salary_structure", "read"),
			handler.Resolve,
		)
		assignments.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "salary_structure", "read"),
			handler.GetAssignmentByID,
		)
		assignments.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "salary_structure", "update"),
			handler.CreateAssignment,
		)
		assignments.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "salary_structure", "update"),
			handler.UpdateAssignment,
		)
		assignments.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "salary_structure", "update"),
			handler.DeactivateAssignment,
		)
	}
}
