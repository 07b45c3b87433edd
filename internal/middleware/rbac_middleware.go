package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RBACService is a local interface so any package exposing Enforce fits.
type RBACService interface {
	Enforce(employeeID, resource, action string) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID, ok := c.Get("employee_id")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			c.Abort()
			return
		}

		allowed, err := service.Enforce(employeeID.(string), resource, action)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "forbidden",
				"message":  "You do not have permission to access this resource",
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
