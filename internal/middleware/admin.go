package middleware

import (
	"brandloop/internal/domain"

	"github.com/gin-gonic/gin"
)

// AdminRequired restricts a route to operator accounts.
func AdminRequired() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
