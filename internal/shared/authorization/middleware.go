package authorization

import (
	"github.com/gin-gonic/gin"
)

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString("user_role")
		if userRole != string(RoleAdmin) {
			c.JSON(403, gin.H{
				"error": "admin access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := ParseUserRole(c.GetString("user_role"))
		if !userRole.IsStaff() {
			c.JSON(403, gin.H{
				"error": "agent or admin access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

type OwnedResource interface {
	GetOwnerID() uint
}

func CanAccessResource(userID uint, userRole UserRole, resource OwnedResource) bool {
	if userRole.IsStaff() {
		return true
	}
	return userID == resource.GetOwnerID()
}

func CanAccessResourceByOwnerID(userID uint, userRole UserRole, resourceOwnerID uint) bool {
	if userRole.IsStaff() {
		return true
	}
	return userID == resourceOwnerID
}
