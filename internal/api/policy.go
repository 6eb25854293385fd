package api

import "github.com/gin-gonic/gin"

// canActFor is the single ownership policy for wallet and order operations:
// an actor may act on their own resources, an admin on anyone's. Every
// handler that takes a target user id consults this instead of re-deriving
// the check.
func canActFor(c *gin.Context, ownerID uint) bool {
	actorID, exists := c.Get("userID")
	if !exists {
		return false
	}
	if id, ok := actorID.(uint); ok && id == ownerID {
		return true
	}
	role, _ := c.Get("userRole")
	r, _ := role.(string)
	return r == "admin"
}
