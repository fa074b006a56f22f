package middleware

import (
	"log"
	"net/http"
	"strings"

	"book_manager/internal/repository"
	"book_manager/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	AuthUserKey   = "authUser"
	AuthRoleKey   = "authRole"
	AuthClaimsKey = "authClaims"
)

// JWTAuthMiddleware verifies the bearer token and confirms the subject still
// exists before letting the request through. A missing token is 401; an
// invalid or expired token, or a subject no longer in the users table, is 403.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: Missing token!"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: Missing token!"})
			return
		}

		claims, err := jwtUtil.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Unauthorized: Invalid token!"})
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			log.Printf("Error looking up token subject: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "An error occurred during the authorization process!"})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Unauthorized: User not found!"})
			return
		}

		// Downstream handlers read identity and role from the decoded claims,
		// not a fresh database row.
		c.Set(AuthUserKey, claims.UserID)
		c.Set(AuthRoleKey, claims.Role)
		c.Set(AuthClaimsKey, claims)

		c.Next()
	}
}
