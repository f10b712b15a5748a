package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/brijnamkeen/store_api/internal/models"
	"github.com/brijnamkeen/store_api/internal/utils"
)

// TokenCookieName is the cookie carrying the session token, mirrored by the
// Authorization header. The header takes precedence when both are present.
const TokenCookieName = "token"

// JWTMiddleware authenticates admin requests via bearer token or cookie.
type JWTMiddleware struct {
	jwt *utils.JWTManager
}

// NewJWTMiddleware constructs a JWTMiddleware around a token manager.
func NewJWTMiddleware(jwt *utils.JWTManager) *JWTMiddleware {
	return &JWTMiddleware{jwt: jwt}
}

// extractToken pulls the session token from the Authorization header, falling
// back to the cookie.
func extractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			return token
		}
	}
	if token, err := c.Cookie(TokenCookieName); err == nil {
		return token
	}
	return ""
}

// Handle returns a Gin middleware that requires a valid session token and
// attaches the decoded identity to the request context.
func (m *JWTMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			utils.Error(c, 401, "AUTH_REQUIRED", "No authentication token provided")
			c.Abort()
			return
		}

		claims, err := m.jwt.Validate(token)
		if err != nil {
			if errors.Is(err, utils.ErrTokenExpired) {
				utils.Error(c, 401, "TOKEN_EXPIRED", "Your session has expired. Please login again.")
			} else {
				utils.Error(c, 401, "INVALID_TOKEN", "Authentication token is invalid")
			}
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// Optional returns a Gin middleware that attaches the identity when a valid
// token is present and silently proceeds anonymous otherwise.
func (m *JWTMiddleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if claims, err := m.jwt.Validate(token); err == nil {
				c.Set("user_id", claims.UserID)
				c.Set("email", claims.Email)
				c.Set("role", claims.Role)
			}
		}
		c.Next()
	}
}

// RequireAdmin returns a Gin middleware enforcing the admin role. Must run
// after Handle.
func (m *JWTMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			utils.Error(c, 401, "AUTH_REQUIRED", "Please login first")
			c.Abort()
			return
		}
		if role != models.RoleAdmin {
			utils.Error(c, 403, "ACCESS_DENIED", "Admin privileges required")
			c.Abort()
			return
		}
		c.Next()
	}
}
