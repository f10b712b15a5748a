package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brijnamkeen/store_api/internal/middleware"
	"github.com/brijnamkeen/store_api/internal/service"
	"github.com/brijnamkeen/store_api/internal/utils"
)

// cookieMaxAge matches the session token lifetime.
const cookieMaxAge = 24 * 60 * 60

// AuthHandler handles admin authentication endpoints.
type AuthHandler struct {
	authService *service.AdminAuthService
	// secureCookies is true in production so the token cookie is HTTPS-only.
	secureCookies bool
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AdminAuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookies: secureCookies}
}

// adminPayload shapes the account identity returned to the dashboard.
func adminPayload(id int, email, name, role string) gin.H {
	return gin.H{"id": id, "email": email, "name": name, "role": role}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	token, admin, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		var locked *service.AccountLockedError
		switch {
		case errors.As(err, &locked):
			utils.Error(c, 423, "ACCOUNT_LOCKED",
				fmt.Sprintf("Account is locked. Try again in %d minutes.", locked.RetryAfterMinutes))
		case errors.Is(err, utils.ErrAccountDisabled):
			utils.Error(c, 403, "ACCOUNT_DISABLED", "This account has been disabled")
		case errors.Is(err, utils.ErrInvalidCredentials):
			// Same message whether the email or the password was wrong.
			utils.Error(c, 401, "INVALID_CREDENTIALS", "Email or password is incorrect")
		default:
			utils.Error(c, 500, "LOGIN_FAILED", "An error occurred during login")
		}
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.TokenCookieName, token, cookieMaxAge, "/", "", h.secureCookies, true)

	utils.Success(c, 200, "Login successful", gin.H{
		"token": token,
		"admin": adminPayload(admin.ID, admin.Email, admin.Name, admin.Role),
	})
}

// Logout handles POST /api/auth/logout. Always succeeds; previously issued
// tokens remain valid until their natural expiry (no server-side denylist).
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.TokenCookieName, "", -1, "/", "", h.secureCookies, true)
	utils.Success(c, 200, "Logged out successfully", nil)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	admin, err := h.authService.GetByID(c.GetInt("user_id"))
	if err != nil {
		if errors.Is(err, utils.ErrAdminNotFound) {
			utils.Error(c, 404, "ADMIN_NOT_FOUND", "Admin not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to fetch admin info")
		return
	}
	utils.Success(c, 200, "Admin retrieved", adminPayload(admin.ID, admin.Email, admin.Name, admin.Role))
}

// Verify handles GET /api/auth/verify.
func (h *AuthHandler) Verify(c *gin.Context) {
	utils.Success(c, 200, "Token is valid", gin.H{
		"valid": true,
		"user": gin.H{
			"id":    c.GetInt("user_id"),
			"email": c.GetString("email"),
			"role":  c.GetString("role"),
		},
	})
}
