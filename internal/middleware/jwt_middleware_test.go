package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/brijnamkeen/store_api/internal/models"
	"github.com/brijnamkeen/store_api/internal/utils"
)

const testSecret = "jwt_middleware_test_secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(t *testing.T, requireAdmin bool) *gin.Engine {
	t.Helper()
	mw := NewJWTMiddleware(utils.NewJWTManager(testSecret))
	router := gin.New()
	handlers := []gin.HandlerFunc{mw.Handle()}
	if requireAdmin {
		handlers = append(handlers, mw.RequireAdmin())
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(200, gin.H{"user_id": c.GetInt("user_id"), "role": c.GetString("role")})
	})
	router.GET("/protected", handlers...)
	return router
}

func TestJWTMiddlewareMissingToken(t *testing.T) {
	router := protectedRouter(t, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "AUTH_REQUIRED") {
		t.Errorf("body = %s, want AUTH_REQUIRED", w.Body.String())
	}
}

func TestJWTMiddlewareBearerToken(t *testing.T) {
	router := protectedRouter(t, false)
	token, err := utils.NewJWTManager(testSecret).Generate(7, "a@b.com", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"user_id":7`) {
		t.Errorf("body = %s, want user_id 7", w.Body.String())
	}
}

func TestJWTMiddlewareCookieToken(t *testing.T) {
	router := protectedRouter(t, false)
	token, err := utils.NewJWTManager(testSecret).Generate(7, "a@b.com", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestJWTMiddlewareHeaderBeatsCookie(t *testing.T) {
	router := protectedRouter(t, false)
	m := utils.NewJWTManager(testSecret)
	headerToken, err := m.Generate(1, "header@b.com", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	cookieToken, err := m.Generate(2, "cookie@b.com", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+headerToken)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: cookieToken})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"user_id":1`) {
		t.Errorf("body = %s, want header identity (user_id 1)", w.Body.String())
	}
}

func TestJWTMiddlewareInvalidToken(t *testing.T) {
	router := protectedRouter(t, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "INVALID_TOKEN") {
		t.Errorf("body = %s, want INVALID_TOKEN", w.Body.String())
	}
}

func expiredToken(t *testing.T) string {
	t.Helper()
	iat := time.Now().Add(-48 * time.Hour)
	claims := &utils.Claims{
		UserID: 7,
		Email:  "a@b.com",
		Role:   models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(iat.Add(utils.SessionTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestJWTMiddlewareExpiredToken(t *testing.T) {
	router := protectedRouter(t, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+expiredToken(t))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "TOKEN_EXPIRED") {
		t.Errorf("body = %s, want TOKEN_EXPIRED", w.Body.String())
	}
}

func TestOptionalAllowsAnonymous(t *testing.T) {
	mw := NewJWTMiddleware(utils.NewJWTManager(testSecret))
	router := gin.New()
	router.GET("/open", mw.Optional(), func(c *gin.Context) {
		_, authed := c.Get("user_id")
		c.JSON(200, gin.H{"authenticated": authed})
	})

	// No token at all still reaches the handler.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"authenticated":false`) {
		t.Errorf("body = %s, want anonymous", w.Body.String())
	}

	// A valid token attaches the identity.
	token, err := utils.NewJWTManager(testSecret).Generate(7, "a@b.com", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), `"authenticated":true`) {
		t.Errorf("body = %s, want authenticated", w.Body.String())
	}
}

func TestRequireAdminRejectsNonAdmin(t *testing.T) {
	router := protectedRouter(t, true)
	token, err := utils.NewJWTManager(testSecret).Generate(7, "a@b.com", "user")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ACCESS_DENIED") {
		t.Errorf("body = %s, want ACCESS_DENIED", w.Body.String())
	}
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	router := protectedRouter(t, true)
	token, err := utils.NewJWTManager(testSecret).Generate(7, "a@b.com", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
}
