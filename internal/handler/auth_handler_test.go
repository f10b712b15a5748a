package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/brijnamkeen/store_api/internal/middleware"
	"github.com/brijnamkeen/store_api/internal/models"
	"github.com/brijnamkeen/store_api/internal/service"
	"github.com/brijnamkeen/store_api/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAdminStore backs the auth service with a single in-memory account.
type fakeAdminStore struct {
	user *models.AdminUser
}

func (s *fakeAdminStore) GetByEmail(email string) (*models.AdminUser, error) {
	if s.user == nil || s.user.Email != email {
		return nil, sql.ErrNoRows
	}
	copied := *s.user
	return &copied, nil
}

func (s *fakeAdminStore) GetByID(id int) (*models.AdminUser, error) {
	if s.user == nil || s.user.ID != id {
		return nil, sql.ErrNoRows
	}
	copied := *s.user
	return &copied, nil
}

func (s *fakeAdminStore) Create(user *models.AdminUser) error {
	user.ID = 1
	copied := *user
	s.user = &copied
	return nil
}

func (s *fakeAdminStore) UpdateLoginState(id, failedAttempts int, lockUntil, lastLogin *time.Time) error {
	if s.user == nil || s.user.ID != id {
		return sql.ErrNoRows
	}
	s.user.FailedAttempts = failedAttempts
	s.user.LockUntil = lockUntil
	if lastLogin != nil {
		s.user.LastLoginAt = lastLogin
	}
	return nil
}

func loginRouter(t *testing.T, user *models.AdminUser) (*gin.Engine, *fakeAdminStore) {
	t.Helper()
	store := &fakeAdminStore{user: user}
	authSvc := service.NewAdminAuthService(store, utils.NewJWTManager("auth_handler_test_secret"))
	h := NewAuthHandler(authSvc, false)

	router := gin.New()
	router.POST("/api/auth/login", h.Login)
	router.POST("/api/auth/logout", h.Logout)
	return router, store
}

func testAdmin(t *testing.T, password string) *models.AdminUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return &models.AdminUser{
		ID:           1,
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
}

func postLogin(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestLoginHandlerSuccessSetsCookie(t *testing.T) {
	router, _ := loginRouter(t, testAdmin(t, "correct-horse"))

	w := postLogin(router, `{"email":"admin@example.com","password":"correct-horse"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"token"`) {
		t.Errorf("body = %s, want a token", w.Body.String())
	}

	var found *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.TokenCookieName {
			found = cookie
		}
	}
	if found == nil {
		t.Fatal("token cookie not set")
	}
	if !found.HttpOnly {
		t.Error("token cookie is not http-only")
	}
	if found.MaxAge != cookieMaxAge {
		t.Errorf("cookie MaxAge = %d, want %d", found.MaxAge, cookieMaxAge)
	}
}

func TestLoginHandlerWrongPassword(t *testing.T) {
	router, _ := loginRouter(t, testAdmin(t, "correct-horse"))

	w := postLogin(router, `{"email":"admin@example.com","password":"wrong"}`)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Email or password is incorrect") {
		t.Errorf("body = %s, want the generic credentials message", w.Body.String())
	}
}

func TestLoginHandlerUnknownEmailSameMessage(t *testing.T) {
	router, _ := loginRouter(t, testAdmin(t, "correct-horse"))

	w := postLogin(router, `{"email":"nobody@example.com","password":"whatever"}`)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	// Unknown email and wrong password are deliberately indistinguishable.
	if !strings.Contains(w.Body.String(), "Email or password is incorrect") {
		t.Errorf("body = %s, want the generic credentials message", w.Body.String())
	}
}

func TestLoginHandlerLockedAccount(t *testing.T) {
	admin := testAdmin(t, "correct-horse")
	until := time.Now().Add(12 * time.Minute)
	admin.FailedAttempts = 5
	admin.LockUntil = &until
	router, _ := loginRouter(t, admin)

	w := postLogin(router, `{"email":"admin@example.com","password":"correct-horse"}`)

	if w.Code != http.StatusLocked {
		t.Fatalf("status = %d, want 423", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ACCOUNT_LOCKED") {
		t.Errorf("body = %s, want ACCOUNT_LOCKED", w.Body.String())
	}
}

func TestLoginHandlerDisabledAccount(t *testing.T) {
	admin := testAdmin(t, "correct-horse")
	admin.IsActive = false
	router, _ := loginRouter(t, admin)

	w := postLogin(router, `{"email":"admin@example.com","password":"correct-horse"}`)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ACCOUNT_DISABLED") {
		t.Errorf("body = %s, want ACCOUNT_DISABLED", w.Body.String())
	}
}

func TestLoginHandlerMalformedBody(t *testing.T) {
	router, _ := loginRouter(t, testAdmin(t, "correct-horse"))

	w := postLogin(router, `{"email":"not-an-email"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	router, _ := loginRouter(t, testAdmin(t, "correct-horse"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.TokenCookieName && cookie.MaxAge >= 0 {
			t.Errorf("cookie MaxAge = %d, want negative (deleted)", cookie.MaxAge)
		}
	}
}
