package service

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/brijnamkeen/store_api/internal/models"
	"github.com/brijnamkeen/store_api/internal/utils"
)

// fakeAdminStore is an in-memory AdminUserStore.
type fakeAdminStore struct {
	users   map[string]*models.AdminUser
	nextID  int
	updates int
}

func newFakeAdminStore(users ...*models.AdminUser) *fakeAdminStore {
	s := &fakeAdminStore{users: make(map[string]*models.AdminUser), nextID: 1}
	for _, u := range users {
		if u.ID == 0 {
			u.ID = s.nextID
		}
		s.users[u.Email] = u
		if u.ID >= s.nextID {
			s.nextID = u.ID + 1
		}
	}
	return s
}

func (s *fakeAdminStore) GetByEmail(email string) (*models.AdminUser, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (s *fakeAdminStore) GetByID(id int) (*models.AdminUser, error) {
	for _, u := range s.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeAdminStore) Create(user *models.AdminUser) error {
	user.ID = s.nextID
	s.nextID++
	copied := *user
	s.users[user.Email] = &copied
	return nil
}

func (s *fakeAdminStore) UpdateLoginState(id, failedAttempts int, lockUntil, lastLogin *time.Time) error {
	s.updates++
	for _, u := range s.users {
		if u.ID == id {
			u.FailedAttempts = failedAttempts
			u.LockUntil = lockUntil
			if lastLogin != nil {
				u.LastLoginAt = lastLogin
			}
			return nil
		}
	}
	return sql.ErrNoRows
}

// hashPassword uses the minimum cost to keep tests fast; verification does
// not depend on the cost the hash was created with.
func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hash)
}

func testAuthService(t *testing.T, users ...*models.AdminUser) (*AdminAuthService, *fakeAdminStore) {
	t.Helper()
	store := newFakeAdminStore(users...)
	return NewAdminAuthService(store, utils.NewJWTManager("auth_service_test_secret")), store
}

func TestLoginSuccess(t *testing.T) {
	svc, store := testAuthService(t, &models.AdminUser{
		Email:        "admin@example.com",
		PasswordHash: hashPassword(t, "correct-horse"),
		Role:         models.RoleAdmin,
		IsActive:     true,
	})

	token, user, err := svc.Login("admin@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Error("token is empty")
	}
	if user.LastLoginAt == nil {
		t.Error("LastLoginAt not set")
	}

	stored, _ := store.GetByEmail("admin@example.com")
	if stored.FailedAttempts != 0 || stored.LockUntil != nil {
		t.Errorf("stored state = attempts %d, lock %v; want reset", stored.FailedAttempts, stored.LockUntil)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := testAuthService(t)

	_, _, err := svc.Login("nobody@example.com", "whatever")
	if !errors.Is(err, utils.ErrInvalidCredentials) {
		t.Errorf("Login unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginWrongPasswordCountsAttempt(t *testing.T) {
	svc, store := testAuthService(t, &models.AdminUser{
		Email:        "admin@example.com",
		PasswordHash: hashPassword(t, "correct-horse"),
		IsActive:     true,
	})

	_, _, err := svc.Login("admin@example.com", "wrong")
	if !errors.Is(err, utils.ErrInvalidCredentials) {
		t.Fatalf("Login wrong password: err = %v, want ErrInvalidCredentials", err)
	}

	stored, _ := store.GetByEmail("admin@example.com")
	if stored.FailedAttempts != 1 {
		t.Errorf("FailedAttempts = %d, want 1", stored.FailedAttempts)
	}
}

func TestLoginFifthFailureLocksAccount(t *testing.T) {
	svc, store := testAuthService(t, &models.AdminUser{
		Email:          "admin@example.com",
		PasswordHash:   hashPassword(t, "correct-horse"),
		IsActive:       true,
		FailedAttempts: 4,
	})

	_, _, err := svc.Login("admin@example.com", "wrong")
	if !errors.Is(err, utils.ErrInvalidCredentials) {
		t.Fatalf("fifth failure: err = %v, want ErrInvalidCredentials", err)
	}

	stored, _ := store.GetByEmail("admin@example.com")
	if stored.LockUntil == nil {
		t.Fatal("LockUntil not set after fifth failure")
	}

	// The account is now locked; even the right password is rejected.
	_, _, err = svc.Login("admin@example.com", "correct-horse")
	var locked *AccountLockedError
	if !errors.As(err, &locked) {
		t.Fatalf("locked login: err = %v, want AccountLockedError", err)
	}
	if locked.RetryAfterMinutes < 1 || locked.RetryAfterMinutes > 15 {
		t.Errorf("RetryAfterMinutes = %d, want within (0, 15]", locked.RetryAfterMinutes)
	}
	// The locked attempt mutates nothing, so only the fifth failure wrote.
	if store.updates != 1 {
		t.Errorf("login state writes = %d, want 1", store.updates)
	}
}

func TestLoginLockedBeatsDisabled(t *testing.T) {
	until := time.Now().Add(10 * time.Minute)
	svc, _ := testAuthService(t, &models.AdminUser{
		Email:          "admin@example.com",
		PasswordHash:   hashPassword(t, "correct-horse"),
		IsActive:       false,
		FailedAttempts: 5,
		LockUntil:      &until,
	})

	_, _, err := svc.Login("admin@example.com", "correct-horse")
	var locked *AccountLockedError
	if !errors.As(err, &locked) {
		t.Errorf("err = %v, want AccountLockedError before the disabled check", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, _ := testAuthService(t, &models.AdminUser{
		Email:        "admin@example.com",
		PasswordHash: hashPassword(t, "correct-horse"),
		IsActive:     false,
	})

	_, _, err := svc.Login("admin@example.com", "correct-horse")
	if !errors.Is(err, utils.ErrAccountDisabled) {
		t.Errorf("err = %v, want ErrAccountDisabled", err)
	}
}

func TestLoginExpiredLockAllowsRetry(t *testing.T) {
	until := time.Now().Add(-time.Minute)
	svc, store := testAuthService(t, &models.AdminUser{
		Email:          "admin@example.com",
		PasswordHash:   hashPassword(t, "correct-horse"),
		IsActive:       true,
		FailedAttempts: 5,
		LockUntil:      &until,
	})

	token, _, err := svc.Login("admin@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login after lock expiry: %v", err)
	}
	if token == "" {
		t.Error("token is empty")
	}

	stored, _ := store.GetByEmail("admin@example.com")
	if stored.FailedAttempts != 0 || stored.LockUntil != nil {
		t.Errorf("stored state not reset: attempts %d, lock %v", stored.FailedAttempts, stored.LockUntil)
	}
}

func TestEnsureBootstrapAdmin(t *testing.T) {
	svc, store := testAuthService(t)

	if err := svc.EnsureBootstrapAdmin("boot@example.com", "initial-password"); err != nil {
		t.Fatalf("EnsureBootstrapAdmin: %v", err)
	}
	created, err := store.GetByEmail("boot@example.com")
	if err != nil {
		t.Fatalf("bootstrap admin not created: %v", err)
	}
	if created.Role != models.RoleAdmin || !created.IsActive {
		t.Errorf("created = %+v, want active admin", created)
	}

	// Second call is a no-op.
	if err := svc.EnsureBootstrapAdmin("boot@example.com", "other-password"); err != nil {
		t.Fatalf("EnsureBootstrapAdmin (existing): %v", err)
	}
	again, _ := store.GetByEmail("boot@example.com")
	if again.PasswordHash != created.PasswordHash {
		t.Error("existing bootstrap admin was overwritten")
	}
}
