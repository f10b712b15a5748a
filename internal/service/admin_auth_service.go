package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/brijnamkeen/store_api/internal/models"
	"github.com/brijnamkeen/store_api/internal/utils"
)

// bcryptCost follows the OWASP-recommended minimum with headroom.
const bcryptCost = 12

// AdminUserStore is the persistence surface the auth service needs.
type AdminUserStore interface {
	GetByEmail(email string) (*models.AdminUser, error)
	GetByID(id int) (*models.AdminUser, error)
	Create(user *models.AdminUser) error
	UpdateLoginState(id, failedAttempts int, lockUntil, lastLogin *time.Time) error
}

// AccountLockedError reports a login attempt against a locked account with
// the remaining lock time, rounded up to whole minutes.
type AccountLockedError struct {
	RetryAfterMinutes int
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account is locked, try again in %d minutes", e.RetryAfterMinutes)
}

// AdminAuthService implements admin login with per-account lockout and
// session token issuance.
type AdminAuthService struct {
	adminRepo AdminUserStore
	jwt       *utils.JWTManager
}

// NewAdminAuthService constructs an AdminAuthService.
func NewAdminAuthService(adminRepo AdminUserStore, jwt *utils.JWTManager) *AdminAuthService {
	return &AdminAuthService{adminRepo: adminRepo, jwt: jwt}
}

// Login evaluates a login attempt. On success it returns the signed session
// token and the account. Failures: utils.ErrInvalidCredentials (unknown email
// or wrong password, deliberately indistinguishable), *AccountLockedError,
// utils.ErrAccountDisabled, or a store error.
func (s *AdminAuthService) Login(email, password string) (string, *models.AdminUser, error) {
	user, err := s.adminRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, utils.ErrInvalidCredentials
		}
		return "", nil, err
	}

	state := LockoutState{FailedAttempts: user.FailedAttempts, LockUntil: user.LockUntil}
	decision := EvaluateLogin(state, func() bool {
		return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
	}, time.Now())

	// A locked account rejects before the active check so the lock window is
	// never shortened by other account state. Nothing changed, so nothing to
	// persist.
	if decision.Outcome == OutcomeLocked {
		log.Warn().Str("email", user.Email).Int("retry_after_min", decision.RetryAfterMinutes).Msg("login attempt on locked account")
		return "", nil, &AccountLockedError{RetryAfterMinutes: decision.RetryAfterMinutes}
	}

	if !user.IsActive {
		log.Warn().Str("email", user.Email).Msg("login attempt on disabled account")
		return "", nil, utils.ErrAccountDisabled
	}

	// Persist the new lockout state before reporting the outcome.
	if err := s.adminRepo.UpdateLoginState(user.ID, decision.Next.FailedAttempts, decision.Next.LockUntil, decision.LoginAt); err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("failed to persist login state")
		return "", nil, err
	}

	if decision.Outcome == OutcomeInvalidCredentials {
		log.Warn().Str("email", user.Email).Int("failed_attempts", decision.Next.FailedAttempts).Msg("invalid password")
		return "", nil, utils.ErrInvalidCredentials
	}

	token, err := s.jwt.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}

	log.Info().Str("email", user.Email).Msg("login successful")
	user.LastLoginAt = decision.LoginAt
	return token, user, nil
}

// GetByID returns the account for an authenticated session.
func (s *AdminAuthService) GetByID(id int) (*models.AdminUser, error) {
	user, err := s.adminRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrAdminNotFound
		}
		return nil, err
	}
	return user, nil
}

// CreateAdmin provisions a new admin account with a bcrypt-hashed password.
func (s *AdminAuthService) CreateAdmin(email, password, name, role string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	user := &models.AdminUser{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         name,
		Role:         role,
		IsActive:     true,
	}

	return s.adminRepo.Create(user)
}

// EnsureBootstrapAdmin creates the initial admin account at startup when
// credentials are configured and no account with that email exists yet.
func (s *AdminAuthService) EnsureBootstrapAdmin(email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.adminRepo.GetByEmail(email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if err := s.CreateAdmin(email, password, "Admin", models.RoleAdmin); err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("bootstrap admin created")
	return nil
}
