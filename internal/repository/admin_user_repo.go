package repository

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/brijnamkeen/store_api/internal/models"
)

// AdminUserRepository handles data access for admin accounts.
type AdminUserRepository struct {
	db *sqlx.DB
}

// NewAdminUserRepository creates a new AdminUserRepository.
func NewAdminUserRepository(db *sqlx.DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

// GetByEmail returns the account with the given email, case-insensitively.
func (r *AdminUserRepository) GetByEmail(email string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.db.Get(&user, `
		SELECT id, email, password_hash, name, role, is_active,
		       failed_attempts, lock_until, last_login_at, created_at, updated_at
		FROM admin_users
		WHERE LOWER(email) = LOWER($1)
	`, email)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID returns the account with the given id.
func (r *AdminUserRepository) GetByID(id int) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.db.Get(&user, `
		SELECT id, email, password_hash, name, role, is_active,
		       failed_attempts, lock_until, last_login_at, created_at, updated_at
		FROM admin_users
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new admin account.
func (r *AdminUserRepository) Create(user *models.AdminUser) error {
	query := `
		INSERT INTO admin_users (email, password_hash, name, role, is_active)
		VALUES (LOWER($1), $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(query, user.Email, user.PasswordHash, user.Name, user.Role, user.IsActive).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

// UpdateLoginState persists the outcome of a login attempt: the failed
// attempt counter, the lock expiry, and (on success) the last-login time.
// Plain read-then-write; concurrent attempts on one account can race on the
// counter, which the login flow tolerates.
func (r *AdminUserRepository) UpdateLoginState(id, failedAttempts int, lockUntil, lastLogin *time.Time) error {
	query := `
		UPDATE admin_users
		SET failed_attempts = $2,
		    lock_until = $3,
		    last_login_at = COALESCE($4, last_login_at),
		    updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(query, id, failedAttempts, lockUntil, lastLogin)
	return err
}
