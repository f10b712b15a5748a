package models

import "time"

// Admin roles.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// AdminUser represents an admin account for the dashboard.
// FailedAttempts and LockUntil drive the login lockout policy.
type AdminUser struct {
	ID             int        `db:"id" json:"id"`
	Email          string     `db:"email" json:"email"`
	PasswordHash   string     `db:"password_hash" json:"-"`
	Name           string     `db:"name" json:"name"`
	Role           string     `db:"role" json:"role"`
	IsActive       bool       `db:"is_active" json:"isActive"`
	FailedAttempts int        `db:"failed_attempts" json:"-"`
	LockUntil      *time.Time `db:"lock_until" json:"-"`
	LastLoginAt    *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`
}
