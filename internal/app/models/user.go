package models

import (
	"time"
)

// Role is the portal role of a user account
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleCompany Role = "company"
)

// Roles lists every portal role.
var Roles = []Role{RoleStudent, RoleFaculty, RoleCompany}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleCompany:
		return true
	}
	return false
}

// HomePath is the landing route of the role's navigation shell.
func (r Role) HomePath() string {
	if r == RoleStudent {
		return "/"
	}
	return "/" + string(r)
}

// User defines the user model based on the 'users' table
type User struct {
	ID               int64      `json:"id" db:"id" example:"1"`
	Email            string     `json:"email" db:"email" example:"student@college.edu"`
	PasswordHash     string     `json:"-" db:"password_hash"`
	Name             string     `json:"name" db:"name" example:"Asha Patel"`
	Role             Role       `json:"role" db:"role" example:"student"`
	ProfileCompleted bool       `json:"profileCompleted" db:"profile_completed"`
	IsActive         bool       `json:"isActive" db:"is_active"`
	LastLoginAt      *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`
}

// OTPChallenge is a pending signup verification code
type OTPChallenge struct {
	Email     string    `db:"email"`
	CodeHash  string    `db:"code_hash"`
	ExpiresAt time.Time `db:"expires_at"`
	Attempts  int       `db:"attempts"`
	CreatedAt time.Time `db:"created_at"`
}

// PasswordResetToken is a single-use password reset grant
type PasswordResetToken struct {
	Token     string     `db:"token"`
	UserID    int64      `db:"user_id"`
	ExpiresAt time.Time  `db:"expires_at"`
	UsedAt    *time.Time `db:"used_at"`
	CreatedAt time.Time  `db:"created_at"`
}
