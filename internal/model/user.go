package model

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleComplainer Role = "complainer"
	RoleApprover   Role = "approver"
	RoleAdmin      Role = "admin"
)

// ParseRole accepts the exact lower-case role names, matching the request
// validation and the users.role CHECK constraint.
func ParseRole(raw string) (Role, error) {
	role := Role(raw)
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", raw)
	}
	return role, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleComplainer, RoleApprover, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsStaff reports whether the role can only be granted by an admin.
func (r Role) IsStaff() bool {
	switch r {
	case RoleApprover, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        *string   `json:"phone,omitempty"`
	Role         Role      `json:"role"`
	Certificate  *string   `json:"certificate,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type TokenClaims struct {
	UserID    int64
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type TokenResponse struct {
	Token string `json:"token"`
}
