package model

import (
	"strings"
	"time"
)

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleBoth   = "both"
)

// SellerRoles are the roles allowed to view received orders. "farmer" is a
// legacy alias for "seller" still present in accounts created by old clients.
var SellerRoles = []string{RoleSeller, "farmer", RoleBoth}

// User represents a registered account
type User struct {
	ID               int       `json:"id"`
	Username         string    `json:"username"`
	PasswordHash     string    `json:"-"` // Do not expose password hash in JSON responses
	Role             string    `json:"role"`
	SecurityQuestion string    `json:"-"`
	SecurityAnswer   string    `json:"-"`
	Email            string    `json:"email,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// NormalizeRole lower-cases a role for comparison stability
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// IsValidRole reports whether a signup role is one of the allowed values
func IsValidRole(role string) bool {
	switch NormalizeRole(role) {
	case RoleBuyer, RoleSeller, RoleBoth:
		return true
	}
	return false
}

// SignupRequest is the payload for POST /signup
type SignupRequest struct {
	Username         string `json:"username" binding:"required"`
	Password         string `json:"password" binding:"required,min=6"`
	Role             string `json:"role" binding:"required"`
	SecurityQuestion string `json:"securityQuestion" binding:"required"`
	SecurityAnswer   string `json:"securityAnswer" binding:"required"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
}

// LoginRequest is the payload for POST /login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RecoverPasswordRequest is the payload for POST /recover-password
type RecoverPasswordRequest struct {
	Username       string `json:"username" binding:"required"`
	SecurityAnswer string `json:"securityAnswer" binding:"required"`
	NewPassword    string `json:"newPassword" binding:"required,min=6"`
}
