package model

import (
	"strings"

	domainErrors "github.com/polkiloo/invoicebox/internal/domain/errors"
)

// Role decides which invoice operations a user may request.
type Role string

const (
	RoleProvider  Role = "provider"
	RolePurchaser Role = "purchaser"
)

// ParseRole validates a role string coming from forms or API payloads.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.TrimSpace(raw)) {
	case RoleProvider:
		return RoleProvider, nil
	case RolePurchaser:
		return RolePurchaser, nil
	default:
		return "", domainErrors.ErrInvalidRole
	}
}

// User is the identity kept alongside the auth token.
type User struct {
	ID       int64  `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username"`
	Role     Role   `json:"role" yaml:"role"`
}

// Purchaser is a selectable invoice recipient returned by GET /users.
type Purchaser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
