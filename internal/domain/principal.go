package domain

import "errors"

// Principal is the authenticated caller of a request. Every call it makes is
// scoped to OrganizationID.
type Principal struct {
	UserID         string
	OrganizationID string
	Role           Role
}

// Role represents a caller's access level
type Role string

const (
	// RoleAdmin can manage the chart of accounts and run backfills
	RoleAdmin Role = "admin"

	// RoleOperator can post, settle and allocate
	RoleOperator Role = "operator"

	// RoleViewer can only read
	RoleViewer Role = "viewer"
)

var validRoles = map[Role]bool{
	RoleAdmin:    true,
	RoleOperator: true,
	RoleViewer:   true,
}

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return validRoles[r]
}

// Allows reports whether r grants at least min.
func (r Role) Allows(min Role) bool {
	switch min {
	case RoleAdmin:
		return r == RoleAdmin
	case RoleOperator:
		return r == RoleAdmin || r == RoleOperator
	case RoleViewer:
		return r.IsValid()
	}
	return false
}

// Authentication errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrMissingTenant    = errors.New("token carries no organization")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)
