package entity

import (
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
)

// Role is the closed set of user roles
type Role string

// Roles
const (
	RoleCustomer Role = "CUSTOMER"
	RoleBanker   Role = "BANKER"
	RoleAdmin    Role = "ADMIN"
)

// StaffRoles lists the roles allowed on banker endpoints
var StaffRoles = []Role{RoleBanker, RoleAdmin}

// ParseRole converts a string into a Role, case-insensitively
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleCustomer:
		return RoleCustomer, nil
	case RoleBanker:
		return RoleBanker, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidRole, s)
	}
}

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleBanker, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsStaff reports whether r may use banker functionality.
// BANKER and ADMIN share one capability.
func (r Role) IsStaff() bool {
	switch r {
	case RoleBanker, RoleAdmin:
		return true
	case RoleCustomer:
		return false
	default:
		return false
	}
}

// String implements fmt.Stringer
func (r Role) String() string {
	return string(r)
}
