package entity

// Principal is the identity attached to an authenticated request
type Principal struct {
	UserID string
	Email  string
	Role   Role
}

// HasAnyRole reports whether the principal's role is in the allow-list
func (p Principal) HasAnyRole(allowed ...Role) bool {
	for _, role := range allowed {
		if p.Role == role {
			return true
		}
	}
	return false
}
