package domain

// Role is the access level the upstream API reports for a principal.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
)

// Principal is the authenticated identity resolved from the upstream "who am I" endpoint.
type Principal struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

// IsStaff reports whether the principal may operate staff screens (orders board, menu management).
func (p Principal) IsStaff() bool {
	return p.Role == RoleAdmin || p.Role == RoleOwner
}

// Is reports whether the principal holds any of the given roles.
func (p Principal) Is(roles ...Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// Valid reports whether the role is one the upstream is known to issue.
// Unknown roles are treated as plain users, never as staff.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin || r == RoleOwner
}
