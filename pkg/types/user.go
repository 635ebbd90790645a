package types

// User is an account keyed by usersign. Password holds the stored
// credential hash; this package treats it as opaque.
type User struct {
	Usersign string   `json:"usersign"`
	Note     string   `json:"note,omitempty"`
	Password string   `json:"password,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

// NewUser returns a user with the given usersign and no roles.
func NewUser(usersign string) *User {
	return &User{Usersign: usersign}
}

// AddRole adds a role to the user if not already present.
func (u *User) AddRole(role string) {
	if !u.HasRole(role) {
		u.Roles = append(u.Roles, role)
	}
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
