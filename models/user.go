package models

import "time"

// Well-known authority names seeded by the migrations.
const (
	AuthorityAdmin = "ROLE_ADMIN"
	AuthorityUser  = "ROLE_USER"
)

// User is the account of a person authenticated through the OIDC provider.
// It is created or refreshed on every successful login.
type User struct {
	// ID is the internal identifier (UUID) of the user.
	ID string `json:"id"`

	// Login is the unique login, taken from the "preferred_username" claim
	// (or "sub" when the provider does not send one).
	Login string `json:"login"`

	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
	LangKey   string `json:"langKey,omitempty"`

	// Activated is always true for users coming from the identity provider.
	Activated bool `json:"activated"`

	// Authorities lists granted roles, e.g. ROLE_USER.
	Authorities []string `json:"authorities"`

	CreatedAt time.Time `json:"createdDate"`
	UpdatedAt time.Time `json:"lastModifiedDate"`
}

// HasAuthority reports whether the user was granted the given authority.
func (u User) HasAuthority(authority string) bool {
	for _, a := range u.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}
