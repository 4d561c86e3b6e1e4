package auth

// Package auth contains domain-level types for the account session.
// It is pure and free of transport/adapter concerns.

// Role represents the account's authorization role as reported by the
// remote account service. Keep string form for easy persistence.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// Profile is the remote account service's view of the authenticated user.
// JSON tags match the wire contract exactly.
type Profile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	Role          Role   `json:"role"`
}

// Session pairs the opaque bearer token with the user profile. A session is
// either fully absent (zero value) or carries at least a profile; token and
// profile are replaced together, never piecewise. A registration response
// carries no token, so a present session may have an empty Token.
type Session struct {
	Token   string
	Profile *Profile
}

// Present reports whether the session carries an authenticated user.
func (s Session) Present() bool { return s.Profile != nil }

// Empty reports whether the session is the logged-out zero value.
func (s Session) Empty() bool { return s.Token == "" && s.Profile == nil }

// IsAdmin returns true if the session profile carries the admin role.
func (s Session) IsAdmin() bool { return s.Profile != nil && s.Profile.Role == RoleAdmin }
