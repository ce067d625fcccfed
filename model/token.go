package model

import "time"

// AccessToken is a bearer token issued by the authentication service.
// A token is never mutated in place; a refresh produces a new value.
type AccessToken struct {
	// AccessToken is the opaque bearer credential string.
	AccessToken string `json:"access_token"`

	// TokenType is the token type reported by the server, typically "Bearer".
	TokenType string `json:"token_type"`

	// ExpiresIn is the token lifetime in seconds as reported by the server.
	ExpiresIn int64 `json:"expires_in"`

	// RefreshToken is only present for three-legged flows.
	RefreshToken string `json:"refresh_token,omitempty"`

	// Scope is the space-separated list of scopes granted to the token.
	Scope string `json:"scope,omitempty"`

	// ExpiresAt is the absolute expiry derived from the issuance time and
	// ExpiresIn. Zero when the expiry is unknown (pre-obtained tokens).
	ExpiresAt time.Time `json:"-"`
}

// Scopes returns the granted scopes as a list.
func (t AccessToken) Scopes() []Scope {
	return SplitScopes(t.Scope)
}

// Valid reports whether the token is usable for at least the given leeway.
// Tokens with an unknown expiry are assumed valid.
func (t AccessToken) Valid(leeway time.Duration) bool {
	if t.AccessToken == "" {
		return false
	}
	if t.ExpiresAt.IsZero() {
		return true
	}
	return time.Until(t.ExpiresAt) > leeway
}

// UserProfile holds profile information of an authorizing end user,
// available in a three-legged context.
type UserProfile struct {
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	EmailID   string `json:"emailId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
