// Package session defines the per-request identity context shared across
// contexts. This package is contract-only and must stay dependency-free.
package session

// Context is the identity state derived from the inbound request. A request
// always carries one: missing or invalid credentials yield the anonymous
// context rather than a rejection, so each operation decides for itself
// whether identity is required.
type Context struct {
	UserID        string
	Email         string
	Authenticated bool
}

// Anonymous is the context for requests with no verifiable identity.
func Anonymous() Context {
	return Context{}
}

// Authenticated builds the context for a verified identity.
func Authenticated(userID string, email string) Context {
	return Context{
		UserID:        userID,
		Email:         email,
		Authenticated: true,
	}
}
