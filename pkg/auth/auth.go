// Package auth normalizes the supported credential schemes behind one
// request-signing interface. net/http only understands basic auth natively;
// the OAuth2 and Kerberos authenticators bridge their libraries'
// session-level credential objects into per-request header injection so the
// rest of the client stays auth-library agnostic.
package auth

import "net/http"

// Authenticator annotates an outgoing request with credentials. It matches
// the interface the API client consumes.
//
// Implementations may cache a negotiated session credential. They are safe
// for sequential reuse; concurrent use from multiple goroutines requires
// external synchronization.
type Authenticator interface {
	Authenticate(req *http.Request) error
}

// Basic signs requests with transport-level basic credentials.
type Basic struct {
	Username string
	Password string
}

// NewBasic returns a basic-auth authenticator.
func NewBasic(username, password string) *Basic {
	return &Basic{Username: username, Password: password}
}

func (b *Basic) Authenticate(req *http.Request) error {
	req.SetBasicAuth(b.Username, b.Password)
	return nil
}
