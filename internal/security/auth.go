// Package security implements the connection authentication gate: a
// credential lookup that either admits a session or rejects it. The ledger
// never sees credentials; it only runs commands for connections the gate has
// admitted.
package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Authenticator exchanges a credential pair (or a previously issued session
// token) for an admit/reject decision.
type Authenticator struct {
	// username -> bcrypt password hash
	credentials map[string]string
	tokens      TokenManager
}

func NewAuthenticator(credentials map[string]string, tokens TokenManager) *Authenticator {
	return &Authenticator{
		credentials: credentials,
		tokens:      tokens,
	}
}

// Authenticate verifies a username/password pair and, on success, issues a
// session token the client may present on later connections.
func (a *Authenticator) Authenticate(username, password string) (string, error) {
	hash, ok := a.credentials[username]
	if !ok {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return a.tokens.GenerateSessionToken(username)
}

// ValidateSession verifies a session token and returns the username it was
// issued to.
func (a *Authenticator) ValidateSession(token string) (string, error) {
	claims, err := a.tokens.ValidateToken(token)
	if err != nil {
		return "", err
	}
	if _, ok := a.credentials[claims.Username]; !ok {
		return "", ErrInvalidCredentials
	}
	return claims.Username, nil
}
