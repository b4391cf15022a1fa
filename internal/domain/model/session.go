package model

import (
	"strings"

	domainErrors "github.com/polkiloo/invoicebox/internal/domain/errors"
)

// Session pairs the API bearer token with the identity it was issued for.
// Either both are set or neither is.
type Session struct {
	Token string
	User  *User
}

// NewSession builds an authenticated session. A token without a user, or a
// user without a token, is rejected.
func NewSession(token string, user *User) (Session, error) {
	token = strings.TrimSpace(token)
	if token == "" || user == nil {
		return Session{}, domainErrors.ErrInvalidSession
	}
	u := *user
	return Session{Token: token, User: &u}, nil
}

// Authenticated reports whether the session carries credentials.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// Valid reports whether the token/user pairing invariant holds.
func (s Session) Valid() bool {
	return (s.Token == "") == (s.User == nil)
}

// Role returns the session role or an empty role for anonymous sessions.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
