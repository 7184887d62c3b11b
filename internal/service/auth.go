// Package service composes api calls and store operations into the
// user-facing workflows: login/register, the dashboard aggregate, fund
// transfers, and card applications. Retries are never automatic here;
// every workflow decides what a failure means for its own state.
package service

import (
	"context"
	"regexp"
	"strings"

	"netbank/internal/api"
	"netbank/internal/session"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Auth owns the login, registration, and logout flows. These are the
// only writers of the session store.
type Auth struct {
	API      *api.Client
	Sessions *session.Store
}

// Login authenticates and persists the issued session.
func (s *Auth) Login(ctx context.Context, username, password string) (session.Session, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return session.Session{}, api.Validation("please enter both username and password")
	}
	resp, err := s.API.Login(ctx, username, password)
	if err != nil {
		return session.Session{}, err
	}
	sess := session.Session{Token: resp.Token, TokenType: resp.Type, Username: resp.Username}
	if err := s.Sessions.Save(sess); err != nil {
		return session.Session{}, err
	}
	return sess, nil
}

// Logout clears the persisted session.
func (s *Auth) Logout() error {
	return s.Sessions.Clear()
}

// Register validates the form client-side and creates the user. Nothing
// reaches the network until the input passes.
func (s *Auth) Register(ctx context.Context, in api.RegisterInput, confirmPassword string) error {
	missing := in.FirstName == "" || in.LastName == "" || in.Username == "" ||
		in.Email == "" || in.PhoneNumber == "" || in.Address == "" || in.Password == ""
	if missing {
		return api.Validation("please fill all required fields")
	}
	if !emailPattern.MatchString(in.Email) {
		return api.Validation("please enter a valid email address")
	}
	if in.Password != confirmPassword {
		return api.Validation("passwords do not match")
	}
	return s.API.Register(ctx, in)
}
