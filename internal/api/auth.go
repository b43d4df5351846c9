package api

import (
	"context"

	"rotierp/internal/apiclient"
	"rotierp/internal/model"
)

// Auth wraps the /auth endpoints
type Auth struct {
	c *apiclient.Client
}

// LoginResult is the token pair plus user returned by a successful login
type LoginResult struct {
	AccessToken  string           `json:"accessToken"`
	RefreshToken string           `json:"refreshToken"`
	User         model.UserRecord `json:"user"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
}

func (a *Auth) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := a.c.Post(ctx, "/auth/login", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *Auth) Register(ctx context.Context, req RegisterRequest) (*model.UserRecord, error) {
	var result struct {
		User model.UserRecord `json:"user"`
	}
	if err := a.c.Post(ctx, "/auth/register", req, &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

// Logout revokes the refresh token server-side. Pass the stored token so the
// server can drop it; an empty string still performs the call.
func (a *Auth) Logout(ctx context.Context, refreshToken string) error {
	body := map[string]string{"refreshToken": refreshToken}
	return a.c.Post(ctx, "/auth/logout", body, nil)
}

// Profile re-validates the session and returns the authoritative user record
func (a *Auth) Profile(ctx context.Context) (*model.UserRecord, error) {
	var result struct {
		User model.UserRecord `json:"user"`
	}
	if err := a.c.Get(ctx, "/auth/profile", nil, &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}
