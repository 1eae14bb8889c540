package api

import (
	"context"

	"github.com/lwang/apiforge/internal/model"
)

// sessionPayload is the wire shape of the token endpoints.
type sessionPayload struct {
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	UserInfo    model.UserPayload `json:"user_info"`
}

func (p sessionPayload) normalize() model.Session {
	return model.Session{
		Token: p.AccessToken,
		User:  p.UserInfo.Normalize(),
	}
}

// Login exchanges credentials for a bearer token and the user profile.
func (c *Client) Login(ctx context.Context, username, password string) (model.Session, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}
	var p sessionPayload
	if err := c.post(ctx, "/api/auth/login", body, &p); err != nil {
		return model.Session{}, err
	}
	return p.normalize(), nil
}

// Register creates an account and returns a fresh session.
func (c *Client) Register(ctx context.Context, email, password, name string) (model.Session, error) {
	body := map[string]string{
		"email":     email,
		"password":  password,
		"full_name": name,
	}
	var p sessionPayload
	if err := c.post(ctx, "/api/auth/register", body, &p); err != nil {
		return model.Session{}, err
	}
	return p.normalize(), nil
}

// Me returns the profile of the authenticated user.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var p model.UserPayload
	if err := c.get(ctx, "/api/auth/me", &p); err != nil {
		return model.User{}, err
	}
	return p.Normalize(), nil
}
