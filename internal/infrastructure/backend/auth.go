package backend

import (
	"context"
	"net/http"

	"github.com/eventtune/web/internal/core/ports"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for an access token (POST /auth/login).
func (c *Client) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	var out ports.LoginResult
	err := c.do(ctx, call{
		op:       "login",
		method:   http.MethodPost,
		path:     "/auth/login",
		body:     loginRequest{Email: email, Password: password},
		out:      &out,
		fallback: "Login failed",
	})
	if err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, &APIError{Op: "login", Status: http.StatusOK, Message: "Login failed"}
	}
	return &out, nil
}

// Register creates an account (POST /auth/register).
func (c *Client) Register(ctx context.Context, input ports.RegisterInput) (*ports.AccountSummary, error) {
	var out ports.AccountSummary
	err := c.do(ctx, call{
		op:       "register",
		method:   http.MethodPost,
		path:     "/auth/register",
		body:     input,
		out:      &out,
		fallback: "Registration failed",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
