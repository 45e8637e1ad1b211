package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/todolist/todo-client/internal/domain"
)

// Login exchanges username and password for an access token.
// The body is form-encoded as the token endpoint expects.
func (c *Client) Login(ctx context.Context, in domain.LoginRequest) (*domain.TokenResponse, error) {
	form := url.Values{}
	form.Set("username", in.Username)
	form.Set("password", in.Password)

	var out domain.TokenResponse
	err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/auth/token",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
		out:         &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account. The caller signs in separately.
func (c *Client) Register(ctx context.Context, in domain.RegisterRequest) (*domain.RegisteredUser, error) {
	body, err := jsonBody(in)
	if err != nil {
		return nil, err
	}

	var out domain.RegisteredUser
	if err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/register",
		body:   body,
		out:    &out,
	}); err != nil {
		return nil, err
	}
	return &out, nil
}
