package shopapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/techcart/storefront/internal/core/domain"
	"github.com/techcart/storefront/internal/core/port"
)

var _ port.AuthGateway = (*Client)(nil)

var ErrEmptyToken = errors.New("empty access token in response")

const (
	fallbackRegisterDetail = "registration failed"
	fallbackLoginDetail    = "login failed"
)

func (c *Client) RegisterUser(
	ctx context.Context, username, email, password string,
) error {
	const op = "Client.RegisterUser"

	form := RegisterForm{Username: username, Email: email, Password: password}
	resp, err := c.postJSON(ctx, "/auth/register", form, "")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer drainClose(resp.Body)

	if !is2xx(resp.StatusCode) {
		return fmt.Errorf("%s: %w",
			op, authError(resp, fallbackRegisterDetail))
	}
	return nil
}

// LoginUser posts the credentials form-encoded. This is the one
// endpoint that does not speak JSON on the request side.
func (c *Client) LoginUser(
	ctx context.Context, username, password string,
) (string, error) {
	const op = "Client.LoginUser"

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		c.baseURL+"/auth/login",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpCl.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer drainClose(resp.Body)

	if !is2xx(resp.StatusCode) {
		return "", fmt.Errorf("%s: %w",
			op, authError(resp, fallbackLoginDetail))
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if lr.AccessToken == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyToken)
	}

	return lr.AccessToken, nil
}

// authError prefers the server-supplied detail and falls back to a
// generic message when the body carries none.
func authError(resp *http.Response, fallback string) error {
	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err == nil && er.Detail != "" {
		return domain.AuthError{Detail: er.Detail}
	}
	return domain.AuthError{Detail: fallback}
}
