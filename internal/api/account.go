package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/AhmaadMostafa/Talabat-FrontEnd/internal/domain"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// Login exchanges credentials for a user with a fresh token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/account/login", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates an account and returns the signed-in user.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/account/register", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser fetches the user the stored token belongs to.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/account", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Address fetches the user's saved address. The country arrives in
// display-name form.
func (c *Client) Address(ctx context.Context) (*domain.Address, error) {
	var address domain.Address
	if err := c.do(ctx, http.MethodGet, "/account/address", nil, nil, &address); err != nil {
		return nil, err
	}
	return &address, nil
}

// UpdateAddress saves the user's address. The caller supplies the country in
// display-name form.
func (c *Client) UpdateAddress(ctx context.Context, address domain.Address) error {
	return c.do(ctx, http.MethodPut, "/account/address", nil, address, nil)
}

// EmailExists is the registration pre-check.
func (c *Client) EmailExists(ctx context.Context, email string) (bool, error) {
	query := url.Values{"email": {email}}
	var exists bool
	if err := c.do(ctx, http.MethodGet, "/account/emailexists", query, nil, &exists); err != nil {
		return false, err
	}
	return exists, nil
}
