package api

import (
	"context"
	"net/http"

	"github.com/osse101/PantryBook_Go/internal/domain"
)

// Me retrieves the authenticated user's profile
func (c *APIClient) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.getJSON(ctx, http.MethodGet, domain.PathUserMe, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SignUp creates an account and returns the issued tokens
func (c *APIClient) SignUp(ctx context.Context, req domain.SignUpRequest) (*domain.Tokens, error) {
	var env dataEnvelope[domain.Tokens]
	if err := c.getJSON(ctx, http.MethodPost, domain.PathAuthSignUp, req, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Logout revokes the given token pair
func (c *APIClient) Logout(ctx context.Context, tokens domain.Tokens) error {
	return c.getJSON(ctx, http.MethodPost, domain.PathAuthLogout, tokens, nil)
}
