package client

import (
	"context"
	"net/http"

	"github.com/boddenberg/bankup-app-go/internal/domain"
)

// GetProfile fetches the logged-in user's profile. GET /user/profile
func (c *Client) GetProfile(ctx context.Context) (*domain.User, error) {
	var out domain.User
	err := c.do(ctx, call{
		op:       "GetProfile",
		method:   http.MethodGet,
		path:     "/user/profile",
		out:      &out,
		auth:     authSession,
		fallback: "Erro ao carregar dados do perfil.",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProfile completes the profile after the first login. POST /user/profile
func (c *Client) CreateProfile(ctx context.Context, in *domain.ProfileInput) (*domain.User, error) {
	return c.writeProfile(ctx, "CreateProfile", http.MethodPost, in)
}

// UpdateProfile edits an existing profile. PATCH /user/profile
func (c *Client) UpdateProfile(ctx context.Context, in *domain.ProfileInput) (*domain.User, error) {
	return c.writeProfile(ctx, "UpdateProfile", http.MethodPatch, in)
}

func (c *Client) writeProfile(ctx context.Context, op, method string, in *domain.ProfileInput) (*domain.User, error) {
	var out domain.User
	err := c.do(ctx, call{
		op:       op,
		method:   method,
		path:     "/user/profile",
		body:     in,
		out:      &out,
		auth:     authSession,
		fallback: "Erro ao salvar os dados.",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
