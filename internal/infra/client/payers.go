package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/boddenberg/bankup-app-go/internal/domain"
)

// ============================================================
// /payers
// ============================================================

// ListPayers returns every payer of the account.
func (c *Client) ListPayers(ctx context.Context) ([]domain.Payer, error) {
	var out []domain.Payer
	err := c.do(ctx, call{
		op:       "ListPayers",
		method:   http.MethodGet,
		path:     "/payers",
		out:      &out,
		auth:     authSession,
		fallback: "Erro ao carregar os pagadores.",
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetPayer returns one payer.
func (c *Client) GetPayer(ctx context.Context, id int64) (*domain.Payer, error) {
	var out domain.Payer
	err := c.do(ctx, call{
		op:       "GetPayer",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/payers/%d", id),
		out:      &out,
		auth:     authSession,
		fallback: "Pagador não encontrado.",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePayer registers a payer.
func (c *Client) CreatePayer(ctx context.Context, in *domain.PayerInput) (*domain.Payer, error) {
	var out domain.Payer
	err := c.do(ctx, call{
		op:       "CreatePayer",
		method:   http.MethodPost,
		path:     "/payers",
		body:     in,
		out:      &out,
		auth:     authSession,
		fallback: "Erro ao cadastrar o pagador.",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePayer edits a payer.
func (c *Client) UpdatePayer(ctx context.Context, id int64, in *domain.PayerInput) (*domain.Payer, error) {
	var out domain.Payer
	err := c.do(ctx, call{
		op:       "UpdatePayer",
		method:   http.MethodPatch,
		path:     fmt.Sprintf("/payers/%d", id),
		body:     in,
		out:      &out,
		auth:     authSession,
		fallback: "Erro ao atualizar o pagador.",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePayer removes a payer.
func (c *Client) DeletePayer(ctx context.Context, id int64) error {
	return c.do(ctx, call{
		op:       "DeletePayer",
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/payers/%d", id),
		auth:     authSession,
		fallback: "Erro ao excluir o pagador.",
	})
}
