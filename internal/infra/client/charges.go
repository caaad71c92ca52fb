package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/boddenberg/bankup-app-go/internal/domain"
)

// ============================================================
// /payments: charges
// ============================================================

// ListCharges returns the account charges, only the payer's when payerID > 0.
func (c *Client) ListCharges(ctx context.Context, payerID int64) ([]domain.Charge, error) {
	path := "/payments"
	if payerID > 0 {
		path = fmt.Sprintf("/payments?payer_id=%d", payerID)
	}

	var out []domain.Charge
	err := c.do(ctx, call{
		op:       "ListCharges",
		method:   http.MethodGet,
		path:     path,
		out:      &out,
		auth:     authSession,
		fallback: "Erro ao carregar as cobranças.",
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetCharge returns one charge.
func (c *Client) GetCharge(ctx context.Context, id int64) (*domain.Charge, error) {
	var out domain.Charge
	err := c.do(ctx, call{
		op:       "GetCharge",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/payments/%d", id),
		out:      &out,
		auth:     authSession,
		fallback: "Cobrança não encontrada.",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCharge issues a charge to a payer.
func (c *Client) CreateCharge(ctx context.Context, in *domain.ChargeInput) (*domain.Charge, error) {
	var out domain.Charge
	err := c.do(ctx, call{
		op:       "CreateCharge",
		method:   http.MethodPost,
		path:     "/payments",
		body:     in,
		out:      &out,
		auth:     authSession,
		fallback: "Erro ao criar a cobrança.",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCharge edits a charge.
func (c *Client) UpdateCharge(ctx context.Context, id int64, in *domain.ChargeInput) (*domain.Charge, error) {
	return c.patchCharge(ctx, "UpdateCharge", id, in)
}

// SetChargeStatus changes only the status, e.g. marking a charge paid.
func (c *Client) SetChargeStatus(ctx context.Context, id int64, status domain.ChargeStatus) (*domain.Charge, error) {
	return c.patchCharge(ctx, "SetChargeStatus", id, &domain.ChargeStatusInput{Status: status})
}

func (c *Client) patchCharge(ctx context.Context, op string, id int64, body any) (*domain.Charge, error) {
	var out domain.Charge
	err := c.do(ctx, call{
		op:       op,
		method:   http.MethodPatch,
		path:     fmt.Sprintf("/payments/%d", id),
		body:     body,
		out:      &out,
		auth:     authSession,
		fallback: "Erro ao atualizar a cobrança.",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCharge removes a charge.
func (c *Client) DeleteCharge(ctx context.Context, id int64) error {
	return c.do(ctx, call{
		op:       "DeleteCharge",
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/payments/%d", id),
		auth:     authSession,
		fallback: "Erro ao excluir a cobrança.",
	})
}

// ListNotifications returns the notifications of the account.
func (c *Client) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	var out []domain.Notification
	err := c.do(ctx, call{
		op:       "ListNotifications",
		method:   http.MethodGet,
		path:     "/notifications",
		out:      &out,
		auth:     authSession,
		fallback: "Erro ao carregar as notificações.",
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
