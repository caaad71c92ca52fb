package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================
// Charges (Cobranças)
// ============================================================

// ChargeStatus is the payment state of a charge.
type ChargeStatus string

const (
	ChargePending ChargeStatus = "pending"
	ChargePaid    ChargeStatus = "paid"
	ChargeOverdue ChargeStatus = "overdue"
)

// Label returns the text the app shows for the status.
func (s ChargeStatus) Label() string {
	switch s {
	case ChargePaid:
		return "Pagamento Feito"
	case ChargeOverdue:
		return "Pagamento Atrasado"
	default:
		return "Aguardando Pagamento"
	}
}

// Valid reports whether s is a known status.
func (s ChargeStatus) Valid() bool {
	return s == ChargePending || s == ChargePaid || s == ChargeOverdue
}

// Charge is a billing charge sent to a payer.
type Charge struct {
	ID               int64           `json:"payment_id"`
	AccountID        int64           `json:"account_id"`
	PayerID          int64           `json:"payer_id"`
	PayerName        string          `json:"payer_name,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	Description      string          `json:"description,omitempty"`
	DueDate          string          `json:"due_date"` // YYYY-MM-DD
	PixKey           string          `json:"pix_key"`
	FineAmount       decimal.Decimal `json:"fine_amount"`
	InterestRate     decimal.Decimal `json:"interest_rate"` // percent per month
	NotifyDaysBefore int             `json:"notify_days_before"`
	Status           ChargeStatus    `json:"status"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// EffectiveStatus is the server status, except that a pending charge whose
// due date is before today counts as overdue.
func (c *Charge) EffectiveStatus(today time.Time) ChargeStatus {
	if c.Status != ChargePending {
		return c.Status
	}
	due, err := ParseISODate(c.DueDate)
	if err != nil {
		return c.Status
	}
	if due.Before(truncateDay(today)) {
		return ChargeOverdue
	}
	return ChargePending
}

// AmountDue is the amount plus, once overdue, the fine and interest
// pro rata per day late (interest rate is monthly, 30-day month).
func (c *Charge) AmountDue(today time.Time) decimal.Decimal {
	if c.EffectiveStatus(today) != ChargeOverdue {
		return c.Amount
	}
	due, err := ParseISODate(c.DueDate)
	if err != nil {
		return c.Amount
	}
	daysLate := int64(truncateDay(today).Sub(due).Hours() / 24)
	interest := c.Amount.
		Mul(c.InterestRate).
		Div(decimal.NewFromInt(100)).
		Mul(decimal.NewFromInt(daysLate)).
		Div(decimal.NewFromInt(30))
	return c.Amount.Add(c.FineAmount).Add(interest).Round(2)
}

// ChargeInput is the body for POST and PATCH /payments.
type ChargeInput struct {
	PayerID          int64           `json:"payer_id"`
	Amount           decimal.Decimal `json:"amount"`
	Description      string          `json:"description,omitempty"`
	DueDate          string          `json:"due_date"`
	PixKey           string          `json:"pix_key"`
	FineAmount       decimal.Decimal `json:"fine_amount"`
	InterestRate     decimal.Decimal `json:"interest_rate"`
	NotifyDaysBefore int             `json:"notify_days_before"`
}

// ChargeStatusInput is the body for PATCH /payments/{id} when only the status changes.
type ChargeStatusInput struct {
	Status ChargeStatus `json:"status"`
}

// ChargeForm holds charge fields as typed by the user.
type ChargeForm struct {
	PayerID          string
	Amount           string // R$ 1.200,00
	Description      string
	DueDate          string // DD/MM/YYYY
	PixKey           string
	FineAmount       string
	InterestRate     string // 2%
	NotifyDaysBefore string
}

// ToInput validates the form and converts it to the wire body.
func (f ChargeForm) ToInput() (*ChargeInput, error) {
	payerID, err := strconv.ParseInt(strings.TrimSpace(f.PayerID), 10, 64)
	if err != nil || payerID <= 0 {
		return nil, &ErrValidation{Field: "payer_id", Message: "Selecione um pagador."}
	}

	amount, err := ParseBRL(f.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, &ErrValidation{Field: "amount", Message: "Informe um valor maior que zero."}
	}

	due, err := DisplayToISO(f.DueDate)
	if err != nil {
		return nil, &ErrValidation{Field: "due_date", Message: "Data de vencimento inválida. Use DD/MM/AAAA."}
	}

	pixKey := strings.TrimSpace(f.PixKey)
	if pixKey == "" {
		return nil, &ErrValidation{Field: "pix_key", Message: "Informe a chave PIX."}
	}

	fine := decimal.Zero
	if strings.TrimSpace(f.FineAmount) != "" {
		fine, err = ParseBRL(f.FineAmount)
		if err != nil || fine.IsNegative() {
			return nil, &ErrValidation{Field: "fine_amount", Message: "Multa inválida."}
		}
	}

	interest, err := ParsePercent(f.InterestRate)
	if err != nil || interest.IsNegative() {
		return nil, &ErrValidation{Field: "interest_rate", Message: "Juros inválidos."}
	}

	notify := 0
	if v := strings.TrimSpace(f.NotifyDaysBefore); v != "" {
		notify, err = strconv.Atoi(v)
		if err != nil || notify < 0 {
			return nil, &ErrValidation{Field: "notify_days_before", Message: "Antecedência de notificação inválida."}
		}
	}

	return &ChargeInput{
		PayerID:          payerID,
		Amount:           amount,
		Description:      strings.TrimSpace(f.Description),
		DueDate:          due,
		PixKey:           pixKey,
		FineAmount:       fine,
		InterestRate:     interest,
		NotifyDaysBefore: notify,
	}, nil
}

// Validate checks a wire body, used by the sandbox server.
func (in *ChargeInput) Validate() error {
	if in.PayerID <= 0 {
		return &ErrValidation{Field: "payer_id", Message: "Selecione um pagador."}
	}
	if !in.Amount.IsPositive() {
		return &ErrValidation{Field: "amount", Message: "Informe um valor maior que zero."}
	}
	if _, err := ParseISODate(in.DueDate); err != nil {
		return &ErrValidation{Field: "due_date", Message: "Data de vencimento inválida."}
	}
	if strings.TrimSpace(in.PixKey) == "" {
		return &ErrValidation{Field: "pix_key", Message: "Informe a chave PIX."}
	}
	if in.FineAmount.IsNegative() || in.InterestRate.IsNegative() || in.NotifyDaysBefore < 0 {
		return &ErrValidation{Field: "charge", Message: "Multa, juros e antecedência não podem ser negativos."}
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
