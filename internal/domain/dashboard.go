package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================
// Dashboard & notifications
// ============================================================

// StatusTotal is the count and sum of charges in one status.
type StatusTotal struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// MonthSummary sums charge amounts of one month (by due date) per status.
type MonthSummary struct {
	Month    string          `json:"month"` // YYYY-MM
	Received decimal.Decimal `json:"received"`
	Pending  decimal.Decimal `json:"pending"`
	Overdue  decimal.Decimal `json:"overdue"`
}

// Total is the sum of every status in the month.
func (m MonthSummary) Total() decimal.Decimal {
	return m.Received.Add(m.Pending).Add(m.Overdue)
}

// Dashboard is the home screen aggregate.
type Dashboard struct {
	Totals     map[ChargeStatus]StatusTotal `json:"totals"`
	Months     []MonthSummary               `json:"months"`
	PayerCount int                          `json:"payer_count"`
	Upcoming   []Charge                     `json:"upcoming"`
	Overdue    []Charge                     `json:"overdue"`
	Generated  time.Time                    `json:"generated_at"`
}

// PayerMonth groups one payer's charges of a month, newest month first.
type PayerMonth struct {
	Month   string          `json:"month"`
	Total   decimal.Decimal `json:"total"`
	Charges []Charge        `json:"charges"`
}

// PayerHistory is the "outras transferências" view of a payer.
type PayerHistory struct {
	Payer  *Payer       `json:"payer"`
	Months []PayerMonth `json:"months"`
}

// NotificationKind identifies what generated a notification.
type NotificationKind string

const (
	NotificationChargeCreated NotificationKind = "charge_created"
	NotificationChargePaid    NotificationKind = "charge_paid"
	NotificationReminder      NotificationKind = "reminder"
)

// Notification is an item of the notifications screen.
type Notification struct {
	ID        int64            `json:"id"`
	Message   string           `json:"message"`
	Kind      NotificationKind `json:"kind"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
