package sandbox

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/boddenberg/bankup-app-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Payers: /payers
// ============================================================

func (s *Sandbox) ListPayers(ctx context.Context, accountID int64) ([]domain.Payer, error) {
	_, span := tracer.Start(ctx, "Sandbox.ListPayers")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Payer, 0)
	for _, p := range s.payers {
		if p.AccountID == accountID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Sandbox) GetPayer(ctx context.Context, accountID, id int64) (*domain.Payer, error) {
	_, span := tracer.Start(ctx, "Sandbox.GetPayer")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err := s.ownedPayer(accountID, id)
	if err != nil {
		return nil, err
	}
	out := *p
	return &out, nil
}

func (s *Sandbox) CreatePayer(ctx context.Context, accountID int64, in *domain.PayerInput) (*domain.Payer, error) {
	_, span := tracer.Start(ctx, "Sandbox.CreatePayer")
	defer span.End()

	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextPayerID++
	p := &domain.Payer{ID: s.nextPayerID, AccountID: accountID, CreatedAt: s.now()}
	applyPayer(p, in)
	s.payers[p.ID] = p

	span.SetAttributes(attribute.Int64("payer.id", p.ID))
	out := *p
	return &out, nil
}

func (s *Sandbox) UpdatePayer(ctx context.Context, accountID, id int64, in *domain.PayerInput) (*domain.Payer, error) {
	_, span := tracer.Start(ctx, "Sandbox.UpdatePayer")
	defer span.End()

	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.ownedPayer(accountID, id)
	if err != nil {
		return nil, err
	}
	applyPayer(p, in)
	for _, c := range s.charges {
		if c.PayerID == p.ID {
			c.PayerName = p.Name
		}
	}
	out := *p
	return &out, nil
}

// DeletePayer removes the payer and its charges.
func (s *Sandbox) DeletePayer(ctx context.Context, accountID, id int64) error {
	_, span := tracer.Start(ctx, "Sandbox.DeletePayer")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownedPayer(accountID, id); err != nil {
		return err
	}
	delete(s.payers, id)
	removed := 0
	for cid, c := range s.charges {
		if c.PayerID == id {
			delete(s.charges, cid)
			delete(s.reminded, cid)
			removed++
		}
	}
	s.logger.Info("sandbox: payer deleted", zap.Int64("payer_id", id), zap.Int("charges_removed", removed))
	return nil
}

// ============================================================
// Charges: /payments
// ============================================================

// ListCharges lists the account charges; payerID 0 means every payer.
func (s *Sandbox) ListCharges(ctx context.Context, accountID, payerID int64) ([]domain.Charge, error) {
	_, span := tracer.Start(ctx, "Sandbox.ListCharges")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Charge, 0)
	for _, c := range s.charges {
		if c.AccountID != accountID || (payerID != 0 && c.PayerID != payerID) {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Sandbox) GetCharge(ctx context.Context, accountID, id int64) (*domain.Charge, error) {
	_, span := tracer.Start(ctx, "Sandbox.GetCharge")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := s.ownedCharge(accountID, id)
	if err != nil {
		return nil, err
	}
	out := *c
	return &out, nil
}

func (s *Sandbox) CreateCharge(ctx context.Context, accountID int64, in *domain.ChargeInput) (*domain.Charge, error) {
	_, span := tracer.Start(ctx, "Sandbox.CreateCharge")
	defer span.End()

	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	payer, err := s.ownedPayer(accountID, in.PayerID)
	if err != nil {
		return nil, err
	}

	s.nextChargeID++
	c := &domain.Charge{
		ID:        s.nextChargeID,
		AccountID: accountID,
		Status:    domain.ChargePending,
		CreatedAt: s.now(),
	}
	applyCharge(c, in, payer)
	s.charges[c.ID] = c

	s.notify(accountID, domain.NotificationChargeCreated,
		fmt.Sprintf("Cobrança de %s criada para %s.", domain.FormatBRL(c.Amount), payer.Name))

	span.SetAttributes(attribute.Int64("charge.id", c.ID))
	out := *c
	return &out, nil
}

func (s *Sandbox) UpdateCharge(ctx context.Context, accountID, id int64, in *domain.ChargeInput) (*domain.Charge, error) {
	_, span := tracer.Start(ctx, "Sandbox.UpdateCharge")
	defer span.End()

	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.ownedCharge(accountID, id)
	if err != nil {
		return nil, err
	}
	payer, err := s.ownedPayer(accountID, in.PayerID)
	if err != nil {
		return nil, err
	}
	applyCharge(c, in, payer)
	out := *c
	return &out, nil
}

// SetChargeStatus changes only the status. Paying stamps paid_at and
// notifies the account.
func (s *Sandbox) SetChargeStatus(ctx context.Context, accountID, id int64, status domain.ChargeStatus) (*domain.Charge, error) {
	_, span := tracer.Start(ctx, "Sandbox.SetChargeStatus")
	defer span.End()

	if !status.Valid() {
		return nil, &domain.ErrValidation{Field: "status", Message: "Status inválido."}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.ownedCharge(accountID, id)
	if err != nil {
		return nil, err
	}

	wasPaid := c.Status == domain.ChargePaid
	c.Status = status
	switch {
	case status == domain.ChargePaid && !wasPaid:
		now := s.now()
		c.PaidAt = &now
		s.notify(accountID, domain.NotificationChargePaid,
			fmt.Sprintf("Pagamento de %s recebido de %s.", domain.FormatBRL(c.Amount), c.PayerName))
	case status != domain.ChargePaid:
		c.PaidAt = nil
	}

	out := *c
	return &out, nil
}

func (s *Sandbox) DeleteCharge(ctx context.Context, accountID, id int64) error {
	_, span := tracer.Start(ctx, "Sandbox.DeleteCharge")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownedCharge(accountID, id); err != nil {
		return err
	}
	delete(s.charges, id)
	delete(s.reminded, id)
	return nil
}

// ============================================================
// Notifications: /notifications
// ============================================================

func (s *Sandbox) ListNotifications(ctx context.Context, accountID int64) ([]domain.Notification, error) {
	_, span := tracer.Start(ctx, "Sandbox.ListNotifications")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.remindDue(accountID)
	items := s.notifications[accountID]
	out := make([]domain.Notification, len(items))
	copy(out, items)
	return out, nil
}

// ============================================================
// Internal helpers (caller holds the lock)
// ============================================================

// remindDue adds one reminder per pending charge whose due date is within
// its notify_days_before window. Changing the due date re-arms it.
func (s *Sandbox) remindDue(accountID int64) {
	y, m, d := s.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	ids := make([]int64, 0, len(s.charges))
	for id, c := range s.charges {
		if c.AccountID == accountID && c.Status == domain.ChargePending {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		c := s.charges[id]
		if s.reminded[id] == c.DueDate {
			continue
		}
		due, err := domain.ParseISODate(c.DueDate)
		if err != nil || today.After(due) || today.Before(due.AddDate(0, 0, -c.NotifyDaysBefore)) {
			continue
		}
		s.reminded[id] = c.DueDate
		s.notify(accountID, domain.NotificationReminder,
			fmt.Sprintf("Lembrete: cobrança de %s para %s vence em %s.",
				domain.FormatBRL(c.Amount), c.PayerName, due.Format(domain.DisplayDateLayout)))
	}
}

func (s *Sandbox) ownedPayer(accountID, id int64) (*domain.Payer, error) {
	p, ok := s.payers[id]
	if !ok || p.AccountID != accountID {
		return nil, &domain.ErrNotFound{Resource: "Pagador", ID: strconv.FormatInt(id, 10)}
	}
	return p, nil
}

func (s *Sandbox) ownedCharge(accountID, id int64) (*domain.Charge, error) {
	c, ok := s.charges[id]
	if !ok || c.AccountID != accountID {
		return nil, &domain.ErrNotFound{Resource: "Cobrança", ID: strconv.FormatInt(id, 10)}
	}
	return c, nil
}

func applyPayer(p *domain.Payer, in *domain.PayerInput) {
	p.Name = in.Name
	p.Description = in.Description
	p.CPFCNPJ = in.CPFCNPJ
	p.Email = in.Email
	p.Phone = in.Phone
	p.Category = in.Category
	p.CEP = in.CEP
	p.Address = in.Address
}

func applyCharge(c *domain.Charge, in *domain.ChargeInput, payer *domain.Payer) {
	due, _ := domain.ParseISODate(in.DueDate)
	c.PayerID = payer.ID
	c.PayerName = payer.Name
	c.Amount = in.Amount
	c.Description = in.Description
	c.DueDate = due.Format(domain.ISODateLayout)
	c.PixKey = in.PixKey
	c.FineAmount = in.FineAmount
	c.InterestRate = in.InterestRate
	c.NotifyDaysBefore = in.NotifyDaysBefore
}
