package service

import (
	"context"
	"sort"
	"time"

	"github.com/boddenberg/bankup-app-go/internal/domain"
	"github.com/boddenberg/bankup-app-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var chargeTracer = otel.Tracer("service/charges")

// ChargeService manages charges (cobranças).
type ChargeService struct {
	api    port.ChargeAPI
	logger *zap.Logger
	now    func() time.Time
}

// NewChargeService creates a new charge service.
func NewChargeService(api port.ChargeAPI, logger *zap.Logger) *ChargeService {
	return &ChargeService{
		api:    api,
		logger: logger,
		now:    time.Now,
	}
}

// List returns every charge, due date ascending, with the effective status.
func (s *ChargeService) List(ctx context.Context) ([]domain.Charge, error) {
	ctx, span := chargeTracer.Start(ctx, "ChargeService.List")
	defer span.End()

	return s.list(ctx, 0)
}

// ListByPayer returns the charges of one payer.
func (s *ChargeService) ListByPayer(ctx context.Context, payerID int64) ([]domain.Charge, error) {
	ctx, span := chargeTracer.Start(ctx, "ChargeService.ListByPayer")
	defer span.End()
	span.SetAttributes(attribute.Int64("payer.id", payerID))

	if payerID <= 0 {
		return nil, &domain.ErrValidation{Field: "payer_id", Message: "Selecione um pagador."}
	}
	return s.list(ctx, payerID)
}

func (s *ChargeService) list(ctx context.Context, payerID int64) ([]domain.Charge, error) {
	charges, err := s.api.ListCharges(ctx, payerID)
	if err != nil {
		return nil, err
	}
	today := s.now()
	for i := range charges {
		charges[i].Status = charges[i].EffectiveStatus(today)
	}
	sort.SliceStable(charges, func(i, j int) bool {
		return charges[i].DueDate < charges[j].DueDate
	})
	return charges, nil
}

// Get returns one charge with the effective status.
func (s *ChargeService) Get(ctx context.Context, id int64) (*domain.Charge, error) {
	ctx, span := chargeTracer.Start(ctx, "ChargeService.Get")
	defer span.End()
	span.SetAttributes(attribute.Int64("charge.id", id))

	c, err := s.api.GetCharge(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Status = c.EffectiveStatus(s.now())
	return c, nil
}

// Create validates the form and creates the charge.
func (s *ChargeService) Create(ctx context.Context, form domain.ChargeForm) (*domain.Charge, error) {
	ctx, span := chargeTracer.Start(ctx, "ChargeService.Create")
	defer span.End()

	in, err := form.ToInput()
	if err != nil {
		return nil, err
	}

	c, err := s.api.CreateCharge(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("charge created",
		zap.Int64("charge_id", c.ID),
		zap.Int64("payer_id", c.PayerID),
		zap.String("amount", c.Amount.StringFixed(2)),
	)
	return c, nil
}

// Update validates the form and replaces the charge fields.
func (s *ChargeService) Update(ctx context.Context, id int64, form domain.ChargeForm) (*domain.Charge, error) {
	ctx, span := chargeTracer.Start(ctx, "ChargeService.Update")
	defer span.End()
	span.SetAttributes(attribute.Int64("charge.id", id))

	in, err := form.ToInput()
	if err != nil {
		return nil, err
	}
	return s.api.UpdateCharge(ctx, id, in)
}

// MarkPaid sets the charge status to paid.
func (s *ChargeService) MarkPaid(ctx context.Context, id int64) (*domain.Charge, error) {
	ctx, span := chargeTracer.Start(ctx, "ChargeService.MarkPaid")
	defer span.End()
	span.SetAttributes(attribute.Int64("charge.id", id))

	c, err := s.api.SetChargeStatus(ctx, id, domain.ChargePaid)
	if err != nil {
		return nil, err
	}
	s.logger.Info("charge paid", zap.Int64("charge_id", id))
	return c, nil
}

// Delete removes a charge.
func (s *ChargeService) Delete(ctx context.Context, id int64) error {
	ctx, span := chargeTracer.Start(ctx, "ChargeService.Delete")
	defer span.End()
	span.SetAttributes(attribute.Int64("charge.id", id))

	return s.api.DeleteCharge(ctx, id)
}
