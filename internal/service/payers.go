package service

import (
	"context"
	"sort"
	"strings"

	"github.com/boddenberg/bankup-app-go/internal/domain"
	"github.com/boddenberg/bankup-app-go/internal/infra/observability"
	"github.com/boddenberg/bankup-app-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var payerTracer = otel.Tracer("service/payers")

const payersCacheKey = "payers"

// PayerService manages payers. The list is cached briefly and every write
// invalidates it.
type PayerService struct {
	api     port.PayerAPI
	cache   port.Cache[any]
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewPayerService creates a new payer service.
func NewPayerService(api port.PayerAPI, cache port.Cache[any], metrics *observability.Metrics, logger *zap.Logger) *PayerService {
	return &PayerService{
		api:     api,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

// List returns the payers sorted by name.
func (s *PayerService) List(ctx context.Context) ([]domain.Payer, error) {
	ctx, span := payerTracer.Start(ctx, "PayerService.List")
	defer span.End()

	if cached, ok := s.cache.Get(payersCacheKey); ok {
		if payers, ok := cached.([]domain.Payer); ok {
			s.metrics.IncrCacheHit(payersCacheKey)
			return payers, nil
		}
	}
	s.metrics.IncrCacheMiss(payersCacheKey)

	payers, err := s.api.ListPayers(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(payers, func(i, j int) bool {
		return strings.ToLower(payers[i].Name) < strings.ToLower(payers[j].Name)
	})

	s.cache.Set(payersCacheKey, payers)
	span.SetAttributes(attribute.Int("payers.count", len(payers)))
	return payers, nil
}

// Search filters the list by name or email.
func (s *PayerService) Search(ctx context.Context, query string) ([]domain.Payer, error) {
	payers, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Payer, 0, len(payers))
	for i := range payers {
		if payers[i].Matches(query) {
			out = append(out, payers[i])
		}
	}
	return out, nil
}

// Get returns one payer.
func (s *PayerService) Get(ctx context.Context, id int64) (*domain.Payer, error) {
	ctx, span := payerTracer.Start(ctx, "PayerService.Get")
	defer span.End()
	span.SetAttributes(attribute.Int64("payer.id", id))

	return s.api.GetPayer(ctx, id)
}

// Create validates and registers a payer.
func (s *PayerService) Create(ctx context.Context, in domain.PayerInput) (*domain.Payer, error) {
	ctx, span := payerTracer.Start(ctx, "PayerService.Create")
	defer span.End()

	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p, err := s.api.CreatePayer(ctx, &in)
	if err != nil {
		return nil, err
	}
	s.cache.Delete(payersCacheKey)
	s.logger.Info("payer created", zap.Int64("payer_id", p.ID))
	return p, nil
}

// Update validates and edits a payer.
func (s *PayerService) Update(ctx context.Context, id int64, in domain.PayerInput) (*domain.Payer, error) {
	ctx, span := payerTracer.Start(ctx, "PayerService.Update")
	defer span.End()
	span.SetAttributes(attribute.Int64("payer.id", id))

	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p, err := s.api.UpdatePayer(ctx, id, &in)
	if err != nil {
		return nil, err
	}
	s.cache.Delete(payersCacheKey)
	return p, nil
}

// Delete removes a payer.
func (s *PayerService) Delete(ctx context.Context, id int64) error {
	ctx, span := payerTracer.Start(ctx, "PayerService.Delete")
	defer span.End()
	span.SetAttributes(attribute.Int64("payer.id", id))

	if err := s.api.DeletePayer(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(payersCacheKey)
	s.logger.Info("payer deleted", zap.Int64("payer_id", id))
	return nil
}

// Forget drops the cached list, e.g. on logout.
func (s *PayerService) Forget() {
	s.cache.Delete(payersCacheKey)
}
