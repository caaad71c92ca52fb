package service

import (
	"context"
	"sort"
	"time"

	"github.com/boddenberg/bankup-app-go/internal/domain"
	"github.com/boddenberg/bankup-app-go/internal/port"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var dashboardTracer = otel.Tracer("service/dashboard")

// DashboardService builds the home screen and per-payer history views.
type DashboardService struct {
	charges      port.ChargeAPI
	payers       port.PayerAPI
	upcomingDays int
	logger       *zap.Logger
	now          func() time.Time
}

// NewDashboardService creates a new dashboard service. upcomingDays is the
// window, from today, of pending charges listed as upcoming.
func NewDashboardService(charges port.ChargeAPI, payers port.PayerAPI, upcomingDays int, logger *zap.Logger) *DashboardService {
	if upcomingDays < 0 {
		upcomingDays = 0
	}
	return &DashboardService{
		charges:      charges,
		payers:       payers,
		upcomingDays: upcomingDays,
		logger:       logger,
		now:          time.Now,
	}
}

// ============================================================
// Load: GET /payments || GET /payers
// ============================================================

// Load fetches charges and payers concurrently and aggregates them.
// Either failure fails the whole view.
func (s *DashboardService) Load(ctx context.Context) (*domain.Dashboard, error) {
	ctx, span := dashboardTracer.Start(ctx, "DashboardService.Load")
	defer span.End()

	var (
		charges []domain.Charge
		payers  []domain.Payer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		charges, err = s.charges.ListCharges(gctx, 0)
		return err
	})
	g.Go(func() error {
		var err error
		payers, err = s.payers.ListPayers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := Aggregate(charges, len(payers), s.now(), s.upcomingDays)
	span.SetAttributes(
		attribute.Int("charges.count", len(charges)),
		attribute.Int("payers.count", len(payers)),
	)
	s.logger.Debug("dashboard loaded",
		zap.Int("charges", len(charges)),
		zap.Int("payers", len(payers)),
	)
	return d, nil
}

// Aggregate sums charges per effective status and per due month, and picks
// the upcoming and overdue lists. Charges in a status the app does not know
// (e.g. canceled) are left out of every sum.
func Aggregate(charges []domain.Charge, payerCount int, now time.Time, upcomingDays int) *domain.Dashboard {
	today := dayOf(now)
	horizon := today.AddDate(0, 0, upcomingDays)

	d := &domain.Dashboard{
		Totals: map[domain.ChargeStatus]domain.StatusTotal{
			domain.ChargePending: {Amount: decimal.Zero},
			domain.ChargePaid:    {Amount: decimal.Zero},
			domain.ChargeOverdue: {Amount: decimal.Zero},
		},
		Months:     []domain.MonthSummary{},
		PayerCount: payerCount,
		Upcoming:   []domain.Charge{},
		Overdue:    []domain.Charge{},
		Generated:  now,
	}

	months := make(map[string]*domain.MonthSummary)
	for _, c := range charges {
		status := c.EffectiveStatus(today)
		if !status.Valid() {
			continue
		}
		c.Status = status

		t := d.Totals[status]
		t.Count++
		t.Amount = t.Amount.Add(c.Amount)
		d.Totals[status] = t

		if key := domain.MonthKey(c.DueDate); key != "" {
			m, ok := months[key]
			if !ok {
				m = &domain.MonthSummary{Month: key, Received: decimal.Zero, Pending: decimal.Zero, Overdue: decimal.Zero}
				months[key] = m
			}
			switch status {
			case domain.ChargePaid:
				m.Received = m.Received.Add(c.Amount)
			case domain.ChargeOverdue:
				m.Overdue = m.Overdue.Add(c.Amount)
			default:
				m.Pending = m.Pending.Add(c.Amount)
			}
		}

		switch status {
		case domain.ChargeOverdue:
			d.Overdue = append(d.Overdue, c)
		case domain.ChargePending:
			if due, err := domain.ParseISODate(c.DueDate); err == nil && !due.After(horizon) {
				d.Upcoming = append(d.Upcoming, c)
			}
		}
	}

	for _, m := range months {
		d.Months = append(d.Months, *m)
	}
	sort.Slice(d.Months, func(i, j int) bool { return d.Months[i].Month < d.Months[j].Month })
	sortByDueDate(d.Upcoming)
	sortByDueDate(d.Overdue)
	return d
}

// ============================================================
// PayerHistory: GET /payers/{id} + GET /payments?payer_id=
// ============================================================

// PayerHistory returns a payer with its charges grouped by due month,
// newest month first.
func (s *DashboardService) PayerHistory(ctx context.Context, payerID int64) (*domain.PayerHistory, error) {
	ctx, span := dashboardTracer.Start(ctx, "DashboardService.PayerHistory")
	defer span.End()
	span.SetAttributes(attribute.Int64("payer.id", payerID))

	if payerID <= 0 {
		return nil, &domain.ErrValidation{Field: "payer_id", Message: "Selecione um pagador."}
	}

	var (
		payer   *domain.Payer
		charges []domain.Charge
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		payer, err = s.payers.GetPayer(gctx, payerID)
		return err
	})
	g.Go(func() error {
		var err error
		charges, err = s.charges.ListCharges(gctx, payerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	today := s.now()
	groups := make(map[string]*domain.PayerMonth)
	for _, c := range charges {
		c.Status = c.EffectiveStatus(today)
		key := domain.MonthKey(c.DueDate)
		m, ok := groups[key]
		if !ok {
			m = &domain.PayerMonth{Month: key, Total: decimal.Zero}
			groups[key] = m
		}
		m.Total = m.Total.Add(c.Amount)
		m.Charges = append(m.Charges, c)
	}

	h := &domain.PayerHistory{Payer: payer, Months: make([]domain.PayerMonth, 0, len(groups))}
	for _, m := range groups {
		sortByDueDate(m.Charges)
		h.Months = append(h.Months, *m)
	}
	sort.Slice(h.Months, func(i, j int) bool { return h.Months[i].Month > h.Months[j].Month })
	return h, nil
}

func sortByDueDate(charges []domain.Charge) {
	sort.SliceStable(charges, func(i, j int) bool {
		return charges[i].DueDate < charges[j].DueDate
	})
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
