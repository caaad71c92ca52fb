package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/boddenberg/bankup-app-go/internal/domain"
	"github.com/boddenberg/bankup-app-go/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

func sampleCharges() []domain.Charge {
	return []domain.Charge{
		{ID: 1, PayerID: 1, Amount: decimal.NewFromInt(100), DueDate: "2025-03-05", Status: domain.ChargePending},
		{ID: 2, PayerID: 1, Amount: decimal.NewFromInt(200), DueDate: "2025-03-12", Status: domain.ChargePending},
		{ID: 3, PayerID: 2, Amount: decimal.NewFromInt(50), DueDate: "2025-02-20", Status: domain.ChargePaid},
		{ID: 4, PayerID: 2, Amount: decimal.NewFromInt(300), DueDate: "2025-04-30", Status: domain.ChargePending},
	}
}

func TestDashboardLoad(t *testing.T) {
	charges := &mockChargeAPI{charges: sampleCharges()}
	payers := &mockPayerAPI{payers: []domain.Payer{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}}
	svc := service.NewDashboardService(charges, payers, 7, zap.NewNop())
	service.SetDashboardClock(svc, func() time.Time { return fixedNow })

	d, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if d.PayerCount != 2 {
		t.Errorf("expected 2 payers, got %d", d.PayerCount)
	}

	want := map[domain.ChargeStatus]struct {
		count  int
		amount int64
	}{
		domain.ChargeOverdue: {1, 100},
		domain.ChargePending: {2, 500},
		domain.ChargePaid:    {1, 50},
	}
	for status, w := range want {
		got := d.Totals[status]
		if got.Count != w.count || !got.Amount.Equal(decimal.NewFromInt(w.amount)) {
			t.Errorf("%s: expected %d/%d, got %d/%s", status, w.count, w.amount, got.Count, got.Amount)
		}
	}

	if len(d.Months) != 3 {
		t.Fatalf("expected 3 months, got %d", len(d.Months))
	}
	if d.Months[0].Month != "2025-02" || d.Months[2].Month != "2025-04" {
		t.Errorf("months not ordered: %+v", d.Months)
	}
	march := d.Months[1]
	if !march.Overdue.Equal(decimal.NewFromInt(100)) || !march.Pending.Equal(decimal.NewFromInt(200)) {
		t.Errorf("unexpected march summary: %+v", march)
	}
	if !march.Total().Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected march total 300, got %s", march.Total())
	}

	if len(d.Upcoming) != 1 || d.Upcoming[0].ID != 2 {
		t.Errorf("unexpected upcoming: %+v", d.Upcoming)
	}
	if len(d.Overdue) != 1 || d.Overdue[0].ID != 1 || d.Overdue[0].Status != domain.ChargeOverdue {
		t.Errorf("unexpected overdue: %+v", d.Overdue)
	}
}

func TestDashboardLoad_EitherFailureFails(t *testing.T) {
	boom := &domain.ErrAPI{Status: 500, Message: "Erro interno."}

	svc := service.NewDashboardService(&mockChargeAPI{}, &mockPayerAPI{err: boom}, 7, zap.NewNop())
	if _, err := svc.Load(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected payers error, got %v", err)
	}

	svc = service.NewDashboardService(&mockChargeAPI{err: boom}, &mockPayerAPI{}, 7, zap.NewNop())
	if _, err := svc.Load(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected charges error, got %v", err)
	}
}

func TestAggregate_Empty(t *testing.T) {
	d := service.Aggregate(nil, 0, fixedNow, 7)
	if len(d.Months) != 0 || len(d.Upcoming) != 0 {
		t.Errorf("expected empty dashboard, got %+v", d)
	}
	if !d.Totals[domain.ChargePaid].Amount.IsZero() {
		t.Error("expected zero totals")
	}
}

func TestAggregate_SkipsUnknownStatus(t *testing.T) {
	charges := append(sampleCharges(),
		domain.Charge{ID: 5, PayerID: 1, Amount: decimal.NewFromInt(999), DueDate: "2025-03-20", Status: "canceled"},
	)
	d := service.Aggregate(charges, 2, fixedNow, 30)

	if len(d.Totals) != 3 {
		t.Errorf("expected only known statuses in totals, got %v", d.Totals)
	}
	if got := d.Totals[domain.ChargePending].Amount; !got.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected pending total 500, got %s", got)
	}

	pending := decimal.Zero
	for _, m := range d.Months {
		pending = pending.Add(m.Pending)
	}
	if !pending.Equal(d.Totals[domain.ChargePending].Amount) {
		t.Errorf("monthly pending %s does not match pending total %s", pending, d.Totals[domain.ChargePending].Amount)
	}
	for _, c := range d.Upcoming {
		if c.ID == 5 {
			t.Error("canceled charge listed as upcoming")
		}
	}
}

func TestPayerHistory(t *testing.T) {
	charges := &mockChargeAPI{charges: sampleCharges()}
	payers := &mockPayerAPI{payers: []domain.Payer{{ID: 2, Name: "B"}}}
	svc := service.NewDashboardService(charges, payers, 7, zap.NewNop())
	service.SetDashboardClock(svc, func() time.Time { return fixedNow })

	h, err := svc.PayerHistory(context.Background(), 2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if h.Payer.Name != "B" {
		t.Errorf("unexpected payer %+v", h.Payer)
	}
	if len(h.Months) != 2 || h.Months[0].Month != "2025-04" || h.Months[1].Month != "2025-02" {
		t.Fatalf("expected newest month first, got %+v", h.Months)
	}
	if !h.Months[0].Total.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected 300, got %s", h.Months[0].Total)
	}
	if charges.payerIDs[0] != 2 {
		t.Errorf("expected payer filter 2, got %v", charges.payerIDs)
	}

	if _, err := svc.PayerHistory(context.Background(), 0); err == nil {
		t.Error("expected validation error for payer 0")
	}
}

func TestChargeService(t *testing.T) {
	api := &mockChargeAPI{charges: sampleCharges()}
	svc := service.NewChargeService(api, zap.NewNop())
	service.SetChargeClock(svc, func() time.Time { return fixedNow })
	ctx := context.Background()

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list[0].DueDate != "2025-02-20" || list[1].Status != domain.ChargeOverdue {
		t.Errorf("unexpected list: %+v", list)
	}

	byPayer, err := svc.ListByPayer(ctx, 1)
	if err != nil || len(byPayer) != 2 {
		t.Fatalf("expected 2 charges of payer 1, got %d (%v)", len(byPayer), err)
	}

	c, err := svc.Create(ctx, domain.ChargeForm{
		PayerID:      "1",
		Amount:       "R$ 1.200,50",
		DueDate:      "31/03/2025",
		PixKey:       "ana@pix.com",
		FineAmount:   "10",
		InterestRate: "2%",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID != 10 || !api.created.Amount.Equal(decimal.RequireFromString("1200.50")) || api.created.DueDate != "2025-03-31" {
		t.Errorf("unexpected create input: %+v", api.created)
	}

	if _, err := svc.Create(ctx, domain.ChargeForm{PayerID: "1", Amount: "0", DueDate: "31/03/2025", PixKey: "k"}); err == nil {
		t.Error("expected validation error for zero amount")
	}

	paid, err := svc.MarkPaid(ctx, 2)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if api.status != domain.ChargePaid || paid.Status != domain.ChargePaid {
		t.Errorf("expected paid status, got %q", api.status)
	}
}

func TestNotificationList_NewestFirst(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	api := &mockNotificationAPI{items: []domain.Notification{
		{ID: 1, CreatedAt: base},
		{ID: 2, CreatedAt: base.Add(time.Hour)},
		{ID: 3, CreatedAt: base},
	}}

	items, err := service.NewNotificationService(api).List(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	got := []int64{items[0].ID, items[1].ID, items[2].ID}
	if got[0] != 2 || got[1] != 3 || got[2] != 1 {
		t.Errorf("unexpected order %v", got)
	}
}
