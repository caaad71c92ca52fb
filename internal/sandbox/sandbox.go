// Package sandbox is an in-memory implementation of the BankUp API used by
// the bankup-sandbox server for local development and end-to-end tests.
package sandbox

import (
	"sync"
	"time"

	"github.com/boddenberg/bankup-app-go/internal/domain"
	"github.com/boddenberg/bankup-app-go/internal/infra/observability"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var tracer = otel.Tracer("sandbox")

const (
	// Version is reported by /healthz.
	Version = "1.0.0"

	bcryptCost = bcrypt.DefaultCost
	resetTTL   = 10 * time.Minute
)

// Options configures tokens and codes.
type Options struct {
	Secret   []byte
	TokenTTL time.Duration
	CodeTTL  time.Duration
	DevCodes bool
}

type account struct {
	id           int64
	passwordHash []byte
	verified     bool
	profile      domain.User
	createdAt    time.Time
}

type issuedCode struct {
	userID    int64
	email     string
	code      string
	kind      domain.VerificationType
	expiresAt time.Time
}

// Sandbox holds every account, payer, charge and notification in memory.
type Sandbox struct {
	mu sync.RWMutex

	opts    Options
	metrics *observability.Metrics
	logger  *zap.Logger
	now     func() time.Time
	started time.Time

	accounts      map[int64]*account
	byEmail       map[string]int64
	codes         map[int64]map[domain.VerificationType]issuedCode
	lastCode      map[string]issuedCode
	usedResets    map[string]time.Time
	payers        map[int64]*domain.Payer
	charges       map[int64]*domain.Charge
	notifications map[int64][]domain.Notification
	reminded      map[int64]string // charge id -> due date already reminded

	nextAccountID      int64
	nextPayerID        int64
	nextChargeID       int64
	nextNotificationID int64
}

// New creates an empty sandbox.
func New(opts Options, metrics *observability.Metrics, logger *zap.Logger) *Sandbox {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.CodeTTL <= 0 {
		opts.CodeTTL = 10 * time.Minute
	}
	return &Sandbox{
		opts:          opts,
		metrics:       metrics,
		logger:        logger,
		now:           time.Now,
		started:       time.Now(),
		accounts:      make(map[int64]*account),
		byEmail:       make(map[string]int64),
		codes:         make(map[int64]map[domain.VerificationType]issuedCode),
		lastCode:      make(map[string]issuedCode),
		usedResets:    make(map[string]time.Time),
		payers:        make(map[int64]*domain.Payer),
		charges:       make(map[int64]*domain.Charge),
		notifications: make(map[int64][]domain.Notification),
		reminded:      make(map[int64]string),
	}
}

// DevCodesEnabled reports whether GET /dev/codes is served.
func (s *Sandbox) DevCodesEnabled() bool {
	return s.opts.DevCodes
}

// Health summarizes the in-memory state.
func (s *Sandbox) Health() *domain.HealthStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return &domain.HealthStatus{
		Status:   "healthy",
		Users:    len(s.accounts),
		Payers:   len(s.payers),
		Charges:  len(s.charges),
		Uptime:   time.Since(s.started).Round(time.Second).String(),
		Version:  Version,
		DevCodes: s.opts.DevCodes,
	}
}

// notify appends a notification to the account feed. Caller holds the lock.
func (s *Sandbox) notify(accountID int64, kind domain.NotificationKind, msg string) {
	s.nextNotificationID++
	s.notifications[accountID] = append(s.notifications[accountID], domain.Notification{
		ID:        s.nextNotificationID,
		Message:   msg,
		Kind:      kind,
		CreatedAt: s.now(),
	})
}
