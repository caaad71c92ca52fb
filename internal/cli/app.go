package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/boddenberg/bankup-app-go/internal/domain"

	"go.uber.org/zap"
)

// AuthFlow is the auth state machine the REPL drives.
type AuthFlow interface {
	Register(ctx context.Context, email, password, confirm string) (*domain.AuthResult, error)
	Login(ctx context.Context, email, password string) (*domain.AuthResult, error)
	ForgotPassword(ctx context.Context, email string) (*domain.AuthResult, error)
	ResendCode(ctx context.Context) (*domain.AuthResult, error)
	VerifyCode(ctx context.Context, code string) (*domain.AuthResult, error)
	ResetPassword(ctx context.Context, password, confirm string) (*domain.AuthResult, error)
	Logout(ctx context.Context) error
	Status(ctx context.Context) (*domain.SessionStatus, error)
}

// Profiles reads and writes the user profile.
type Profiles interface {
	Get(ctx context.Context) (*domain.User, error)
	DisplayName(ctx context.Context) string
	Complete(ctx context.Context, form domain.ProfileForm) (*domain.User, error)
	Update(ctx context.Context, form domain.ProfileForm) (*domain.User, error)
	Forget()
}

// PayerBook manages payers.
type PayerBook interface {
	Search(ctx context.Context, query string) ([]domain.Payer, error)
	Get(ctx context.Context, id int64) (*domain.Payer, error)
	Create(ctx context.Context, in domain.PayerInput) (*domain.Payer, error)
	Update(ctx context.Context, id int64, in domain.PayerInput) (*domain.Payer, error)
	Delete(ctx context.Context, id int64) error
	Forget()
}

// ChargeBook manages charges.
type ChargeBook interface {
	List(ctx context.Context) ([]domain.Charge, error)
	Get(ctx context.Context, id int64) (*domain.Charge, error)
	Create(ctx context.Context, form domain.ChargeForm) (*domain.Charge, error)
	Update(ctx context.Context, id int64, form domain.ChargeForm) (*domain.Charge, error)
	MarkPaid(ctx context.Context, id int64) (*domain.Charge, error)
	Delete(ctx context.Context, id int64) error
}

// Dashboards builds aggregate views.
type Dashboards interface {
	Load(ctx context.Context) (*domain.Dashboard, error)
	PayerHistory(ctx context.Context, payerID int64) (*domain.PayerHistory, error)
}

// NotificationFeed lists notifications.
type NotificationFeed interface {
	List(ctx context.Context) ([]domain.Notification, error)
}

// Services groups what the App needs.
type Services struct {
	Auth          AuthFlow
	Profile       Profiles
	Payers        PayerBook
	Charges       ChargeBook
	Dashboard     Dashboards
	Notifications NotificationFeed
	Stats         func() *domain.ClientStats
	UpcomingDays  int
}

// App is the interactive client.
type App struct {
	svc    Services
	reader *bufio.Reader
	out    io.Writer
	logger *zap.Logger
	now    func() time.Time
}

// NewApp creates the client reading commands from in and writing to out.
func NewApp(svc Services, in io.Reader, out io.Writer, logger *zap.Logger) *App {
	return &App{
		svc:    svc,
		reader: bufio.NewReader(in),
		out:    out,
		logger: logger,
		now:    time.Now,
	}
}

// Run starts the REPL and blocks until exit, end of input or ctx is done.
// A line read blocked on stdin does not hold up cancellation.
func (a *App) Run(ctx context.Context) {
	printlnFn("Bem-vindo(a) ao BankUp. Digite 'help' para ver os comandos.")

	done := make(chan struct{})
	go func() {
		defer close(done)
		runREPL(ctx, a, func() string { return a.status(ctx) }, a.reader)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		printlnFn()
		printlnFn("Até logo!")
	}
}

// ============================================================
// Session state
// ============================================================

type sessionState int

const (
	stateGuest sessionState = iota
	statePending
	stateReset
	stateIncomplete
	stateReady
)

func (a *App) state(ctx context.Context) sessionState {
	st, err := a.svc.Auth.Status(ctx)
	if err != nil {
		a.logger.Warn("read session status", zap.Error(err))
		return stateGuest
	}
	switch {
	case st.LoggedIn && st.ProfileComplete:
		return stateReady
	case st.LoggedIn:
		return stateIncomplete
	case st.Pending != nil:
		return statePending
	case st.HasResetToken:
		return stateReset
	}
	return stateGuest
}

func (a *App) status(ctx context.Context) string {
	switch a.state(ctx) {
	case stateReady, stateIncomplete:
		if name := a.svc.Profile.DisplayName(ctx); name != "" {
			return name
		}
		return "conectado"
	case statePending:
		return "aguardando código"
	case stateReset:
		return "redefinindo senha"
	}
	return "visitante"
}

// ============================================================
// I/O helpers
// ============================================================

func (a *App) say(format string, args ...any) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, format)
		return
	}
	fmt.Fprintf(a.out, format+"\n", args...)
}

func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.out)
}

func (a *App) askDefault(prompt, current string) (string, error) {
	return GetTextDefault(a.reader, prompt, current, a.out)
}

func (a *App) askSecret(prompt string) (string, error) {
	return GetPassword(a.reader, prompt, a.out)
}

func (a *App) confirm(prompt string) (bool, error) {
	return Confirm(a.reader, prompt, a.out)
}

// argOrAsk returns the joined args, or prompts when there are none.
func (a *App) argOrAsk(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	return a.ask(prompt)
}

func parseID(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		return 0, &domain.ErrValidation{Field: "id", Message: "Uso: " + usage}
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(args[0], "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ErrValidation{Field: "id", Message: "Identificador inválido: " + args[0]}
	}
	return id, nil
}

// UserMessage renders err as the one-line message shown to the user.
// Server and validation messages are shown verbatim.
func UserMessage(err error) string {
	var ext *domain.ErrExternalService
	var open *domain.ErrCircuitOpen
	switch {
	case errors.As(err, &open):
		return "Serviço indisponível no momento. Tente novamente em instantes."
	case errors.As(err, &ext):
		return "Erro de conexão com o servidor."
	case errors.Is(err, io.EOF):
		return "Entrada encerrada."
	}
	return err.Error()
}
