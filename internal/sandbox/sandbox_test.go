package sandbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/boddenberg/bankup-app-go/internal/domain"
	"github.com/boddenberg/bankup-app-go/internal/infra/observability"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSandbox(t *testing.T) *Sandbox {
	t.Helper()
	return New(Options{
		Secret:   []byte("test-secret"),
		TokenTTL: time.Hour,
		CodeTTL:  time.Minute,
		DevCodes: true,
	}, observability.NewMetrics(), zap.NewNop())
}

// signIn registers email and walks the login code flow.
func signIn(t *testing.T, s *Sandbox, email string) (int64, string) {
	t.Helper()
	ctx := context.Background()

	reg, err := s.Register(ctx, &domain.RegisterRequest{Email: email, Password: "secret1", ConfirmPassword: "secret1"})
	require.NoError(t, err)

	login, err := s.Login(ctx, &domain.LoginRequest{Email: email, Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, reg.ID, login.UserID)

	_, err = s.SendCode(ctx, &domain.SendCodeRequest{UserID: login.UserID, Email: email, Type: domain.VerificationLogin})
	require.NoError(t, err)

	code, err := s.LastCode(email)
	require.NoError(t, err)

	resp, err := s.VerifyCode(ctx, &domain.VerifyCodeRequest{UserID: login.UserID, Code: code.Code, Type: domain.VerificationLogin})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	return login.UserID, resp.Token
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newSandbox(t)
	ctx := context.Background()
	req := &domain.RegisterRequest{Email: "Ana@B.co", Password: "secret1", ConfirmPassword: "secret1"}

	_, err := s.Register(ctx, req)
	require.NoError(t, err)

	req.Email = "ana@b.co"
	_, err = s.Register(ctx, req)
	var conflict *domain.ErrConflict
	require.True(t, errors.As(err, &conflict))
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newSandbox(t)
	ctx := context.Background()
	_, err := s.Register(ctx, &domain.RegisterRequest{Email: "a@b.co", Password: "secret1", ConfirmPassword: "secret1"})
	require.NoError(t, err)

	_, err = s.Login(ctx, &domain.LoginRequest{Email: "a@b.co", Password: "wrong!!"})
	var unauthorized *domain.ErrUnauthorized
	require.True(t, errors.As(err, &unauthorized))
	assert.Equal(t, "E-mail ou senha incorretos.", err.Error())
}

func TestVerifyCode_TokenAndProfileFlag(t *testing.T) {
	s := newSandbox(t)
	userID, token := signIn(t, s, "a@b.co")

	got, err := s.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	// Codes are single use.
	_, err = s.VerifyCode(context.Background(), &domain.VerifyCodeRequest{UserID: userID, Code: "000000", Type: domain.VerificationLogin})
	var invalid *domain.ErrInvalidCode
	require.True(t, errors.As(err, &invalid))
}

func TestVerifyCode_Expired(t *testing.T) {
	s := newSandbox(t)
	ctx := context.Background()
	reg, err := s.Register(ctx, &domain.RegisterRequest{Email: "a@b.co", Password: "secret1", ConfirmPassword: "secret1"})
	require.NoError(t, err)
	_, err = s.SendCode(ctx, &domain.SendCodeRequest{UserID: reg.ID, Type: domain.VerificationAccount})
	require.NoError(t, err)
	code, err := s.LastCode("a@b.co")
	require.NoError(t, err)

	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = s.VerifyCode(ctx, &domain.VerifyCodeRequest{UserID: reg.ID, Code: code.Code, Type: domain.VerificationAccount})
	var invalid *domain.ErrInvalidCode
	require.True(t, errors.As(err, &invalid))
}

func TestPasswordReset_OneTimeToken(t *testing.T) {
	s := newSandbox(t)
	ctx := context.Background()
	userID, access := signIn(t, s, "a@b.co")

	sent, err := s.SendCode(ctx, &domain.SendCodeRequest{Email: "A@b.co", Type: domain.VerificationPassword})
	require.NoError(t, err)
	assert.Equal(t, userID, sent.UserID)

	code, err := s.LastCode("a@b.co")
	require.NoError(t, err)
	resp, err := s.VerifyCode(ctx, &domain.VerifyCodeRequest{UserID: userID, Code: code.Code, Type: domain.VerificationPassword})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ResetToken)
	assert.Empty(t, resp.Token)

	// A session token is not a reset token.
	_, err = s.ResetPassword(ctx, access, &domain.PasswordResetRequest{NewPassword: "another1"})
	require.Error(t, err)

	_, err = s.ResetPassword(ctx, resp.ResetToken, &domain.PasswordResetRequest{NewPassword: "another1"})
	require.NoError(t, err)
	_, err = s.ResetPassword(ctx, resp.ResetToken, &domain.PasswordResetRequest{NewPassword: "another2"})
	require.Error(t, err)

	_, err = s.Login(ctx, &domain.LoginRequest{Email: "a@b.co", Password: "another1"})
	require.NoError(t, err)
}

func TestSendCode_UnknownEmail(t *testing.T) {
	s := newSandbox(t)
	_, err := s.SendCode(context.Background(), &domain.SendCodeRequest{Email: "x@y.z", Type: domain.VerificationPassword})
	var notFound *domain.ErrNotFound
	require.True(t, errors.As(err, &notFound))
}

func TestProfileCompletion(t *testing.T) {
	s := newSandbox(t)
	ctx := context.Background()
	userID, _ := signIn(t, s, "a@b.co")

	_, err := s.CompleteProfile(ctx, userID, &domain.ProfileInput{Name: "Ana"})
	require.Error(t, err)

	u, err := s.CompleteProfile(ctx, userID, &domain.ProfileInput{
		Name: "Ana", Phone: "11999990000", CPFCNPJ: "123.456.789-01", Address: "Rua A", Birthdate: "1990-04-15",
	})
	require.NoError(t, err)
	assert.True(t, u.IsComplete())
	assert.Equal(t, "12345678901", u.CPFCNPJ)
	assert.Equal(t, "a@b.co", u.Email)

	// The next login reports a complete profile.
	_, err = s.SendCode(ctx, &domain.SendCodeRequest{UserID: userID, Type: domain.VerificationLogin})
	require.NoError(t, err)
	code, _ := s.LastCode("a@b.co")
	resp, err := s.VerifyCode(ctx, &domain.VerifyCodeRequest{UserID: userID, Code: code.Code, Type: domain.VerificationLogin})
	require.NoError(t, err)
	assert.True(t, resp.ProfileComplete)
}

func TestChargesAndNotifications(t *testing.T) {
	s := newSandbox(t)
	ctx := context.Background()
	owner, _ := signIn(t, s, "a@b.co")
	other, _ := signIn(t, s, "c@d.co")

	p, err := s.CreatePayer(ctx, owner, &domain.PayerInput{Name: "Loja X"})
	require.NoError(t, err)

	_, err = s.CreateCharge(ctx, other, &domain.ChargeInput{
		PayerID: p.ID, Amount: decimal.NewFromInt(10), DueDate: "2025-03-01", PixKey: "k",
	})
	var notFound *domain.ErrNotFound
	require.True(t, errors.As(err, &notFound), "payers of another account are invisible")

	c, err := s.CreateCharge(ctx, owner, &domain.ChargeInput{
		PayerID: p.ID, Amount: decimal.RequireFromString("1200.50"), DueDate: "2025-03-01", PixKey: "k",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ChargePending, c.Status)
	assert.Equal(t, "Loja X", c.PayerName)

	paid, err := s.SetChargeStatus(ctx, owner, c.ID, domain.ChargePaid)
	require.NoError(t, err)
	require.NotNil(t, paid.PaidAt)

	items, err := s.ListNotifications(ctx, owner)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, domain.NotificationChargeCreated, items[0].Kind)
	assert.Equal(t, "Pagamento de R$ 1.200,50 recebido de Loja X.", items[1].Message)

	list, err := s.ListCharges(ctx, owner, p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.DeletePayer(ctx, owner, p.ID))
	list, err = s.ListCharges(ctx, owner, 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	h := s.Health()
	assert.Equal(t, 2, h.Users)
	assert.Equal(t, 0, h.Charges)
}

func TestListNotifications_DueReminders(t *testing.T) {
	s := newSandbox(t)
	ctx := context.Background()
	owner, _ := signIn(t, s, "a@b.co")
	s.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }

	p, err := s.CreatePayer(ctx, owner, &domain.PayerInput{Name: "Loja X"})
	require.NoError(t, err)

	soon, err := s.CreateCharge(ctx, owner, &domain.ChargeInput{
		PayerID: p.ID, Amount: decimal.NewFromInt(100), DueDate: "2025-03-12", PixKey: "k", NotifyDaysBefore: 3,
	})
	require.NoError(t, err)
	later, err := s.CreateCharge(ctx, owner, &domain.ChargeInput{
		PayerID: p.ID, Amount: decimal.NewFromInt(200), DueDate: "2025-03-20", PixKey: "k", NotifyDaysBefore: 3,
	})
	require.NoError(t, err)

	reminders := func() []domain.Notification {
		items, err := s.ListNotifications(ctx, owner)
		require.NoError(t, err)
		var out []domain.Notification
		for _, n := range items {
			if n.Kind == domain.NotificationReminder {
				out = append(out, n)
			}
		}
		return out
	}

	got := reminders()
	require.Len(t, got, 1)
	assert.Equal(t, "Lembrete: cobrança de R$ 100,00 para Loja X vence em 12/03/2025.", got[0].Message)

	// Listing again does not repeat it.
	assert.Len(t, reminders(), 1)

	// Moving the due date into the window arms the other charge.
	_, err = s.UpdateCharge(ctx, owner, later.ID, &domain.ChargeInput{
		PayerID: p.ID, Amount: decimal.NewFromInt(200), DueDate: "2025-03-11", PixKey: "k", NotifyDaysBefore: 3,
	})
	require.NoError(t, err)
	assert.Len(t, reminders(), 2)

	// Paid and past-due charges are never reminded.
	_, err = s.SetChargeStatus(ctx, owner, soon.ID, domain.ChargePaid)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC) }
	_, err = s.CreateCharge(ctx, owner, &domain.ChargeInput{
		PayerID: p.ID, Amount: decimal.NewFromInt(50), DueDate: "2025-03-30", PixKey: "k", NotifyDaysBefore: 5,
	})
	require.NoError(t, err)
	assert.Len(t, reminders(), 2)
}
