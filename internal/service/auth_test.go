package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/boddenberg/bankup-app-go/internal/domain"
	"github.com/boddenberg/bankup-app-go/internal/service"

	"go.uber.org/zap"
)

func newAuth(api *mockAuthAPI, store *memStore) *service.AuthService {
	return service.NewAuthService(api, store, zap.NewNop())
}

func TestRegister_PersistsPendingAndSendsCode(t *testing.T) {
	api := &mockAuthAPI{registerResp: &domain.RegisterResponse{ID: 42}}
	store := &memStore{}

	res, err := newAuth(api, store).Register(context.Background(), " ana@empresa.com ", "secret1", "secret1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Next != domain.NextVerifyCode {
		t.Errorf("expected next %q, got %q", domain.NextVerifyCode, res.Next)
	}
	if store.pending == nil || store.pending.UserID != 42 || store.pending.Type != domain.VerificationAccount {
		t.Fatalf("unexpected pending verification: %+v", store.pending)
	}
	if store.pending.Email != "ana@empresa.com" {
		t.Errorf("expected trimmed email, got %q", store.pending.Email)
	}
	if len(api.sent) != 1 || api.sent[0].Type != domain.VerificationAccount || api.sent[0].UserID != 42 {
		t.Errorf("unexpected send-code calls: %+v", api.sent)
	}
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name, email, password, confirm, want string
	}{
		{"bad email", "ana", "secret1", "secret1", "Informe um e-mail válido."},
		{"short password", "ana@b.co", "123", "123", "A senha deve ter pelo menos 6 caracteres."},
		{"mismatch", "ana@b.co", "secret1", "secret2", "As senhas não coincidem."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockAuthAPI{}
			_, err := newAuth(api, &memStore{}).Register(context.Background(), tt.email, tt.password, tt.confirm)
			var verr *domain.ErrValidation
			if !errors.As(err, &verr) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if err.Error() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, err.Error())
			}
			if len(api.sent) != 0 {
				t.Error("no request should reach the API")
			}
		})
	}
}

func TestRegister_SendFailureKeepsPending(t *testing.T) {
	api := &mockAuthAPI{
		registerResp: &domain.RegisterResponse{ID: 7},
		sendErr:      &domain.ErrAPI{Status: 500, Message: "Falha ao enviar e-mail."},
	}
	store := &memStore{}

	_, err := newAuth(api, store).Register(context.Background(), "ana@b.co", "secret1", "secret1")
	if err == nil || err.Error() != "Falha ao enviar e-mail." {
		t.Fatalf("expected server message verbatim, got %v", err)
	}
	if store.pending == nil || store.pending.UserID != 7 {
		t.Fatal("pending verification should survive for resend")
	}
}

func TestLogin_ServerMessageVerbatim(t *testing.T) {
	api := &mockAuthAPI{err: &domain.ErrAPI{Status: 401, Message: "E-mail ou senha incorretos!"}}

	_, err := newAuth(api, &memStore{}).Login(context.Background(), "ana@b.co", "secret1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "E-mail ou senha incorretos!" {
		t.Errorf("expected verbatim message, got %q", err.Error())
	}
}

func TestVerifyCode_LoginBranches(t *testing.T) {
	tests := []struct {
		name     string
		complete bool
		want     domain.NextStep
	}{
		{"incomplete profile", false, domain.NextCompleteProfile},
		{"complete profile", true, domain.NextHome},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockAuthAPI{
				loginResp: &domain.LoginResponse{UserID: 5},
				verifyResp: &domain.VerifyCodeResponse{
					Token:           "jwt",
					ProfileComplete: tt.complete,
					User:            &domain.User{ID: 5, Name: "Ana"},
				},
			}
			store := &memStore{}
			svc := newAuth(api, store)
			ctx := context.Background()

			if _, err := svc.Login(ctx, "ana@b.co", "secret1"); err != nil {
				t.Fatalf("login: %v", err)
			}
			res, err := svc.VerifyCode(ctx, "123456")
			if err != nil {
				t.Fatalf("verify: %v", err)
			}
			if res.Next != tt.want {
				t.Errorf("expected next %q, got %q", tt.want, res.Next)
			}
			if store.token != "jwt" || store.complete != tt.complete {
				t.Errorf("session not stored: token=%q complete=%v", store.token, store.complete)
			}
			if store.pending != nil {
				t.Error("pending verification should be cleared")
			}
			if store.name != "Ana" {
				t.Errorf("display cache not refreshed, got %q", store.name)
			}
			if got := api.verified[0]; got.UserID != 5 || got.Type != domain.VerificationLogin || got.Code != "123456" {
				t.Errorf("unexpected verify request: %+v", got)
			}
		})
	}
}

func TestVerifyCode_AccountVerificationLogsIn(t *testing.T) {
	api := &mockAuthAPI{verifyResp: &domain.VerifyCodeResponse{Token: "jwt"}}
	store := &memStore{pending: &domain.PendingVerification{UserID: 3, Type: domain.VerificationAccount, Email: "a@b.co"}}

	res, err := newAuth(api, store).VerifyCode(context.Background(), "654321")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Next != domain.NextCompleteProfile {
		t.Errorf("expected next %q, got %q", domain.NextCompleteProfile, res.Next)
	}
}

func TestVerifyCode_PasswordReset(t *testing.T) {
	api := &mockAuthAPI{verifyResp: &domain.VerifyCodeResponse{ResetToken: "reset-jwt"}}
	store := &memStore{pending: &domain.PendingVerification{UserID: 3, Type: domain.VerificationPassword, Email: "a@b.co"}}

	res, err := newAuth(api, store).VerifyCode(context.Background(), "111111")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Next != domain.NextResetPassword {
		t.Errorf("expected next %q, got %q", domain.NextResetPassword, res.Next)
	}
	if store.reset != "reset-jwt" {
		t.Errorf("reset token not stored, got %q", store.reset)
	}
	if store.token != "" {
		t.Error("password reset must not start a session")
	}
}

func TestVerifyCode_Failures(t *testing.T) {
	t.Run("invalid code format", func(t *testing.T) {
		api := &mockAuthAPI{}
		_, err := newAuth(api, &memStore{}).VerifyCode(context.Background(), "12a456")
		if err == nil || err.Error() != "Por favor, digite um código válido de 6 dígitos." {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(api.verified) != 0 {
			t.Error("no request should reach the API")
		}
	})

	t.Run("no pending verification", func(t *testing.T) {
		_, err := newAuth(&mockAuthAPI{}, &memStore{}).VerifyCode(context.Background(), "123456")
		var serr *domain.ErrSessionInvalid
		if !errors.As(err, &serr) {
			t.Fatalf("expected ErrSessionInvalid, got %v", err)
		}
	})

	t.Run("server rejects code keeps pending", func(t *testing.T) {
		api := &mockAuthAPI{verifyErr: &domain.ErrAPI{Status: 400, Message: "Código inválido."}}
		store := &memStore{pending: &domain.PendingVerification{UserID: 1, Type: domain.VerificationLogin}}

		_, err := newAuth(api, store).VerifyCode(context.Background(), "123456")
		if err == nil || err.Error() != "Código inválido." {
			t.Fatalf("expected verbatim message, got %v", err)
		}
		if store.pending == nil {
			t.Error("pending verification should be kept for a retry")
		}
	})
}

func TestForgotPassword_UsesReturnedUserID(t *testing.T) {
	api := &mockAuthAPI{sendResp: &domain.SendCodeResponse{UserID: 99}}
	store := &memStore{}

	if _, err := newAuth(api, store).ForgotPassword(context.Background(), "ana@b.co"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if api.sent[0].UserID != 0 || api.sent[0].Type != domain.VerificationPassword {
		t.Errorf("unexpected send-code request: %+v", api.sent[0])
	}
	if store.pending == nil || store.pending.UserID != 99 {
		t.Errorf("unexpected pending: %+v", store.pending)
	}
}

func TestResendCode(t *testing.T) {
	_, err := newAuth(&mockAuthAPI{}, &memStore{}).ResendCode(context.Background())
	if err == nil || err.Error() != "Dados da sessão não encontrados para o reenvio." {
		t.Fatalf("unexpected error: %v", err)
	}

	api := &mockAuthAPI{}
	store := &memStore{pending: &domain.PendingVerification{UserID: 4, Type: domain.VerificationLogin, Email: "a@b.co"}}
	res, err := newAuth(api, store).ResendCode(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Message != "Um novo código foi enviado para o seu e-mail." {
		t.Errorf("unexpected message %q", res.Message)
	}
	if len(api.sent) != 1 || api.sent[0].UserID != 4 {
		t.Errorf("unexpected send-code calls: %+v", api.sent)
	}
}

func TestResetPassword(t *testing.T) {
	_, err := newAuth(&mockAuthAPI{}, &memStore{}).ResetPassword(context.Background(), "newpass", "newpass")
	if err == nil || err.Error() != "Token de redefinição não encontrado." {
		t.Fatalf("unexpected error: %v", err)
	}

	api := &mockAuthAPI{}
	store := &memStore{reset: "reset-jwt"}
	res, err := newAuth(api, store).ResetPassword(context.Background(), "newpass", "newpass")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Next != domain.NextLogin {
		t.Errorf("expected next %q, got %q", domain.NextLogin, res.Next)
	}
	if api.resetToken != "reset-jwt" || api.resetBody.NewPassword != "newpass" {
		t.Errorf("unexpected reset call: token=%q body=%+v", api.resetToken, api.resetBody)
	}
	if store.reset != "" {
		t.Error("reset token should be cleared")
	}
}

func TestLogoutAndStatus(t *testing.T) {
	store := &memStore{token: "jwt", complete: true, name: "Ana"}
	svc := newAuth(&mockAuthAPI{}, store)
	ctx := context.Background()

	st, err := svc.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !st.LoggedIn || !st.ProfileComplete || st.DisplayName != "Ana" {
		t.Errorf("unexpected status: %+v", st)
	}

	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	st, _ = svc.Status(ctx)
	if st.LoggedIn || st.ProfileComplete {
		t.Errorf("expected logged out, got %+v", st)
	}
}
