// Package service: AuthService drives the registration, login, one-time
// code and password recovery flow and keeps its state in the session store.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/boddenberg/bankup-app-go/internal/domain"
	"github.com/boddenberg/bankup-app-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var authTracer = otel.Tracer("service/auth")

// AuthService orchestrates authentication flows.
type AuthService struct {
	api    port.AuthAPI
	store  port.SessionStore
	logger *zap.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(api port.AuthAPI, store port.SessionStore, logger *zap.Logger) *AuthService {
	return &AuthService{
		api:    api,
		store:  store,
		logger: logger,
	}
}

// ============================================================
// Register: POST /user/register + POST /user/send-code
// ============================================================

// Register creates the account and sends the account verification code.
// When sending the code fails the pending verification is kept, so
// ResendCode can retry without registering again.
func (s *AuthService) Register(ctx context.Context, email, password, confirm string) (*domain.AuthResult, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Register")
	defer span.End()

	email = strings.TrimSpace(email)
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := domain.ValidateNewPassword(password, confirm); err != nil {
		return nil, err
	}

	resp, err := s.api.Register(ctx, &domain.RegisterRequest{
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("user.id", resp.ID))

	pending := &domain.PendingVerification{UserID: resp.ID, Type: domain.VerificationAccount, Email: email}
	if err := s.startVerification(ctx, pending); err != nil {
		return nil, err
	}

	s.logger.Info("account registered", zap.Int64("user_id", resp.ID))
	return &domain.AuthResult{
		Next:    domain.NextVerifyCode,
		Message: "Cadastro realizado! Enviamos um código de verificação para o seu e-mail.",
	}, nil
}

// ============================================================
// Login: POST /user/login + POST /user/send-code
// ============================================================

// Login checks credentials and sends the login verification code.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Login")
	defer span.End()

	email = strings.TrimSpace(email)
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	resp, err := s.api.Login(ctx, &domain.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	pending := &domain.PendingVerification{UserID: resp.UserID, Type: domain.VerificationLogin, Email: email}
	if err := s.startVerification(ctx, pending); err != nil {
		return nil, err
	}

	return &domain.AuthResult{
		Next:    domain.NextVerifyCode,
		Message: "Enviamos um código de verificação para o seu e-mail.",
	}, nil
}

// ============================================================
// Forgot password: POST /user/send-code {email, type=password_reset}
// ============================================================

// ForgotPassword asks for a password reset code. The server answers with
// the user id the code was issued for.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (*domain.AuthResult, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.ForgotPassword")
	defer span.End()

	email = strings.TrimSpace(email)
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}

	resp, err := s.api.SendCode(ctx, &domain.SendCodeRequest{Email: email, Type: domain.VerificationPassword})
	if err != nil {
		return nil, err
	}

	pending := &domain.PendingVerification{UserID: resp.UserID, Type: domain.VerificationPassword, Email: email}
	if err := s.store.SavePending(ctx, pending); err != nil {
		return nil, fmt.Errorf("save pending verification: %w", err)
	}

	return &domain.AuthResult{
		Next:    domain.NextVerifyCode,
		Message: "Enviamos um código para redefinir sua senha.",
	}, nil
}

// ResendCode sends a fresh code for the verification in progress.
func (s *AuthService) ResendCode(ctx context.Context) (*domain.AuthResult, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.ResendCode")
	defer span.End()

	pending, err := s.requirePending(ctx, "Dados da sessão não encontrados para o reenvio.")
	if err != nil {
		return nil, err
	}

	if _, err := s.api.SendCode(ctx, &domain.SendCodeRequest{
		UserID: pending.UserID,
		Email:  pending.Email,
		Type:   pending.Type,
	}); err != nil {
		return nil, err
	}

	return &domain.AuthResult{
		Next:    domain.NextVerifyCode,
		Message: "Um novo código foi enviado para o seu e-mail.",
	}, nil
}

// ============================================================
// VerifyCode: POST /user/verify-code
// ============================================================

// VerifyCode checks the code of the pending verification and decides the
// next step. A failed verification keeps the pending state for a retry.
func (s *AuthService) VerifyCode(ctx context.Context, code string) (*domain.AuthResult, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.VerifyCode")
	defer span.End()

	code = strings.TrimSpace(code)
	if err := domain.ValidateCode(code); err != nil {
		return nil, err
	}

	pending, err := s.requirePending(ctx, "")
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.Int64("user.id", pending.UserID),
		attribute.String("verification.type", string(pending.Type)),
	)

	resp, err := s.api.VerifyCode(ctx, &domain.VerifyCodeRequest{
		UserID: pending.UserID,
		Code:   code,
		Type:   pending.Type,
	})
	if err != nil {
		s.logger.Warn("code verification failed",
			zap.Int64("user_id", pending.UserID),
			zap.String("type", string(pending.Type)),
			zap.Error(err),
		)
		return nil, err
	}

	switch pending.Type {
	case domain.VerificationPassword:
		if resp.ResetToken == "" {
			return nil, &domain.ErrAPI{Status: 200, Message: "Resposta sem token de redefinição."}
		}
		if err := s.store.SaveResetToken(ctx, resp.ResetToken); err != nil {
			return nil, fmt.Errorf("save reset token: %w", err)
		}
		if err := s.store.ClearPending(ctx); err != nil {
			return nil, fmt.Errorf("clear pending verification: %w", err)
		}
		return &domain.AuthResult{
			Next:    domain.NextResetPassword,
			Message: "Código verificado. Defina sua nova senha.",
		}, nil

	default:
		if resp.Token == "" {
			return nil, &domain.ErrAPI{Status: 200, Message: "Resposta sem token de sessão."}
		}
		if err := s.store.SaveLogin(ctx, resp.Token, resp.ProfileComplete, resp.User); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}
		if err := s.store.ClearPending(ctx); err != nil {
			return nil, fmt.Errorf("clear pending verification: %w", err)
		}

		next := domain.NextHome
		if !resp.ProfileComplete {
			next = domain.NextCompleteProfile
		}
		s.logger.Info("session started",
			zap.Int64("user_id", pending.UserID),
			zap.String("next", string(next)),
		)
		return &domain.AuthResult{
			Next:    next,
			Message: "Código verificado com sucesso!",
			User:    resp.User,
		}, nil
	}
}

// ============================================================
// ResetPassword: POST /user/password-reset
// ============================================================

// ResetPassword sets the new password with the stored reset token.
func (s *AuthService) ResetPassword(ctx context.Context, password, confirm string) (*domain.AuthResult, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.ResetPassword")
	defer span.End()

	if err := domain.ValidateNewPassword(password, confirm); err != nil {
		return nil, err
	}

	resetToken, err := s.store.ResetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("read reset token: %w", err)
	}
	if resetToken == "" {
		return nil, &domain.ErrSessionInvalid{Message: "Token de redefinição não encontrado."}
	}

	if _, err := s.api.ResetPassword(ctx, resetToken, &domain.PasswordResetRequest{NewPassword: password}); err != nil {
		return nil, err
	}

	if err := s.store.ClearResetToken(ctx); err != nil {
		return nil, fmt.Errorf("clear reset token: %w", err)
	}

	return &domain.AuthResult{
		Next:    domain.NextLogin,
		Message: "Senha redefinida com sucesso!",
	}, nil
}

// ============================================================
// Session
// ============================================================

// Logout forgets the local session.
func (s *AuthService) Logout(ctx context.Context) error {
	ctx, span := authTracer.Start(ctx, "AuthService.Logout")
	defer span.End()

	if err := s.store.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.logger.Info("session cleared")
	return nil
}

// Status reports the locally persisted session state.
func (s *AuthService) Status(ctx context.Context) (*domain.SessionStatus, error) {
	token, err := s.store.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	complete, err := s.store.ProfileComplete(ctx)
	if err != nil {
		return nil, fmt.Errorf("read profile_complete: %w", err)
	}
	name, _, err := s.store.Display(ctx)
	if err != nil {
		return nil, fmt.Errorf("read display cache: %w", err)
	}
	pending, err := s.store.Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("read pending verification: %w", err)
	}
	reset, err := s.store.ResetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("read reset token: %w", err)
	}

	return &domain.SessionStatus{
		LoggedIn:        token != "",
		ProfileComplete: token != "" && complete,
		DisplayName:     name,
		Pending:         pending,
		HasResetToken:   reset != "",
	}, nil
}

func (s *AuthService) startVerification(ctx context.Context, pending *domain.PendingVerification) error {
	if err := s.store.SavePending(ctx, pending); err != nil {
		return fmt.Errorf("save pending verification: %w", err)
	}
	_, err := s.api.SendCode(ctx, &domain.SendCodeRequest{
		UserID: pending.UserID,
		Email:  pending.Email,
		Type:   pending.Type,
	})
	return err
}

func (s *AuthService) requirePending(ctx context.Context, msg string) (*domain.PendingVerification, error) {
	pending, err := s.store.Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("read pending verification: %w", err)
	}
	if pending == nil || pending.UserID == 0 || !pending.Type.Valid() {
		return nil, &domain.ErrSessionInvalid{Message: msg}
	}
	return pending, nil
}
