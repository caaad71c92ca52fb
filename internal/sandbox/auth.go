package sandbox

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/boddenberg/bankup-app-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ============================================================
// Register: POST /user/register
// ============================================================

func (s *Sandbox) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.RegisterResponse, error) {
	_, span := tracer.Start(ctx, "Sandbox.Register")
	defer span.End()

	email := normalizeEmail(req.Email)
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := domain.ValidateNewPassword(req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return nil, &domain.ErrConflict{Message: "E-mail já cadastrado."}
	}

	s.nextAccountID++
	id := s.nextAccountID
	s.accounts[id] = &account{
		id:           id,
		passwordHash: hash,
		profile:      domain.User{ID: id, Email: email},
		createdAt:    s.now(),
	}
	s.byEmail[email] = id

	span.SetAttributes(attribute.Int64("user.id", id))
	s.logger.Info("sandbox: user registered", zap.Int64("user_id", id))
	return &domain.RegisterResponse{ID: id, Message: "Usuário cadastrado com sucesso."}, nil
}

// ============================================================
// Login: POST /user/login
// ============================================================

// Login checks credentials only. The session token is issued after the
// login code is verified, so unverified accounts may log in too.
func (s *Sandbox) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	_, span := tracer.Start(ctx, "Sandbox.Login")
	defer span.End()

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, &domain.ErrValidation{Field: "credentials", Message: "Por favor, preencha todos os campos."}
	}

	s.mu.RLock()
	acc := s.accountByEmail(email)
	s.mu.RUnlock()

	if acc == nil || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.Password)) != nil {
		s.logger.Warn("sandbox: login failed", zap.String("email", email))
		return nil, &domain.ErrUnauthorized{Message: "E-mail ou senha incorretos."}
	}

	return &domain.LoginResponse{UserID: acc.id, Message: "Login realizado. Verifique o código enviado."}, nil
}

// ============================================================
// SendCode: POST /user/send-code
// ============================================================

// SendCode issues a six-digit code. The user is looked up by id, or by
// email when the id is absent (forgot password).
func (s *Sandbox) SendCode(ctx context.Context, req *domain.SendCodeRequest) (*domain.SendCodeResponse, error) {
	_, span := tracer.Start(ctx, "Sandbox.SendCode")
	defer span.End()

	if !req.Type.Valid() {
		return nil, &domain.ErrValidation{Field: "type", Message: "Tipo de código inválido."}
	}

	code, err := generateVerificationCode()
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var acc *account
	if req.UserID > 0 {
		acc = s.accounts[req.UserID]
	} else {
		acc = s.accountByEmail(normalizeEmail(req.Email))
	}
	if acc == nil {
		return nil, &domain.ErrNotFound{Resource: "Usuário", ID: firstNonEmpty(req.Email, fmt.Sprint(req.UserID))}
	}

	issued := issuedCode{
		userID:    acc.id,
		email:     acc.profile.Email,
		code:      code,
		kind:      req.Type,
		expiresAt: s.now().Add(s.opts.CodeTTL),
	}
	if s.codes[acc.id] == nil {
		s.codes[acc.id] = make(map[domain.VerificationType]issuedCode)
	}
	s.codes[acc.id][req.Type] = issued
	s.lastCode[acc.profile.Email] = issued
	s.metrics.IncrCodeIssued(string(req.Type))

	span.SetAttributes(attribute.Int64("user.id", acc.id), attribute.String("verification.type", string(req.Type)))
	s.logger.Info("sandbox: verification code issued",
		zap.Int64("user_id", acc.id),
		zap.String("type", string(req.Type)),
	)
	return &domain.SendCodeResponse{UserID: acc.id, Message: "Código enviado para o seu e-mail."}, nil
}

// ============================================================
// VerifyCode: POST /user/verify-code
// ============================================================

// VerifyCode consumes a code. Login and account verification yield a
// session token; password_reset yields a reset token.
func (s *Sandbox) VerifyCode(ctx context.Context, req *domain.VerifyCodeRequest) (*domain.VerifyCodeResponse, error) {
	_, span := tracer.Start(ctx, "Sandbox.VerifyCode")
	defer span.End()

	if err := domain.ValidateCode(strings.TrimSpace(req.Code)); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc := s.accounts[req.UserID]
	if acc == nil {
		return nil, &domain.ErrInvalidCode{}
	}
	issued, ok := s.codes[acc.id][req.Type]
	if !ok || issued.code != strings.TrimSpace(req.Code) || s.now().After(issued.expiresAt) {
		s.logger.Warn("sandbox: invalid verification code",
			zap.Int64("user_id", acc.id),
			zap.String("type", string(req.Type)),
		)
		return nil, &domain.ErrInvalidCode{}
	}
	delete(s.codes[acc.id], req.Type)
	acc.verified = true

	if req.Type == domain.VerificationPassword {
		token, err := s.signToken(acc.id, tokenReset, resetTTL)
		if err != nil {
			return nil, fmt.Errorf("sign reset token: %w", err)
		}
		return &domain.VerifyCodeResponse{ResetToken: token, Message: "Código verificado."}, nil
	}

	token, err := s.signToken(acc.id, tokenAccess, s.opts.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	user := acc.profile
	return &domain.VerifyCodeResponse{
		Token:           token,
		ProfileComplete: user.IsComplete(),
		User:            &user,
		Message:         "Código verificado.",
	}, nil
}

// ============================================================
// ResetPassword: POST /user/password-reset
// ============================================================

// ResetPassword sets a new password. Each reset token works once.
func (s *Sandbox) ResetPassword(ctx context.Context, resetToken string, req *domain.PasswordResetRequest) (*domain.MessageResponse, error) {
	_, span := tracer.Start(ctx, "Sandbox.ResetPassword")
	defer span.End()

	claims, err := s.parseToken(resetToken, tokenReset)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(req.NewPassword); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, used := s.usedResets[claims.ID]; used {
		return nil, &domain.ErrUnauthorized{Message: "Token de redefinição já utilizado."}
	}
	acc := s.accounts[claims.UserID()]
	if acc == nil {
		return nil, &domain.ErrUnauthorized{Message: "Usuário não encontrado."}
	}
	acc.passwordHash = hash
	s.usedResets[claims.ID] = s.now()

	s.logger.Info("sandbox: password reset", zap.Int64("user_id", acc.id))
	return &domain.MessageResponse{Message: "Senha redefinida com sucesso!"}, nil
}

// LastCode returns the last code issued to email (GET /dev/codes).
func (s *Sandbox) LastCode(email string) (*domain.DevCodeResponse, error) {
	email = normalizeEmail(email)

	s.mu.RLock()
	defer s.mu.RUnlock()

	issued, ok := s.lastCode[email]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "Código", ID: email}
	}
	return &domain.DevCodeResponse{
		Email:     issued.email,
		UserID:    issued.userID,
		Code:      issued.code,
		Type:      issued.kind,
		ExpiresAt: issued.expiresAt,
	}, nil
}

// ============================================================
// Internal helpers
// ============================================================

func (s *Sandbox) accountByEmail(email string) *account {
	id, ok := s.byEmail[email]
	if !ok {
		return nil
	}
	return s.accounts[id]
}

func generateVerificationCode() (string, error) {
	var b strings.Builder
	for i := 0; i < domain.CodeLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteString(n.String())
	}
	return b.String(), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
