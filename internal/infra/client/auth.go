package client

import (
	"context"
	"net/http"

	"github.com/boddenberg/bankup-app-go/internal/domain"
)

// ============================================================
// /user: registration, login, one-time codes, password reset
// ============================================================

// Register creates an account. POST /user/register
func (c *Client) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.RegisterResponse, error) {
	var out domain.RegisterResponse
	err := c.do(ctx, call{
		op:       "Register",
		method:   http.MethodPost,
		path:     "/user/register",
		body:     req,
		out:      &out,
		fallback: "Erro ao Tentar Cadastrar. Tente outro e-mail.",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login checks credentials and returns the user id the code goes to. POST /user/login
func (c *Client) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	var out domain.LoginResponse
	err := c.do(ctx, call{
		op:       "Login",
		method:   http.MethodPost,
		path:     "/user/login",
		body:     req,
		out:      &out,
		fallback: "E-mail ou senha inválidos.",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SendCode emails a one-time code. POST /user/send-code
func (c *Client) SendCode(ctx context.Context, req *domain.SendCodeRequest) (*domain.SendCodeResponse, error) {
	var out domain.SendCodeResponse
	err := c.do(ctx, call{
		op:       "SendCode",
		method:   http.MethodPost,
		path:     "/user/send-code",
		body:     req,
		out:      &out,
		fallback: "Erro ao enviar o código de verificação.",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyCode checks a one-time code. POST /user/verify-code
func (c *Client) VerifyCode(ctx context.Context, req *domain.VerifyCodeRequest) (*domain.VerifyCodeResponse, error) {
	var out domain.VerifyCodeResponse
	err := c.do(ctx, call{
		op:       "VerifyCode",
		method:   http.MethodPost,
		path:     "/user/verify-code",
		body:     req,
		out:      &out,
		fallback: (&domain.ErrInvalidCode{}).Error(),
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword sets a new password with the reset token from VerifyCode.
// POST /user/password-reset
func (c *Client) ResetPassword(ctx context.Context, resetToken string, req *domain.PasswordResetRequest) (*domain.MessageResponse, error) {
	var out domain.MessageResponse
	err := c.do(ctx, call{
		op:       "ResetPassword",
		method:   http.MethodPost,
		path:     "/user/password-reset",
		body:     req,
		out:      &out,
		auth:     authExplicit,
		token:    resetToken,
		fallback: "Não foi possível redefinir a senha. O token pode ter expirado.",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
