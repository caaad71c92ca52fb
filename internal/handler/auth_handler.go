package handler

import (
	"net/http"

	"github.com/boddenberg/bankup-app-go/internal/domain"
	"github.com/boddenberg/bankup-app-go/internal/sandbox"

	"go.uber.org/zap"
)

// ============================================================
// 1. Usuário: cadastro, login e códigos
// ============================================================

func registerHandler(sb *sandbox.Sandbox, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /user/register")
		defer span.End()

		var req domain.RegisterRequest
		if !decodeBody(w, r, &req) {
			return
		}

		resp, err := sb.Register(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusCreated, resp)
	}
}

func loginHandler(sb *sandbox.Sandbox, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /user/login")
		defer span.End()

		var req domain.LoginRequest
		if !decodeBody(w, r, &req) {
			return
		}

		resp, err := sb.Login(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func sendCodeHandler(sb *sandbox.Sandbox, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /user/send-code")
		defer span.End()

		var req domain.SendCodeRequest
		if !decodeBody(w, r, &req) {
			return
		}

		resp, err := sb.SendCode(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func verifyCodeHandler(sb *sandbox.Sandbox, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /user/verify-code")
		defer span.End()

		var req domain.VerifyCodeRequest
		if !decodeBody(w, r, &req) {
			return
		}

		resp, err := sb.VerifyCode(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func passwordResetHandler(sb *sandbox.Sandbox, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /user/password-reset")
		defer span.End()

		resetToken, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Token de redefinição não fornecido.")
			return
		}

		var req domain.PasswordResetRequest
		if !decodeBody(w, r, &req) {
			return
		}

		resp, err := sb.ResetPassword(ctx, resetToken, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// ============================================================
// 2. Perfil
// ============================================================

func getProfileHandler(sb *sandbox.Sandbox, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /user/profile")
		defer span.End()

		u, err := sb.Profile(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, u)
	}
}

func completeProfileHandler(sb *sandbox.Sandbox, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /user/profile")
		defer span.End()

		var in domain.ProfileInput
		if !decodeBody(w, r, &in) {
			return
		}

		u, err := sb.CompleteProfile(ctx, UserIDFromContext(ctx), &in)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, u)
	}
}

func updateProfileHandler(sb *sandbox.Sandbox, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /user/profile")
		defer span.End()

		var in domain.ProfileInput
		if !decodeBody(w, r, &in) {
			return
		}

		u, err := sb.UpdateProfile(ctx, UserIDFromContext(ctx), &in)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, u)
	}
}
