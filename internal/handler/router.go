package handler

import (
	"net/http"

	"github.com/boddenberg/bankup-app-go/internal/infra/observability"
	"github.com/boddenberg/bankup-app-go/internal/sandbox"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// NewRouter creates the HTTP router of the sandbox server with all routes
// and middleware. Routes follow the BankUp REST contract.
func NewRouter(sb *sandbox.Sandbox, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger, metrics))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(sb))
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	if sb.DevCodesEnabled() {
		r.Get("/dev/codes", devCodesHandler(sb, logger))
	}

	// =============================================
	// 1. Usuário (sem autenticação)
	// =============================================
	r.Route("/user", func(r chi.Router) {
		r.Post("/register", registerHandler(sb, logger))
		r.Post("/login", loginHandler(sb, logger))
		r.Post("/send-code", sendCodeHandler(sb, logger))
		r.Post("/verify-code", verifyCodeHandler(sb, logger))
		// Authenticated by the reset token, not the session token.
		r.Post("/password-reset", passwordResetHandler(sb, logger))

		// =============================================
		// 2. Perfil
		// =============================================
		r.Group(func(r chi.Router) {
			r.Use(JWTAuthMiddleware(sb, logger))
			r.Get("/profile", getProfileHandler(sb, logger))
			r.Post("/profile", completeProfileHandler(sb, logger))
			r.Patch("/profile", updateProfileHandler(sb, logger))
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(JWTAuthMiddleware(sb, logger))

		// =============================================
		// 3. Pagadores
		// =============================================
		r.Route("/payers", func(r chi.Router) {
			r.Get("/", listPayersHandler(sb, logger))
			r.Post("/", createPayerHandler(sb, logger))
			r.Get("/{id}", getPayerHandler(sb, logger))
			r.Patch("/{id}", updatePayerHandler(sb, logger))
			r.Delete("/{id}", deletePayerHandler(sb, logger))
		})

		// =============================================
		// 4. Cobranças
		// =============================================
		r.Route("/payments", func(r chi.Router) {
			r.Get("/", listChargesHandler(sb, logger))
			r.Post("/", createChargeHandler(sb, logger))
			r.Get("/{id}", getChargeHandler(sb, logger))
			r.Patch("/{id}", updateChargeHandler(sb, logger))
			r.Delete("/{id}", deleteChargeHandler(sb, logger))
		})

		// =============================================
		// 5. Notificações
		// =============================================
		r.Get("/notifications", listNotificationsHandler(sb, logger))
	})

	return r
}

func healthzHandler(sb *sandbox.Sandbox) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, sb.Health())
	}
}
