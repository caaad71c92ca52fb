package handler

import (
	"net/http"

	"github.com/boddenberg/bankup-app-go/internal/sandbox"

	"go.uber.org/zap"
)

// ============================================================
// Dev Tools Handlers
// ============================================================

// devCodesHandler returns the last code issued to ?email=, so local runs and
// end-to-end tests can finish the verification flow without a mailbox.
func devCodesHandler(sb *sandbox.Sandbox, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /dev/codes")
		defer span.End()

		email := r.URL.Query().Get("email")
		if email == "" {
			writeError(w, http.StatusBadRequest, "Informe o e-mail.")
			return
		}

		resp, err := sb.LastCode(email)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
