package handler

import (
	"net/http"
	"strconv"

	"github.com/boddenberg/bankup-app-go/internal/domain"
	"github.com/boddenberg/bankup-app-go/internal/sandbox"

	"go.uber.org/zap"
)

// ============================================================
// 3. Pagadores: /payers
// ============================================================

func listPayersHandler(sb *sandbox.Sandbox, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /payers")
		defer span.End()

		payers, err := sb.ListPayers(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, payers)
	}
}

func getPayerHandler(sb *sandbox.Sandbox, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /payers/{id}")
		defer span.End()

		id, ok := pathID(w, r)
		if !ok {
			return
		}

		p, err := sb.GetPayer(ctx, UserIDFromContext(ctx), id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, p)
	}
}

func createPayerHandler(sb *sandbox.Sandbox, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /payers")
		defer span.End()

		var in domain.PayerInput
		if !decodeBody(w, r, &in) {
			return
		}

		p, err := sb.CreatePayer(ctx, UserIDFromContext(ctx), &in)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusCreated, p)
	}
}

func updatePayerHandler(sb *sandbox.Sandbox, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /payers/{id}")
		defer span.End()

		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var in domain.PayerInput
		if !decodeBody(w, r, &in) {
			return
		}

		p, err := sb.UpdatePayer(ctx, UserIDFromContext(ctx), id, &in)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, p)
	}
}

func deletePayerHandler(sb *sandbox.Sandbox, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /payers/{id}")
		defer span.End()

		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := sb.DeletePayer(ctx, UserIDFromContext(ctx), id); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ============================================================
// 4. Cobranças: /payments
// ============================================================

func listChargesHandler(sb *sandbox.Sandbox, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /payments")
		defer span.End()

		var payerID int64
		if v := r.URL.Query().Get("payer_id"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil || id <= 0 {
				writeError(w, http.StatusBadRequest, "payer_id inválido.")
				return
			}
			payerID = id
		}

		charges, err := sb.ListCharges(ctx, UserIDFromContext(ctx), payerID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, charges)
	}
}

func getChargeHandler(sb *sandbox.Sandbox, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /payments/{id}")
		defer span.End()

		id, ok := pathID(w, r)
		if !ok {
			return
		}

		c, err := sb.GetCharge(ctx, UserIDFromContext(ctx), id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, c)
	}
}

func createChargeHandler(sb *sandbox.Sandbox, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /payments")
		defer span.End()

		var in domain.ChargeInput
		if !decodeBody(w, r, &in) {
			return
		}

		c, err := sb.CreateCharge(ctx, UserIDFromContext(ctx), &in)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusCreated, c)
	}
}

// chargePatch accepts either a full charge body or only {status}.
type chargePatch struct {
	domain.ChargeInput
	Status domain.ChargeStatus `json:"status"`
}

func updateChargeHandler(sb *sandbox.Sandbox, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /payments/{id}")
		defer span.End()

		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var patch chargePatch
		if !decodeBody(w, r, &patch) {
			return
		}

		var (
			c   *domain.Charge
			err error
		)
		if patch.Status != "" && patch.PayerID == 0 {
			c, err = sb.SetChargeStatus(ctx, UserIDFromContext(ctx), id, patch.Status)
		} else {
			c, err = sb.UpdateCharge(ctx, UserIDFromContext(ctx), id, &patch.ChargeInput)
		}
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, c)
	}
}

func deleteChargeHandler(sb *sandbox.Sandbox, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /payments/{id}")
		defer span.End()

		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := sb.DeleteCharge(ctx, UserIDFromContext(ctx), id); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ============================================================
// 5. Notificações: /notifications
// ============================================================

func listNotificationsHandler(sb *sandbox.Sandbox, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /notifications")
		defer span.End()

		items, err := sb.ListNotifications(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, items)
	}
}
