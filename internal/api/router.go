package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/seojinp/point-ledger/internal/api/httpx"
	"github.com/seojinp/point-ledger/internal/api/validate"
	"github.com/seojinp/point-ledger/internal/config"
	"github.com/seojinp/point-ledger/internal/metrics"
	"github.com/seojinp/point-ledger/internal/middleware"
	"github.com/seojinp/point-ledger/internal/models"
	"github.com/seojinp/point-ledger/internal/services"
)

type amountBody struct {
	Amount int64 `json:"amount"`
}

func NewRouter(cfg config.Config, ps *services.PointService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/point", func(r chi.Router) {
		// current balance
		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			userID, ef := validate.UserID(chi.URLParam(r, "id"))
			if ef != nil {
				httpx.WriteError(w, http.StatusBadRequest, "invalid_user_id", ef.Msg, validate.Errs{*ef})
				return
			}
			up, err := ps.GetPoint(r.Context(), userID)
			if err != nil {
				metrics.OperationsTotal.WithLabelValues("get", "error").Inc()
				httpx.WriteError(w, http.StatusInternalServerError, "internal_error", err.Error(), nil)
				return
			}
			metrics.OperationsTotal.WithLabelValues("get", "ok").Inc()
			httpx.WriteJSON(w, http.StatusOK, up)
		})

		// charge / use history
		r.Get("/{id}/histories", func(w http.ResponseWriter, r *http.Request) {
			userID, ef := validate.UserID(chi.URLParam(r, "id"))
			if ef != nil {
				httpx.WriteError(w, http.StatusBadRequest, "invalid_user_id", ef.Msg, validate.Errs{*ef})
				return
			}
			hs, err := ps.GetHistories(r.Context(), userID)
			if err != nil {
				metrics.OperationsTotal.WithLabelValues("histories", "error").Inc()
				httpx.WriteError(w, http.StatusInternalServerError, "internal_error", err.Error(), nil)
				return
			}
			if hs == nil {
				hs = []models.PointHistory{}
			}
			metrics.OperationsTotal.WithLabelValues("histories", "ok").Inc()
			httpx.WriteJSON(w, http.StatusOK, hs)
		})

		r.Patch("/{id}/charge", mutation("charge", ps.Charge))
		r.Patch("/{id}/use", mutation("use", ps.Use))
	})

	return r
}

type mutateFunc func(ctx context.Context, userID, amount int64) (models.UserPoint, error)

// mutation builds the handler for charge and use, which differ only in the
// service call they dispatch to.
func mutation(op string, fn mutateFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ef := validate.UserID(chi.URLParam(r, "id"))
		if ef != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_user_id", ef.Msg, validate.Errs{*ef})
			return
		}
		var body amountBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "bad_request", "malformed body", nil)
			return
		}
		up, err := fn(r.Context(), userID, body.Amount)
		switch {
		case errors.Is(err, services.ErrInvalidAmount):
			metrics.OperationsTotal.WithLabelValues(op, "rejected").Inc()
			httpx.WriteError(w, http.StatusBadRequest, "invalid_amount", err.Error(), nil)
		case errors.Is(err, services.ErrInsufficientBalance):
			metrics.OperationsTotal.WithLabelValues(op, "rejected").Inc()
			httpx.WriteError(w, http.StatusBadRequest, "insufficient_balance", err.Error(), nil)
		case err != nil:
			metrics.OperationsTotal.WithLabelValues(op, "error").Inc()
			httpx.WriteError(w, http.StatusInternalServerError, "internal_error", err.Error(), nil)
		default:
			metrics.OperationsTotal.WithLabelValues(op, "ok").Inc()
			httpx.WriteJSON(w, http.StatusOK, up)
		}
	}
}
