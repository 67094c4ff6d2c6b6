package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartlaundry/backend/api/middleware"
	"github.com/smartlaundry/backend/api/responses"
	"github.com/smartlaundry/backend/api/validators"
	"github.com/smartlaundry/backend/internal/payments"
	"github.com/smartlaundry/backend/pkg/logger"
)

func PaymentList(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context(), middleware.UserIDFromContext(r.Context()), middleware.IsAdmin(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func PaymentDetail(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		paymentID, err := validators.ParsePathID(chi.URLParam(r, "paymentId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.Get(r.Context(), middleware.UserIDFromContext(r.Context()), paymentID, middleware.IsAdmin(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payment)
	}
}
