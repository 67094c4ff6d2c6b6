package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartlaundry/backend/api/middleware"
	"github.com/smartlaundry/backend/api/responses"
	"github.com/smartlaundry/backend/api/validators"
	"github.com/smartlaundry/backend/internal/cart"
	"github.com/smartlaundry/backend/pkg/logger"
)

func CartList(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

type cartAddRequest struct {
	ServiceID int64  `json:"service_id" validate:"required,gt=0"`
	OptionID  *int64 `json:"option_id" validate:"omitempty,gt=0"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

func CartAdd(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cartAddRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Add(r.Context(), cart.AddParams{
			UserID:    middleware.UserIDFromContext(r.Context()),
			ServiceID: req.ServiceID,
			OptionID:  req.OptionID,
			Quantity:  req.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

type cartUpdateRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

func CartUpdateQuantity(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.ParsePathID(chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req cartUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateQuantity(r.Context(), middleware.UserIDFromContext(r.Context()), itemID, req.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CartRemove deletes one line. Reuses the quantity update path with zero.
func CartRemove(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.ParsePathID(chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateQuantity(r.Context(), middleware.UserIDFromContext(r.Context()), itemID, 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		removed, err := svc.Clear(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int64{"removed": removed})
	}
}

func CartSummary(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.Summary(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
