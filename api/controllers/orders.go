package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/smartlaundry/backend/api/middleware"
	"github.com/smartlaundry/backend/api/responses"
	"github.com/smartlaundry/backend/api/validators"
	"github.com/smartlaundry/backend/internal/orders"
	"github.com/smartlaundry/backend/pkg/enums"
	pkgerrors "github.com/smartlaundry/backend/pkg/errors"
	"github.com/smartlaundry/backend/pkg/logger"
	"github.com/smartlaundry/backend/pkg/pagination"
)

type orderItemRequest struct {
	ServiceID int64  `json:"service_id" validate:"required,gt=0"`
	OptionID  *int64 `json:"option_id" validate:"omitempty,gt=0"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type createOrderRequest struct {
	Items               []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod       string             `json:"payment_method" validate:"required,oneof=cod online wallet"`
	PickupAddress       string             `json:"pickup_address" validate:"required,max=500"`
	DeliveryAddress     string             `json:"delivery_address" validate:"required,max=500"`
	PickupDate          *time.Time         `json:"pickup_date"`
	PickupTimeSlot      string             `json:"pickup_time_slot" validate:"max=50"`
	DeliveryDate        *time.Time         `json:"delivery_date"`
	DeliveryTimeSlot    string             `json:"delivery_time_slot" validate:"max=50"`
	SpecialInstructions string             `json:"special_instructions" validate:"max=1000"`
	Notes               string             `json:"notes" validate:"max=1000"`
}

func OrderCreate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(req.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "payment method"))
			return
		}

		items := make([]orders.ItemParams, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, orders.ItemParams{
				ServiceID: item.ServiceID,
				OptionID:  item.OptionID,
				Quantity:  item.Quantity,
			})
		}

		order, err := svc.Create(r.Context(), orders.CreateParams{
			UserID:              middleware.UserIDFromContext(r.Context()),
			Items:               items,
			PaymentMethod:       method,
			PickupAddress:       req.PickupAddress,
			DeliveryAddress:     req.DeliveryAddress,
			PickupDate:          req.PickupDate,
			PickupTimeSlot:      req.PickupTimeSlot,
			DeliveryDate:        req.DeliveryDate,
			DeliveryTimeSlot:    req.DeliveryTimeSlot,
			SpecialInstructions: req.SpecialInstructions,
			Notes:               req.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func OrderList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var status enums.OrderStatus
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			parsed, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "status filter"))
				return
			}
			status = parsed
		}

		result, err := svc.List(r.Context(), orders.ListParams{
			UserID:  middleware.UserIDFromContext(r.Context()),
			IsAdmin: middleware.IsAdmin(r.Context()),
			Status:  status,
			Limit:   limit,
			Cursor:  strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func OrderDetail(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParsePathID(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), middleware.UserIDFromContext(r.Context()), orderID, middleware.IsAdmin(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func OrderTracking(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParsePathID(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := svc.Tracking(r.Context(), middleware.UserIDFromContext(r.Context()), orderID, middleware.IsAdmin(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

func OrderCancel(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParsePathID(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Cancel(r.Context(), middleware.UserIDFromContext(r.Context()), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

type updateOrderStatusRequest struct {
	Status      string `json:"status" validate:"required"`
	Description string `json:"description" validate:"max=500"`
	Location    string `json:"location" validate:"max=255"`
}

func AdminOrderUpdateStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParsePathID(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "order status"))
			return
		}

		order, err := svc.UpdateStatus(r.Context(), orders.UpdateStatusParams{
			OrderID:     orderID,
			Status:      status,
			Description: req.Description,
			Location:    req.Location,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
