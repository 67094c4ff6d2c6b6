package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/smartlaundry/backend/api/middleware"
	"github.com/smartlaundry/backend/api/responses"
	"github.com/smartlaundry/backend/api/validators"
	"github.com/smartlaundry/backend/internal/catalog"
	"github.com/smartlaundry/backend/pkg/logger"
)

func ListCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

func CategoryServices(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.ParsePathID(chi.URLParam(r, "categoryId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		services, err := svc.ListCategoryServices(r.Context(), categoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, services)
	}
}

func ListServices(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		search := strings.TrimSpace(r.URL.Query().Get("search"))
		services, err := svc.ListServices(r.Context(), search)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, services)
	}
}

func ServiceDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serviceID, err := validators.ParsePathID(chi.URLParam(r, "serviceId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.GetServiceDetail(r.Context(), serviceID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

func ServiceOptions(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serviceID, err := validators.ParsePathID(chi.URLParam(r, "serviceId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		options, err := svc.ListOptions(r.Context(), serviceID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, options)
	}
}

func ServiceReviews(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serviceID, err := validators.ParsePathID(chi.URLParam(r, "serviceId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reviews, err := svc.ListReviews(r.Context(), serviceID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, reviews)
	}
}

type createReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

func CreateServiceReview(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serviceID, err := validators.ParsePathID(chi.URLParam(r, "serviceId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createReviewRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		review, err := svc.CreateReview(r.Context(), catalog.CreateReviewParams{
			ServiceID: serviceID,
			UserID:    middleware.UserIDFromContext(r.Context()),
			Rating:    req.Rating,
			Comment:   req.Comment,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, review)
	}
}
