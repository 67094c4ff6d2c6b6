package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/smartlaundry/backend/api/responses"
	"github.com/smartlaundry/backend/api/validators"
	"github.com/smartlaundry/backend/internal/content"
	"github.com/smartlaundry/backend/pkg/logger"
	"github.com/smartlaundry/backend/pkg/types"
)

func FAQList(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		faqs, err := svc.ListFAQs(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, faqs)
	}
}

func FAQCategories(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListFAQCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

func SiteConfigList(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		configs, err := svc.ListConfigurations(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, configs)
	}
}

func SiteConfigByKey(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		config, err := svc.GetConfiguration(r.Context(), chi.URLParam(r, "key"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, config)
	}
}

func BannerList(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		banners, err := svc.ListLiveBanners(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, banners)
	}
}

type contactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=15"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

func ContactSubmit(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contactRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		msg, err := svc.SubmitContact(r.Context(), content.ContactParams{
			Name:    validators.SanitizeString(req.Name, 100),
			Email:   validators.SanitizeString(req.Email, 255),
			Phone:   validators.SanitizeString(req.Phone, 15),
			Subject: validators.SanitizeString(req.Subject, 200),
			Message: validators.SanitizeString(req.Message, 5000),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, msg)
	}
}

func AdminContactList(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := svc.ListContactMessages(r.Context(), strings.TrimSpace(r.URL.Query().Get("status")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, messages)
	}
}

type contactStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new read replied closed"`
}

func AdminContactUpdateStatus(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, err := validators.ParsePathID(chi.URLParam(r, "messageId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req contactStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UpdateContactStatus(r.Context(), messageID, req.Status); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.MessageResponse{Message: "status updated"})
	}
}
