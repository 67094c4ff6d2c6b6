package controllers

import (
	"net/http"

	"github.com/smartlaundry/backend/api/middleware"
	"github.com/smartlaundry/backend/api/responses"
	"github.com/smartlaundry/backend/api/validators"
	"github.com/smartlaundry/backend/internal/identity"
	"github.com/smartlaundry/backend/pkg/enums"
	pkgerrors "github.com/smartlaundry/backend/pkg/errors"
	"github.com/smartlaundry/backend/pkg/logger"
	"github.com/smartlaundry/backend/pkg/types"
)

type generateOTPRequest struct {
	Channel string `json:"channel" validate:"required,oneof=phone email"`
}

func GenerateOTP(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateOTPRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		channel, err := enums.ParseOTPChannel(req.Channel)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "otp channel"))
			return
		}

		issued, err := svc.GenerateOTP(r.Context(), middleware.UserIDFromContext(r.Context()), channel)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, issued)
	}
}

type verifyOTPRequest struct {
	Channel string `json:"channel" validate:"required,oneof=phone email"`
	Code    string `json:"code" validate:"required,min=4,max=10"`
}

func VerifyOTP(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyOTPRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		channel, err := enums.ParseOTPChannel(req.Channel)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "otp channel"))
			return
		}

		if err := svc.VerifyOTP(r.Context(), middleware.UserIDFromContext(r.Context()), channel, req.Code); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.MessageResponse{Message: "verified"})
	}
}
