package controllers

import (
	"net/http"

	"github.com/smartlaundry/backend/api/middleware"
	"github.com/smartlaundry/backend/api/responses"
	"github.com/smartlaundry/backend/api/validators"
	"github.com/smartlaundry/backend/internal/identity"
	"github.com/smartlaundry/backend/internal/orders"
	"github.com/smartlaundry/backend/pkg/logger"
	"github.com/smartlaundry/backend/pkg/types"
)

type registerRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,min=10,max=15"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	FirstName       string `json:"first_name" validate:"required,max=100"`
	LastName        string `json:"last_name" validate:"max=100"`
}

func AuthRegister(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Register(r.Context(), identity.RegisterParams{
			Email:           req.Email,
			Phone:           req.Phone,
			Password:        req.Password,
			ConfirmPassword: req.ConfirmPassword,
			FirstName:       req.FirstName,
			LastName:        req.LastName,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,min=10,max=15"`
	Password string `json:"password" validate:"required"`
}

func AuthLogin(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), identity.LoginParams{
			Email:    req.Email,
			Phone:    req.Phone,
			Password: req.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

type refreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func AuthRefresh(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pair, err := svc.Refresh(r.Context(), req.AccessToken, req.RefreshToken)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, pair)
	}
}

func AuthLogout(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context(), middleware.UserIDFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.MessageResponse{Message: "logged out"})
	}
}

func ProfileGet(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := svc.GetProfile(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

type updateProfileRequest struct {
	FirstName    *string `json:"first_name" validate:"omitempty,max=100"`
	LastName     *string `json:"last_name" validate:"omitempty,max=100"`
	AddressLine1 *string `json:"address_line1" validate:"omitempty,max=255"`
	AddressLine2 *string `json:"address_line2" validate:"omitempty,max=255"`
	City         *string `json:"city" validate:"omitempty,max=100"`
	State        *string `json:"state" validate:"omitempty,max=100"`
	Pincode      *string `json:"pincode" validate:"omitempty,max=10"`
	Country      *string `json:"country" validate:"omitempty,max=100"`
}

func ProfileUpdate(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateProfileRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.UpdateProfile(r.Context(), middleware.UserIDFromContext(r.Context()), identity.UpdateProfileParams{
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			AddressLine1: req.AddressLine1,
			AddressLine2: req.AddressLine2,
			City:         req.City,
			State:        req.State,
			Pincode:      req.Pincode,
			Country:      req.Country,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

func ChangePassword(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req changePasswordRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ChangePassword(r.Context(), middleware.UserIDFromContext(r.Context()), req.OldPassword, req.NewPassword); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.MessageResponse{Message: "password changed"})
	}
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func ForgotPassword(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req forgotPasswordRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		issued, err := svc.ForgotPassword(r.Context(), req.Email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, issued)
	}
}

type resetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

func ResetPassword(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resetPasswordRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.MessageResponse{Message: "password reset"})
	}
}

// Dashboard aggregates the account home screen from the orders domain.
func Dashboard(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dashboard, err := svc.Dashboard(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dashboard)
	}
}
