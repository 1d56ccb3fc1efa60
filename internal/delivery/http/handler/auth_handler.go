package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"clinic-portal/config"
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/delivery/http/middleware"
	"clinic-portal/internal/usecase"
	"clinic-portal/pkg/response"
	"clinic-portal/pkg/validator"
)

const (
	StaffHomePath       = "/admin/"
	DoctorDashboardPath = "/doctor/dashboard/"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
	session     config.SessionConfig
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator, session config.SessionConfig) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
		session:     session,
	}
}

// LoginPage handles GET /staff/login/
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Login forms retrieved successfully", h.authUsecase.LoginPage(r.Context()))
}

// StaffLogin handles POST /staff/login/
func (h *AuthHandler) StaffLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.authUsecase.StaffLogin(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrStaffOnly:
			response.Unauthorized(w, "Invalid credentials or insufficient permissions")
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	h.setSessionCookie(w, session)
	response.SuccessWithRedirect(w, http.StatusOK, "Login successful", session, StaffHomePath)
}

// DoctorLogin handles POST /doctor/login/
func (h *AuthHandler) DoctorLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.authUsecase.DoctorLogin(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Unauthorized(w, "Invalid username or password")
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	h.setSessionCookie(w, session)
	response.SuccessWithRedirect(w, http.StatusOK, "Login successful", session, DoctorDashboardPath)
}

// Logout handles GET /doctor/logout/
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authUsecase.Logout(r.Context()); err != nil {
		response.InternalServerError(w, "Failed to logout")
		return
	}

	h.clearSessionCookie(w)
	response.Redirect(w, middleware.LoginPath, "Logout successful")
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, session *dto.SessionResponse) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(session.ExpiresIn),
		Expires:  time.Now().Add(time.Duration(session.ExpiresIn) * time.Second),
		HttpOnly: true,
		Secure:   h.session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
