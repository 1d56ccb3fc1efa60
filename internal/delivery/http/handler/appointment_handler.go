package handler

import (
	"encoding/json"
	"net/http"

	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/usecase"
	"clinic-portal/pkg/response"
	"clinic-portal/pkg/validator"
)

// BookingSuccessPath is where a successful booking continues.
const BookingSuccessPath = "/appointment/success/"

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// BookingForm handles GET /appointment/
func (h *AppointmentHandler) BookingForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.appointmentUsecase.GetFormData(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load booking form")
		return
	}

	response.Success(w, http.StatusOK, "Booking form retrieved successfully", form)
}

// Book handles POST /appointment/
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Book(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDuplicateAppointment:
			response.Warning(w, "You already have an appointment with this doctor on this date.")
		case usecase.ErrDoctorNotFound:
			response.ValidationError(w, map[string]string{"doctor": "Select a valid doctor"})
		case usecase.ErrInvalidDateFormat, usecase.ErrDateInPast:
			response.ValidationError(w, map[string]string{"date": err.Error()})
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.SuccessWithRedirect(w, http.StatusCreated, "Appointment booked successfully", appointment, BookingSuccessPath)
}

// BookingSuccess handles GET /appointment/success/
func (h *AppointmentHandler) BookingSuccess(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Your appointment request has been received. We will contact you to confirm it.", nil)
}

func (h *AppointmentHandler) GetAllAppointments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := &dto.AppointmentQuery{
		DoctorID: optionalInt64(r, "doctor"),
		Date:     q.Get("date"),
		Status:   q.Get("status"),
		Search:   q.Get("search"),
	}

	appointments, err := h.appointmentUsecase.ListAppointments(r.Context(), query)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat, usecase.ErrInvalidStatus:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to get appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.GetAppointment(r.Context(), appointmentID)
	if err != nil {
		if err == usecase.ErrAppointmentNotFound {
			response.NotFound(w, "Appointment not found")
			return
		}
		response.InternalServerError(w, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateAppointment(r.Context(), appointmentID, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrPatientNotFound:
			response.Error(w, http.StatusBadRequest, "Patient not found", nil)
		case usecase.ErrInvalidStatus:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}
