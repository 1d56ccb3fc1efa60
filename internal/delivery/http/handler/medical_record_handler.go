package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/usecase"
	"clinic-portal/pkg/response"
	"clinic-portal/pkg/validator"
)

type MedicalRecordHandler struct {
	medicalRecordUsecase usecase.MedicalRecordUsecase
	validator            *validator.CustomValidator
}

func NewMedicalRecordHandler(medicalRecordUsecase usecase.MedicalRecordUsecase, validator *validator.CustomValidator) *MedicalRecordHandler {
	return &MedicalRecordHandler{
		medicalRecordUsecase: medicalRecordUsecase,
		validator:            validator,
	}
}

// PatientCard handles GET /patient-card/{appointment_id}/
func (h *MedicalRecordHandler) PatientCard(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := pathID(r, "appointment_id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	card, err := h.medicalRecordUsecase.GetPatientCard(r.Context(), appointmentID)
	if err != nil {
		if err == usecase.ErrAppointmentNotFound {
			response.NotFound(w, "Appointment not found")
			return
		}
		response.InternalServerError(w, "Failed to get patient card")
		return
	}

	response.Success(w, http.StatusOK, "Patient card retrieved successfully", card)
}

// CreateForm handles GET /appointment/{id}/create-record/
func (h *MedicalRecordHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	form, err := h.medicalRecordUsecase.GetCreateForm(r.Context(), appointmentID)
	if err != nil {
		if err == usecase.ErrAppointmentNotFound {
			response.NotFound(w, "Appointment not found")
			return
		}
		response.InternalServerError(w, "Failed to load medical record form")
		return
	}

	response.Success(w, http.StatusOK, "Medical record form retrieved successfully", form)
}

// Create handles POST /appointment/{id}/create-record/
func (h *MedicalRecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.CreateMedicalRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.medicalRecordUsecase.CreateRecord(r.Context(), appointmentID, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrServiceNotFound:
			response.ValidationError(w, map[string]string{"services": "Select valid services"})
		case usecase.ErrSimilarRecordExists:
			response.Warning(w, "A similar medical record was already created today.")
		default:
			response.InternalServerError(w, "Failed to create medical record")
		}
		return
	}

	redirect := fmt.Sprintf("/patient-card/%d/", appointmentID)
	response.SuccessWithRedirect(w, http.StatusCreated, "Medical record created successfully", record, redirect)
}

// ListByAppointment handles GET /appointment/{id}/medical-records/
func (h *MedicalRecordHandler) ListByAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	records, err := h.medicalRecordUsecase.ListByAppointment(r.Context(), appointmentID)
	if err != nil {
		if err == usecase.ErrAppointmentNotFound {
			response.NotFound(w, "Appointment not found")
			return
		}
		response.InternalServerError(w, "Failed to get medical records")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Medical records retrieved successfully", records, &response.Meta{Total: int64(records.Total)})
}

func (h *MedicalRecordHandler) Search(w http.ResponseWriter, r *http.Request) {
	records, err := h.medicalRecordUsecase.Search(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		response.InternalServerError(w, "Failed to search medical records")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Medical records retrieved successfully", records, &response.Meta{Total: int64(records.Total)})
}
