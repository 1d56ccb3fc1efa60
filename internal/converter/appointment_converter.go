package converter

import (
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:        appointment.ID,
		Name:      appointment.Name,
		Phone:     appointment.Phone,
		DoctorID:  appointment.DoctorID,
		Doctor:    DoctorToChoice(appointment.Doctor),
		Date:      appointment.Date.Format(DateLayout),
		Message:   appointment.Message,
		Status:    string(appointment.Status),
		PatientID: appointment.PatientID,
		Patient:   PatientToResponse(appointment.Patient),
		CreatedAt: appointment.CreatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
