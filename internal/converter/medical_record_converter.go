package converter

import (
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
)

// MedicalRecordToResponse converts a MedicalRecord entity to MedicalRecordResponse DTO
func MedicalRecordToResponse(record *entity.MedicalRecord) *dto.MedicalRecordResponse {
	if record == nil {
		return nil
	}

	response := &dto.MedicalRecordResponse{
		ID:              record.ID,
		AppointmentID:   record.AppointmentID,
		DoctorID:        record.DoctorID,
		Doctor:          DoctorToChoice(record.Doctor),
		PatientID:       record.PatientID,
		Diagnosis:       record.Diagnosis,
		Treatment:       record.Treatment,
		Recommendations: record.Recommendations,
		Services:        ServicesToResponses(record.Services),
		CreatedAt:       record.CreatedAt,
	}
	if record.Appointment != nil {
		response.PatientName = record.Appointment.Name
	}
	return response
}

// MedicalRecordsToResponses converts a slice of MedicalRecord entities to slice of MedicalRecordResponse DTOs
func MedicalRecordsToResponses(records []entity.MedicalRecord) []dto.MedicalRecordResponse {
	responses := make([]dto.MedicalRecordResponse, len(records))
	for i := range records {
		responses[i] = *MedicalRecordToResponse(&records[i])
	}
	return responses
}
