package dto

import "time"

// Request DTOs

type CreateMedicalRecordRequest struct {
	ServiceIDs      []int64 `json:"services" validate:"omitempty,dive,min=1"`
	Diagnosis       string  `json:"diagnosis" validate:"required,notblank,max=5000"`
	Treatment       string  `json:"treatment" validate:"required,notblank,max=5000"`
	Recommendations string  `json:"recommendations" validate:"max=5000"`
}

// Response DTOs

type MedicalRecordResponse struct {
	ID              int64             `json:"id"`
	AppointmentID   int64             `json:"appointment_id"`
	DoctorID        int64             `json:"doctor_id"`
	Doctor          *DoctorChoice     `json:"doctor,omitempty"`
	PatientID       *int64            `json:"patient_id,omitempty"`
	PatientName     string            `json:"patient_name,omitempty"`
	Diagnosis       string            `json:"diagnosis"`
	Treatment       string            `json:"treatment"`
	Recommendations string            `json:"recommendations"`
	Services        []ServiceResponse `json:"services"`
	CreatedAt       time.Time         `json:"created_at"`
}

type MedicalRecordFormResponse struct {
	Appointment AppointmentResponse `json:"appointment"`
	Services    []ServiceResponse   `json:"services"`
}

type MedicalRecordListResponse struct {
	Appointment    *AppointmentResponse    `json:"appointment,omitempty"`
	MedicalRecords []MedicalRecordResponse `json:"medical_records"`
	Total          int                     `json:"total"`
}

type PatientCardResponse struct {
	Appointment    AppointmentResponse     `json:"appointment"`
	MedicalRecords []MedicalRecordResponse `json:"medical_records"`
	PatientHistory []AppointmentResponse   `json:"patient_history"`
	Doctor         *DoctorResponse         `json:"doctor,omitempty"`
}
