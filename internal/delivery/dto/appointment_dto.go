package dto

import "time"

// Request DTOs

type CreateAppointmentRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Phone    string `json:"phone" validate:"required,max=20,phone"`
	DoctorID int64  `json:"doctor" validate:"required,min=1"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02,notpast"`
	Message  string `json:"message" validate:"max=2000"`
}

// UpdateAppointmentRequest is used by the back office. Nil fields are left
// unchanged; ClearPatient unlinks the patient.
type UpdateAppointmentRequest struct {
	Status       *string `json:"status" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	PatientID    *int64  `json:"patient_id" validate:"omitempty,min=1"`
	ClearPatient bool    `json:"clear_patient"`
}

// Response DTOs

type AppointmentResponse struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Phone     string           `json:"phone"`
	DoctorID  int64            `json:"doctor_id"`
	Doctor    *DoctorChoice    `json:"doctor,omitempty"`
	Date      string           `json:"date"`
	Message   string           `json:"message"`
	Status    string           `json:"status"`
	PatientID *int64           `json:"patient_id,omitempty"`
	Patient   *PatientResponse `json:"patient,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

type AppointmentFormResponse struct {
	Doctors []DoctorChoice `json:"doctors"`
	MinDate string         `json:"min_date"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type DashboardResponse struct {
	Doctor       DoctorResponse        `json:"doctor"`
	Appointments []AppointmentResponse `json:"appointments"`
	StatusFilter string                `json:"status_filter"`
	SearchQuery  string                `json:"search_query"`
	Statuses     []string              `json:"statuses"`
}

// AppointmentQuery holds the back-office list filters. Empty fields are ignored.
type AppointmentQuery struct {
	DoctorID *int64
	Date     string
	Status   string
	Search   string
}
