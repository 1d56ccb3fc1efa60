package dto

import "time"

// Request DTOs

type CreatePatientRequest struct {
	Name      string `json:"name" validate:"required,notblank,max=100"`
	Phone     string `json:"phone" validate:"required,max=20,phone"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Notes     string `json:"notes"`
}

// Response DTOs

type PatientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	BirthDate string    `json:"birth_date,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
