package dto

// Request DTOs

type CreateDoctorRequest struct {
	Name           string  `json:"name" validate:"required,notblank,max=100"`
	Specialization string  `json:"specialization" validate:"required,notblank,max=100"`
	Experience     int     `json:"experience" validate:"gte=0,lte=80"`
	Description    string  `json:"description"`
	Username       *string `json:"username" validate:"omitempty,min=3,max=50"`
	Password       *string `json:"password" validate:"omitempty,min=8,max=72"`
}

// UpdateDoctorRequest replaces the profile fields. The password is changed
// only through SetDoctorPasswordRequest.
type UpdateDoctorRequest struct {
	Name           string  `json:"name" validate:"required,notblank,max=100"`
	Specialization string  `json:"specialization" validate:"required,notblank,max=100"`
	Experience     int     `json:"experience" validate:"gte=0,lte=80"`
	Description    string  `json:"description"`
	Username       *string `json:"username" validate:"omitempty,min=3,max=50"`
}

type SetDoctorPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Response DTOs

type DoctorResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Specialization string  `json:"specialization"`
	Experience     int     `json:"experience"`
	Description    string  `json:"description,omitempty"`
	Username       *string `json:"username,omitempty"`
	CanLogin       bool    `json:"can_login"`
}

// DoctorChoice is the short form used in select lists and nested objects.
type DoctorChoice struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
