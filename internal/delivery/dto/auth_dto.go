package dto

// Request DTOs

type LoginRequest struct {
	Username string `json:"username" validate:"required,notblank,max=150"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

type PrincipalResponse struct {
	Kind string `json:"kind"`
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type SessionResponse struct {
	Token     string            `json:"token"`
	ExpiresIn int64             `json:"expires_in"`
	Principal PrincipalResponse `json:"principal"`
}

// LoginPageResponse describes the combined staff/doctor login page.
type LoginPageResponse struct {
	FormTypes []string           `json:"form_types"`
	Principal *PrincipalResponse `json:"principal,omitempty"`
}
