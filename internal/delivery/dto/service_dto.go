package dto

// Request DTOs

type ServiceRequest struct {
	Title       string  `json:"title" validate:"required,notblank,max=200"`
	Description string  `json:"description" validate:"required,notblank"`
	Order       int     `json:"order" validate:"gte=0"`
	Price       *string `json:"price" validate:"omitempty,numeric"`
}

// Response DTOs

type ServiceResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Order       int     `json:"order"`
	Price       *string `json:"price,omitempty"`
}

type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
}
