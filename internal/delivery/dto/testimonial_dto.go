package dto

import "time"

// Request DTOs

type CreateTestimonialRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=100"`
	DoctorID int64  `json:"doctor" validate:"required,min=1"`
	Message  string `json:"message" validate:"required,notblank,max=5000"`
	Rating   string `json:"rating" validate:"required,oneof=good bad"`
}

type ModerateTestimonialRequest struct {
	Approved *bool `json:"is_approved" validate:"required"`
}

// Response DTOs

type TestimonialResponse struct {
	ID         int64         `json:"id"`
	Name       string        `json:"name"`
	DoctorID   int64         `json:"doctor_id"`
	Doctor     *DoctorChoice `json:"doctor,omitempty"`
	Message    string        `json:"message"`
	Rating     string        `json:"rating"`
	IsApproved bool          `json:"is_approved"`
	CreatedAt  time.Time     `json:"created_at"`
}

type RatingChoice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type TestimonialFormResponse struct {
	Doctors []DoctorChoice `json:"doctors"`
	Ratings []RatingChoice `json:"ratings"`
}

type TestimonialListResponse struct {
	Testimonials []TestimonialResponse `json:"testimonials"`
	RatingFilter string                `json:"rating_filter,omitempty"`
	SearchQuery  string                `json:"search_query,omitempty"`
	Total        int                   `json:"total"`
}

// TestimonialQuery holds the list filters. Approved is ignored by the public listing.
type TestimonialQuery struct {
	Rating   string
	Search   string
	Approved *bool
}
