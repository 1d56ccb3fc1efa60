package converter

import (
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
)

// TestimonialToResponse converts a Testimonial entity to TestimonialResponse DTO
func TestimonialToResponse(testimonial *entity.Testimonial) *dto.TestimonialResponse {
	if testimonial == nil {
		return nil
	}

	return &dto.TestimonialResponse{
		ID:         testimonial.ID,
		Name:       testimonial.Name,
		DoctorID:   testimonial.DoctorID,
		Doctor:     DoctorToChoice(testimonial.Doctor),
		Message:    testimonial.Message,
		Rating:     string(testimonial.Rating),
		IsApproved: testimonial.IsApproved,
		CreatedAt:  testimonial.CreatedAt,
	}
}

// TestimonialsToResponses converts a slice of Testimonial entities to slice of TestimonialResponse DTOs
func TestimonialsToResponses(testimonials []entity.Testimonial) []dto.TestimonialResponse {
	responses := make([]dto.TestimonialResponse, len(testimonials))
	for i := range testimonials {
		responses[i] = *TestimonialToResponse(&testimonials[i])
	}
	return responses
}
