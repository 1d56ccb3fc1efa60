package dto

type HomeResponse struct {
	Services     []ServiceResponse     `json:"services"`
	Doctors      []DoctorResponse      `json:"doctors"`
	Testimonials []TestimonialResponse `json:"testimonials"`
}
