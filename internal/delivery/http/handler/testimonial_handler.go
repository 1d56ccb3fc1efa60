package handler

import (
	"encoding/json"
	"net/http"

	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/usecase"
	"clinic-portal/pkg/response"
	"clinic-portal/pkg/validator"
)

// TestimonialListPath is where the public form continues after a submission.
const TestimonialListPath = "/testimonials/all/"

type TestimonialHandler struct {
	testimonialUsecase usecase.TestimonialUsecase
	validator          *validator.CustomValidator
}

func NewTestimonialHandler(testimonialUsecase usecase.TestimonialUsecase, validator *validator.CustomValidator) *TestimonialHandler {
	return &TestimonialHandler{
		testimonialUsecase: testimonialUsecase,
		validator:          validator,
	}
}

func (h *TestimonialHandler) Form(w http.ResponseWriter, r *http.Request) {
	form, err := h.testimonialUsecase.GetFormData(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load testimonial form")
		return
	}

	response.Success(w, http.StatusOK, "Testimonial form retrieved successfully", form)
}

func (h *TestimonialHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTestimonialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	testimonial, err := h.testimonialUsecase.Submit(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDuplicateTestimonial:
			response.Warning(w, "You have already left this review for this doctor.")
		case usecase.ErrDoctorNotFound:
			response.ValidationError(w, map[string]string{"doctor": "Select a valid doctor"})
		case usecase.ErrInvalidRating:
			response.ValidationError(w, map[string]string{"rating": err.Error()})
		default:
			response.InternalServerError(w, "Failed to submit testimonial")
		}
		return
	}

	response.SuccessWithRedirect(w, http.StatusCreated, "Thank you! Your testimonial will be published after moderation.", testimonial, TestimonialListPath)
}

// ListApproved handles GET /testimonials/all/?rating=&search=
func (h *TestimonialHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	testimonials, err := h.testimonialUsecase.ListApproved(r.Context(), &dto.TestimonialQuery{
		Rating: q.Get("rating"),
		Search: q.Get("search"),
	})
	if err != nil {
		response.InternalServerError(w, "Failed to get testimonials")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Testimonials retrieved successfully", testimonials, &response.Meta{Total: int64(testimonials.Total)})
}

func (h *TestimonialHandler) GetAllTestimonials(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	testimonials, err := h.testimonialUsecase.ListAll(r.Context(), &dto.TestimonialQuery{
		Rating:   q.Get("rating"),
		Search:   q.Get("search"),
		Approved: optionalBool(r, "approved"),
	})
	if err != nil {
		response.InternalServerError(w, "Failed to get testimonials")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Testimonials retrieved successfully", testimonials, &response.Meta{Total: int64(testimonials.Total)})
}

func (h *TestimonialHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	testimonialID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid testimonial ID", nil)
		return
	}

	var req dto.ModerateTestimonialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	testimonial, err := h.testimonialUsecase.Moderate(r.Context(), testimonialID, *req.Approved)
	if err != nil {
		if err == usecase.ErrTestimonialNotFound {
			response.NotFound(w, "Testimonial not found")
			return
		}
		response.InternalServerError(w, "Failed to moderate testimonial")
		return
	}

	response.Success(w, http.StatusOK, "Testimonial moderated successfully", testimonial)
}
