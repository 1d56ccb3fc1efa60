package handler

import (
	"net/http"

	"clinic-portal/internal/usecase"
	"clinic-portal/pkg/response"
)

type HomeHandler struct {
	homeUsecase usecase.HomeUsecase
}

func NewHomeHandler(homeUsecase usecase.HomeUsecase) *HomeHandler {
	return &HomeHandler{
		homeUsecase: homeUsecase,
	}
}

// Home returns the services, doctors and approved testimonials shown on the landing page.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	home, err := h.homeUsecase.GetHome(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load home page")
		return
	}

	response.Success(w, http.StatusOK, "Home page retrieved successfully", home)
}
