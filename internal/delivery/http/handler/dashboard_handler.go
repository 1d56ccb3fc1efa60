package handler

import (
	"net/http"

	"clinic-portal/internal/delivery/http/middleware"
	"clinic-portal/internal/usecase"
	"clinic-portal/pkg/response"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
	}
}

// Dashboard handles GET /doctor/dashboard/?status=&search=
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dashboard, err := h.dashboardUsecase.GetDashboard(r.Context(), q.Get("status"), q.Get("search"))
	if err != nil {
		switch err {
		case usecase.ErrNotDoctor, usecase.ErrDoctorNotFound:
			response.Redirect(w, middleware.LoginPath, "Doctor login required")
		default:
			response.InternalServerError(w, "Failed to load dashboard")
		}
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}
