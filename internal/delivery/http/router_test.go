package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-portal/config"
	"clinic-portal/internal/delivery/http/handler"
	"clinic-portal/internal/delivery/http/middleware"
	"clinic-portal/pkg/jwt"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// newGuardRouter builds the router with handlers that must never be reached
// by the requests below.
func newGuardRouter() http.Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)

	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour})

	return NewRouter(
		handler.NewHomeHandler(nil),
		handler.NewAppointmentHandler(nil, nil),
		handler.NewTestimonialHandler(nil, nil),
		handler.NewAuthHandler(nil, nil, config.SessionConfig{CookieName: "clinic_session"}),
		handler.NewDashboardHandler(nil),
		handler.NewMedicalRecordHandler(nil, nil),
		handler.NewServiceHandler(nil, nil),
		handler.NewDoctorHandler(nil, nil),
		handler.NewPatientHandler(nil, nil),
		handler.NewAuditLogHandler(nil),
		middleware.NewAuthMiddleware(jwtService, nil, "clinic_session", log),
		middleware.NewCORSMiddleware(nil),
		middleware.NewLoggingMiddleware(log),
	).Setup()
}

func TestRouter_GuardedRoutesRedirectAnonymous(t *testing.T) {
	router := newGuardRouter()

	paths := []string{
		"/doctor/dashboard/",
		"/doctor/logout/",
		"/patient-card/5/",
		"/appointment/5/create-record/",
		"/appointment/5/medical-records/",
		"/admin/appointments",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, middleware.LoginPath, rec.Header().Get("Location"))
		})
	}
}

func TestRouter_HealthCheck(t *testing.T) {
	rec := httptest.NewRecorder()
	newGuardRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}
