package http

import (
	"net/http"

	"clinic-portal/internal/delivery/http/handler"
	"clinic-portal/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	homeHandler          *handler.HomeHandler
	appointmentHandler   *handler.AppointmentHandler
	testimonialHandler   *handler.TestimonialHandler
	authHandler          *handler.AuthHandler
	dashboardHandler     *handler.DashboardHandler
	medicalRecordHandler *handler.MedicalRecordHandler
	serviceHandler       *handler.ServiceHandler
	doctorHandler        *handler.DoctorHandler
	patientHandler       *handler.PatientHandler
	auditLogHandler      *handler.AuditLogHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
	loggingMiddleware    *middleware.LoggingMiddleware
}

func NewRouter(
	homeHandler *handler.HomeHandler,
	appointmentHandler *handler.AppointmentHandler,
	testimonialHandler *handler.TestimonialHandler,
	authHandler *handler.AuthHandler,
	dashboardHandler *handler.DashboardHandler,
	medicalRecordHandler *handler.MedicalRecordHandler,
	serviceHandler *handler.ServiceHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		homeHandler:          homeHandler,
		appointmentHandler:   appointmentHandler,
		testimonialHandler:   testimonialHandler,
		authHandler:          authHandler,
		dashboardHandler:     dashboardHandler,
		medicalRecordHandler: medicalRecordHandler,
		serviceHandler:       serviceHandler,
		doctorHandler:        doctorHandler,
		patientHandler:       patientHandler,
		auditLogHandler:      auditLogHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
		loggingMiddleware:    loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// Order matters: the logger reads the principal set by Authenticate.
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.authMiddleware.Authenticate)
	r.router.Use(r.loggingMiddleware.Handle)

	// Health check
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public pages
	r.router.HandleFunc("/", r.homeHandler.Home).Methods(http.MethodGet)
	r.router.HandleFunc("/appointment/", r.appointmentHandler.BookingForm).Methods(http.MethodGet)
	r.router.HandleFunc("/appointment/", r.appointmentHandler.Book).Methods(http.MethodPost)
	r.router.HandleFunc("/appointment/success/", r.appointmentHandler.BookingSuccess).Methods(http.MethodGet)
	r.router.HandleFunc("/testimonials/add/", r.testimonialHandler.Form).Methods(http.MethodGet)
	r.router.HandleFunc("/testimonials/add/", r.testimonialHandler.Submit).Methods(http.MethodPost)
	r.router.HandleFunc("/testimonials/all/", r.testimonialHandler.ListApproved).Methods(http.MethodGet)

	// Login
	r.router.HandleFunc("/staff/login/", r.authHandler.LoginPage).Methods(http.MethodGet)
	r.router.HandleFunc("/staff/login/", r.authHandler.StaffLogin).Methods(http.MethodPost)
	r.router.HandleFunc("/doctor/login/", r.authHandler.DoctorLogin).Methods(http.MethodPost)

	// Doctor self-service
	doctor := r.router.PathPrefix("/doctor").Subrouter()
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/dashboard/", r.dashboardHandler.Dashboard).Methods(http.MethodGet)
	doctor.HandleFunc("/logout/", r.authHandler.Logout).Methods(http.MethodGet)

	// Clinical pages (doctor or staff)
	clinical := r.router.NewRoute().Subrouter()
	clinical.Use(middleware.RequireClinician)
	clinical.HandleFunc("/patient-card/{appointment_id:[0-9]+}/", r.medicalRecordHandler.PatientCard).Methods(http.MethodGet)
	clinical.HandleFunc("/appointment/{id:[0-9]+}/create-record/", r.medicalRecordHandler.CreateForm).Methods(http.MethodGet)
	clinical.HandleFunc("/appointment/{id:[0-9]+}/create-record/", r.medicalRecordHandler.Create).Methods(http.MethodPost)
	clinical.HandleFunc("/appointment/{id:[0-9]+}/medical-records/", r.medicalRecordHandler.ListByAppointment).Methods(http.MethodGet)

	// Back office (staff only)
	admin := r.router.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireStaff)

	// Service management
	admin.HandleFunc("/services", r.serviceHandler.CreateService).Methods(http.MethodPost)
	admin.HandleFunc("/services", r.serviceHandler.GetAllServices).Methods(http.MethodGet)
	admin.HandleFunc("/services/{id:[0-9]+}", r.serviceHandler.GetService).Methods(http.MethodGet)
	admin.HandleFunc("/services/{id:[0-9]+}", r.serviceHandler.UpdateService).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id:[0-9]+}", r.serviceHandler.DeleteService).Methods(http.MethodDelete)

	// Doctor management
	admin.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id:[0-9]+}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id:[0-9]+}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id:[0-9]+}", r.doctorHandler.DeleteDoctor).Methods(http.MethodDelete)
	admin.HandleFunc("/doctors/{id:[0-9]+}/password", r.doctorHandler.SetPassword).Methods(http.MethodPut)

	// Appointments
	admin.HandleFunc("/appointments", r.appointmentHandler.GetAllAppointments).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id:[0-9]+}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id:[0-9]+}", r.appointmentHandler.UpdateAppointment).Methods(http.MethodPatch)

	// Testimonial moderation
	admin.HandleFunc("/testimonials", r.testimonialHandler.GetAllTestimonials).Methods(http.MethodGet)
	admin.HandleFunc("/testimonials/{id:[0-9]+}/moderate", r.testimonialHandler.Moderate).Methods(http.MethodPut)

	// Patients and records
	admin.HandleFunc("/patients", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	admin.HandleFunc("/patients", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	admin.HandleFunc("/patients/{id:[0-9]+}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	admin.HandleFunc("/medical-records", r.medicalRecordHandler.Search).Methods(http.MethodGet)

	// Audit trail
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id:[0-9]+}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
