package usecase

import (
	"context"
	"errors"
	"strings"

	"clinic-portal/internal/converter"
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/delivery/http/middleware"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StatusFilterAll disables the dashboard status filter.
const StatusFilterAll = "all"

var ErrNotDoctor = errors.New("a doctor session is required")

type DashboardUsecase interface {
	GetDashboard(ctx context.Context, status, search string) (*dto.DashboardResponse, error)
}

type dashboardUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
) DashboardUsecase {
	return &dashboardUsecase{
		db:              db,
		log:             log,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
	}
}

// GetDashboard lists the logged-in doctor's appointments, newest date first.
// Any status other than the four known ones shows all appointments.
func (u *dashboardUsecase) GetDashboard(ctx context.Context, status, search string) (*dto.DashboardResponse, error) {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok || !principal.IsDoctor() {
		return nil, ErrNotDoctor
	}

	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByID(db, principal.ID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	filter := entity.DashboardFilter{Search: strings.TrimSpace(search)}
	statusFilter := StatusFilterAll
	if s := entity.AppointmentStatus(status); s.IsValid() {
		filter.Status = s
		statusFilter = status
	}

	appointments, err := u.appointmentRepo.FindByDoctor(db, doctor.ID, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %d: %+v", doctor.ID, err)
		return nil, err
	}

	statuses := make([]string, 0, len(entity.AppointmentStatuses)+1)
	statuses = append(statuses, StatusFilterAll)
	for _, s := range entity.AppointmentStatuses {
		statuses = append(statuses, string(s))
	}

	return &dto.DashboardResponse{
		Doctor:       *converter.DoctorToResponse(doctor),
		Appointments: converter.AppointmentsToResponses(appointments),
		StatusFilter: statusFilter,
		SearchQuery:  search,
		Statuses:     statuses,
	}, nil
}
