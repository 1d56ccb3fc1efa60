package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-portal/internal/converter"
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/delivery/http/middleware"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/domain/repository"
	"clinic-portal/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDuplicateAppointment = errors.New("you already have an appointment with this doctor on this date")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrDoctorNotFound       = errors.New("doctor not found")
	ErrPatientNotFound      = errors.New("patient not found")
	ErrInvalidDateFormat    = errors.New("invalid date format, use YYYY-MM-DD")
	ErrDateInPast           = errors.New("date cannot be in the past")
	ErrInvalidStatus        = errors.New("invalid appointment status")
)

type AppointmentUsecase interface {
	GetFormData(ctx context.Context) (*dto.AppointmentFormResponse, error)
	Book(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, id int64) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context, query *dto.AppointmentQuery) (*dto.AppointmentListResponse, error)
	UpdateAppointment(ctx context.Context, id int64, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	auditService    service.AuditService
	now             func() time.Time
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
	now func() time.Time,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		auditService:    auditService,
		now:             now,
	}
}

// GetFormData returns the doctor choices and the earliest bookable date.
func (u *appointmentUsecase) GetFormData(ctx context.Context) (*dto.AppointmentFormResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	today, _ := dayBounds(u.now())

	return &dto.AppointmentFormResponse{
		Doctors: converter.DoctorsToChoices(doctors),
		MinDate: today.Format(converter.DateLayout),
	}, nil
}

// Book stores a pending appointment. A second booking for the same phone,
// doctor and date is rejected by the unique constraint and nothing is stored.
func (u *appointmentUsecase) Book(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	today, _ := dayBounds(u.now())

	date, err := time.ParseInLocation(converter.DateLayout, req.Date, today.Location())
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if date.Before(today) {
		return nil, ErrDateInPast
	}

	appointment := &entity.Appointment{
		Name:     strings.TrimSpace(req.Name),
		Phone:    req.Phone,
		DoctorID: req.DoctorID,
		Date:     date,
		Message:  strings.TrimSpace(req.Message),
		Status:   entity.AppointmentStatusPending,
	}

	if err := u.appointmentRepo.Create(u.db.WithContext(ctx), appointment); err != nil {
		if isDuplicateKeyError(err, "uq_appointments_phone_doctor_date") {
			return nil, ErrDuplicateAppointment
		}
		if isForeignKeyError(err, "doctor_id") {
			return nil, ErrDoctorNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment booked: id=%d, doctor=%d, date=%s", appointment.ID, appointment.DoctorID, req.Date)

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id int64) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment by ID: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) ListAppointments(ctx context.Context, query *dto.AppointmentQuery) (*dto.AppointmentListResponse, error) {
	filter := entity.AppointmentFilter{
		DoctorID: query.DoctorID,
		Search:   strings.TrimSpace(query.Search),
	}

	if query.Date != "" {
		date, err := time.Parse(converter.DateLayout, query.Date)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		filter.Date = &date
	}

	if query.Status != "" {
		status := entity.AppointmentStatus(query.Status)
		if !status.IsValid() {
			return nil, ErrInvalidStatus
		}
		filter.Status = status
	}

	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// UpdateAppointment changes status and/or the linked patient. Any status may
// follow any other.
func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, id int64, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	actor, _ := middleware.GetPrincipalFromContext(ctx)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByIDForUpdate(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment by ID: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	oldStatus := appointment.Status
	oldPatientID := appointment.PatientID

	if req.Status != nil {
		status := entity.AppointmentStatus(*req.Status)
		if !status.IsValid() {
			return nil, ErrInvalidStatus
		}
		appointment.SetStatus(status)
	}

	if req.ClearPatient {
		appointment.PatientID = nil
	} else if req.PatientID != nil {
		patient, err := u.patientRepo.FindByID(tx, *req.PatientID)
		if err != nil {
			u.log.Warnf("Failed to find patient by ID: %+v", err)
			return nil, err
		}
		if patient == nil {
			return nil, ErrPatientNotFound
		}
		appointment.PatientID = &patient.ID
		appointment.Patient = patient
	}

	if err := u.appointmentRepo.UpdateStatusAndPatient(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}

	if oldStatus != appointment.Status {
		if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionAppointmentStatus, "appointment", appointment.ID, oldStatus, appointment.Status); err != nil {
			return nil, err
		}
	}
	if !samePatient(oldPatientID, appointment.PatientID) {
		if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionAppointmentUpdate, "appointment", appointment.ID,
			map[string]interface{}{"patient_id": oldPatientID},
			map[string]interface{}{"patient_id": appointment.PatientID},
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment updated: id=%d, status=%s", appointment.ID, appointment.Status)

	return converter.AppointmentToResponse(appointment), nil
}

func samePatient(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
