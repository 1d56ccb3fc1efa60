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
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	ErrSimilarRecordExists = errors.New("a similar medical record already exists today")
	ErrServiceNotFound     = errors.New("service not found")
)

type MedicalRecordUsecase interface {
	GetCreateForm(ctx context.Context, appointmentID int64) (*dto.MedicalRecordFormResponse, error)
	CreateRecord(ctx context.Context, appointmentID int64, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	ListByAppointment(ctx context.Context, appointmentID int64) (*dto.MedicalRecordListResponse, error)
	GetPatientCard(ctx context.Context, appointmentID int64) (*dto.PatientCardResponse, error)
	Search(ctx context.Context, query string) (*dto.MedicalRecordListResponse, error)
}

type medicalRecordUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	medicalRecordRepo repository.MedicalRecordRepository
	appointmentRepo   repository.AppointmentRepository
	serviceRepo       repository.ServiceRepository
	auditService      service.AuditService
	now               func() time.Time
}

func NewMedicalRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	medicalRecordRepo repository.MedicalRecordRepository,
	appointmentRepo repository.AppointmentRepository,
	serviceRepo repository.ServiceRepository,
	auditService service.AuditService,
	now func() time.Time,
) MedicalRecordUsecase {
	return &medicalRecordUsecase{
		db:                db,
		log:               log,
		medicalRecordRepo: medicalRecordRepo,
		appointmentRepo:   appointmentRepo,
		serviceRepo:       serviceRepo,
		auditService:      auditService,
		now:               now,
	}
}

func (u *medicalRecordUsecase) GetCreateForm(ctx context.Context, appointmentID int64) (*dto.MedicalRecordFormResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment by ID: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	services, err := u.serviceRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to find services: %+v", err)
		return nil, err
	}

	return &dto.MedicalRecordFormResponse{
		Appointment: *converter.AppointmentToResponse(appointment),
		Services:    converter.ServicesToResponses(services),
	}, nil
}

// CreateRecord writes a medical record for the appointment. The appointment
// row stays locked from the similarity check until commit, so two concurrent
// submissions of the same diagnosis cannot both pass the check.
func (u *medicalRecordUsecase) CreateRecord(ctx context.Context, appointmentID int64, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	actor, _ := middleware.GetPrincipalFromContext(ctx)
	diagnosis := strings.TrimSpace(req.Diagnosis)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByIDForUpdate(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to lock appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	serviceIDs := uniqueIDs(req.ServiceIDs)
	services, err := u.serviceRepo.FindByIDs(tx, serviceIDs)
	if err != nil {
		u.log.Warnf("Failed to find services: %+v", err)
		return nil, err
	}
	if len(services) != len(serviceIDs) {
		return nil, ErrServiceNotFound
	}

	from, to := dayBounds(u.now())
	similar, err := u.medicalRecordRepo.ExistsSimilar(tx, appointment.ID, diagnosis, from, to)
	if err != nil {
		u.log.Warnf("Failed to check similar medical records: %+v", err)
		return nil, err
	}
	if similar {
		return nil, ErrSimilarRecordExists
	}

	record := &entity.MedicalRecord{
		AppointmentID:   appointment.ID,
		DoctorID:        appointment.DoctorID,
		PatientID:       appointment.PatientID,
		Diagnosis:       diagnosis,
		Treatment:       strings.TrimSpace(req.Treatment),
		Recommendations: strings.TrimSpace(req.Recommendations),
	}

	if err := u.medicalRecordRepo.Create(tx, record); err != nil {
		u.log.Warnf("Failed to create medical record: %+v", err)
		return nil, err
	}

	if err := u.medicalRecordRepo.AttachServices(tx, record, services); err != nil {
		u.log.Warnf("Failed to attach services to medical record: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionMedicalRecordCreate, "medical_record", record.ID, map[string]interface{}{
		"appointment_id": appointment.ID,
		"doctor_id":      appointment.DoctorID,
		"diagnosis":      record.Diagnosis,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Medical record created: id=%d, appointment=%d", record.ID, appointment.ID)

	record.Services = services
	return converter.MedicalRecordToResponse(record), nil
}

func (u *medicalRecordUsecase) ListByAppointment(ctx context.Context, appointmentID int64) (*dto.MedicalRecordListResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment by ID: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	records, err := u.medicalRecordRepo.FindByAppointment(db, appointment.ID)
	if err != nil {
		u.log.Warnf("Failed to find medical records: %+v", err)
		return nil, err
	}

	return &dto.MedicalRecordListResponse{
		Appointment:    converter.AppointmentToResponse(appointment),
		MedicalRecords: converter.MedicalRecordsToResponses(records),
		Total:          len(records),
	}, nil
}

// GetPatientCard returns the appointment, its records and every appointment
// booked under the same phone.
func (u *medicalRecordUsecase) GetPatientCard(ctx context.Context, appointmentID int64) (*dto.PatientCardResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment by ID: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	var (
		records []entity.MedicalRecord
		history []entity.Appointment
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		records, err = u.medicalRecordRepo.FindByAppointment(u.db.WithContext(gctx), appointment.ID)
		if err != nil {
			u.log.Warnf("Failed to find medical records: %+v", err)
		}
		return err
	})

	g.Go(func() error {
		var err error
		history, err = u.appointmentRepo.FindByPhone(u.db.WithContext(gctx), appointment.Phone)
		if err != nil {
			u.log.Warnf("Failed to find visit history: %+v", err)
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.PatientCardResponse{
		Appointment:    *converter.AppointmentToResponse(appointment),
		MedicalRecords: converter.MedicalRecordsToResponses(records),
		PatientHistory: converter.AppointmentsToResponses(history),
		Doctor:         converter.DoctorToResponse(appointment.Doctor),
	}, nil
}

// Search is the back-office record lookup over patient, diagnosis,
// treatment and doctor name.
func (u *medicalRecordUsecase) Search(ctx context.Context, query string) (*dto.MedicalRecordListResponse, error) {
	records, err := u.medicalRecordRepo.FindAll(u.db.WithContext(ctx), entity.MedicalRecordFilter{Search: strings.TrimSpace(query)})
	if err != nil {
		u.log.Warnf("Failed to search medical records: %+v", err)
		return nil, err
	}

	return &dto.MedicalRecordListResponse{
		MedicalRecords: converter.MedicalRecordsToResponses(records),
		Total:          len(records),
	}, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
