package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/delivery/http/middleware"
	"clinic-portal/internal/domain/entity"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type appointmentFixture struct {
	usecase         AppointmentUsecase
	appointmentRepo *MockAppointmentRepository
	doctorRepo      *MockDoctorRepository
	patientRepo     *MockPatientRepository
	auditService    *MockAuditService
}

func setupAppointmentUsecase(t *testing.T) *appointmentFixture {
	db, _ := newMockDB(t)
	f := &appointmentFixture{
		appointmentRepo: &MockAppointmentRepository{},
		doctorRepo:      &MockDoctorRepository{},
		patientRepo:     &MockPatientRepository{},
		auditService:    &MockAuditService{},
	}
	f.usecase = NewAppointmentUsecase(db, quietLogger(), f.appointmentRepo, f.doctorRepo, f.patientRepo, f.auditService, fixedNow)
	return f
}

func validBooking() *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		Name:     "Anna",
		Phone:    "+79161234567",
		DoctorID: 2,
		Date:     "2025-03-10",
		Message:  "  back pain  ",
	}
}

func TestBook_Success(t *testing.T) {
	f := setupAppointmentUsecase(t)

	f.appointmentRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *entity.Appointment) bool {
		return a.Status == entity.AppointmentStatusPending &&
			a.DoctorID == 2 &&
			a.Message == "back pain" &&
			a.Date.Format("2006-01-02") == "2025-03-10"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Appointment).ID = 10
	}).Return(nil)

	response, err := f.usecase.Book(context.Background(), validBooking())

	require.NoError(t, err)
	assert.Equal(t, int64(10), response.ID)
	assert.Equal(t, "pending", response.Status)
	f.appointmentRepo.AssertExpectations(t)
}

func TestBook_DuplicateIsRejected(t *testing.T) {
	f := setupAppointmentUsecase(t)

	f.appointmentRepo.On("Create", mock.Anything, mock.Anything).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_appointments_phone_doctor_date"})

	_, err := f.usecase.Book(context.Background(), validBooking())

	assert.ErrorIs(t, err, ErrDuplicateAppointment)
}

func TestBook_UnknownDoctor(t *testing.T) {
	f := setupAppointmentUsecase(t)

	f.appointmentRepo.On("Create", mock.Anything, mock.Anything).
		Return(&pgconn.PgError{Code: "23503", ConstraintName: "appointments_doctor_id_fkey"})

	_, err := f.usecase.Book(context.Background(), validBooking())

	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestBook_PastDateNeverReachesStore(t *testing.T) {
	f := setupAppointmentUsecase(t)

	req := validBooking()
	req.Date = "2025-03-09"
	_, err := f.usecase.Book(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateInPast)

	req.Date = "09.03.2025"
	_, err = f.usecase.Book(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	f.appointmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetFormData_MinDateIsClinicToday(t *testing.T) {
	f := setupAppointmentUsecase(t)
	f.doctorRepo.On("FindAll", mock.Anything).Return([]entity.Doctor{{ID: 1, Name: "Dr. House"}}, nil)

	response, err := f.usecase.GetFormData(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", response.MinDate)
	require.Len(t, response.Doctors, 1)
}

func TestListAppointments_InvalidStatus(t *testing.T) {
	f := setupAppointmentUsecase(t)

	_, err := f.usecase.ListAppointments(context.Background(), &dto.AppointmentQuery{Status: "archived"})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestListAppointments_BuildsFilter(t *testing.T) {
	f := setupAppointmentUsecase(t)
	doctorID := int64(2)

	f.appointmentRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(filter entity.AppointmentFilter) bool {
		return *filter.DoctorID == 2 &&
			filter.Date.Equal(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)) &&
			filter.Status == entity.AppointmentStatusConfirmed &&
			filter.Search == "anna"
	})).Return([]entity.Appointment{{ID: 1}}, nil)

	response, err := f.usecase.ListAppointments(context.Background(), &dto.AppointmentQuery{
		DoctorID: &doctorID,
		Date:     "2025-03-10",
		Status:   "confirmed",
		Search:   " anna ",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, response.Total)
}

func TestUpdateAppointment_AnyStatusTransition(t *testing.T) {
	db, sqlMock := newMockDB(t)
	appointmentRepo := &MockAppointmentRepository{}
	auditService := &MockAuditService{}
	uc := NewAppointmentUsecase(db, quietLogger(), appointmentRepo, &MockDoctorRepository{}, &MockPatientRepository{}, auditService, fixedNow)

	staff := &entity.Principal{Kind: entity.PrincipalStaff, ID: 1, Name: "admin"}
	ctx := middleware.WithPrincipal(context.Background(), staff, "sid")

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	appointmentRepo.On("FindByIDForUpdate", mock.Anything, int64(5)).
		Return(&entity.Appointment{ID: 5, Status: entity.AppointmentStatusCompleted}, nil)
	appointmentRepo.On("UpdateStatusAndPatient", mock.Anything, mock.MatchedBy(func(a *entity.Appointment) bool {
		return a.Status == entity.AppointmentStatusPending
	})).Return(nil)
	auditService.On("LogUpdate", mock.Anything, mock.Anything, staff, entity.AuditActionAppointmentStatus, "appointment", int64(5),
		entity.AppointmentStatusCompleted, entity.AppointmentStatusPending).Return(nil)

	status := "pending"
	response, err := uc.UpdateAppointment(ctx, 5, &dto.UpdateAppointmentRequest{Status: &status})

	require.NoError(t, err)
	assert.Equal(t, "pending", response.Status)
	appointmentRepo.AssertExpectations(t)
	auditService.AssertExpectations(t)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestUpdateAppointment_NotFound(t *testing.T) {
	db, sqlMock := newMockDB(t)
	appointmentRepo := &MockAppointmentRepository{}
	uc := NewAppointmentUsecase(db, quietLogger(), appointmentRepo, &MockDoctorRepository{}, &MockPatientRepository{}, &MockAuditService{}, fixedNow)

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()
	appointmentRepo.On("FindByIDForUpdate", mock.Anything, int64(99)).Return(nil, nil)

	status := "confirmed"
	_, err := uc.UpdateAppointment(context.Background(), 99, &dto.UpdateAppointmentRequest{Status: &status})

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestUpdateAppointment_LinksPatient(t *testing.T) {
	db, sqlMock := newMockDB(t)
	appointmentRepo := &MockAppointmentRepository{}
	patientRepo := &MockPatientRepository{}
	auditService := &MockAuditService{}
	uc := NewAppointmentUsecase(db, quietLogger(), appointmentRepo, &MockDoctorRepository{}, patientRepo, auditService, fixedNow)

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	appointmentRepo.On("FindByIDForUpdate", mock.Anything, int64(5)).
		Return(&entity.Appointment{ID: 5, Status: entity.AppointmentStatusConfirmed}, nil)
	patientRepo.On("FindByID", mock.Anything, int64(8)).Return(&entity.Patient{ID: 8, Name: "Anna"}, nil)
	appointmentRepo.On("UpdateStatusAndPatient", mock.Anything, mock.MatchedBy(func(a *entity.Appointment) bool {
		return a.PatientID != nil && *a.PatientID == 8
	})).Return(nil)
	auditService.On("LogUpdate", mock.Anything, mock.Anything, mock.Anything, entity.AuditActionAppointmentUpdate, "appointment", int64(5), mock.Anything, mock.Anything).Return(nil)

	patientID := int64(8)
	response, err := uc.UpdateAppointment(context.Background(), 5, &dto.UpdateAppointmentRequest{PatientID: &patientID})

	require.NoError(t, err)
	require.NotNil(t, response.Patient)
	assert.Equal(t, "Anna", response.Patient.Name)
	auditService.AssertNotCalled(t, "LogUpdate", mock.Anything, mock.Anything, mock.Anything, entity.AuditActionAppointmentStatus, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
