package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"clinic-portal/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Test setup helpers

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, sqlMock
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fixedNow is 2025-03-10 14:00 in a UTC+3 clinic timezone.
func fixedNow() time.Time {
	return time.Date(2025, time.March, 10, 14, 0, 0, 0, time.FixedZone("MSK", 3*60*60))
}

// MockAppointmentRepository is a mock implementation of AppointmentRepository
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	args := m.Called(db, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) FindByID(db *gorm.DB, id int64) (*entity.Appointment, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByIDForUpdate(db *gorm.DB, id int64) (*entity.Appointment, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByDoctor(db *gorm.DB, doctorID int64, filter entity.DashboardFilter) ([]entity.Appointment, error) {
	args := m.Called(db, doctorID, filter)
	return args.Get(0).([]entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByPhone(db *gorm.DB, phone string) ([]entity.Appointment, error) {
	args := m.Called(db, phone)
	return args.Get(0).([]entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindAll(db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	args := m.Called(db, filter)
	return args.Get(0).([]entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateStatusAndPatient(db *gorm.DB, appointment *entity.Appointment) error {
	args := m.Called(db, appointment)
	return args.Error(0)
}

// MockTestimonialRepository is a mock implementation of TestimonialRepository
type MockTestimonialRepository struct {
	mock.Mock
}

func (m *MockTestimonialRepository) Create(db *gorm.DB, testimonial *entity.Testimonial) error {
	args := m.Called(db, testimonial)
	return args.Error(0)
}

func (m *MockTestimonialRepository) FindByID(db *gorm.DB, id int64) (*entity.Testimonial, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Testimonial), args.Error(1)
}

func (m *MockTestimonialRepository) FindAll(db *gorm.DB, filter entity.TestimonialFilter) ([]entity.Testimonial, error) {
	args := m.Called(db, filter)
	return args.Get(0).([]entity.Testimonial), args.Error(1)
}

func (m *MockTestimonialRepository) SetApproved(db *gorm.DB, id int64, approved bool) (int64, error) {
	args := m.Called(db, id, approved)
	return args.Get(0).(int64), args.Error(1)
}

// MockDoctorRepository is a mock implementation of DoctorRepository
type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	args := m.Called(db, doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) FindByID(db *gorm.DB, id int64) (*entity.Doctor, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) FindByUsername(db *gorm.DB, username string) (*entity.Doctor, error) {
	args := m.Called(db, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) FindAll(db *gorm.DB) ([]entity.Doctor, error) {
	args := m.Called(db)
	return args.Get(0).([]entity.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) Update(db *gorm.DB, doctor *entity.Doctor) error {
	args := m.Called(db, doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) Delete(db *gorm.DB, id int64) (int64, error) {
	args := m.Called(db, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockServiceRepository is a mock implementation of ServiceRepository
type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) Create(db *gorm.DB, service *entity.Service) error {
	args := m.Called(db, service)
	return args.Error(0)
}

func (m *MockServiceRepository) FindByID(db *gorm.DB, id int64) (*entity.Service, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Service), args.Error(1)
}

func (m *MockServiceRepository) FindByIDs(db *gorm.DB, ids []int64) ([]entity.Service, error) {
	args := m.Called(db, ids)
	return args.Get(0).([]entity.Service), args.Error(1)
}

func (m *MockServiceRepository) FindAll(db *gorm.DB) ([]entity.Service, error) {
	args := m.Called(db)
	return args.Get(0).([]entity.Service), args.Error(1)
}

func (m *MockServiceRepository) Update(db *gorm.DB, service *entity.Service) error {
	args := m.Called(db, service)
	return args.Error(0)
}

func (m *MockServiceRepository) Delete(db *gorm.DB, id int64) (int64, error) {
	args := m.Called(db, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockPatientRepository is a mock implementation of PatientRepository
type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	args := m.Called(db, patient)
	return args.Error(0)
}

func (m *MockPatientRepository) FindByID(db *gorm.DB, id int64) (*entity.Patient, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Patient), args.Error(1)
}

func (m *MockPatientRepository) FindAll(db *gorm.DB, search string) ([]entity.Patient, error) {
	args := m.Called(db, search)
	return args.Get(0).([]entity.Patient), args.Error(1)
}

// MockMedicalRecordRepository is a mock implementation of MedicalRecordRepository
type MockMedicalRecordRepository struct {
	mock.Mock
}

func (m *MockMedicalRecordRepository) Create(db *gorm.DB, record *entity.MedicalRecord) error {
	args := m.Called(db, record)
	return args.Error(0)
}

func (m *MockMedicalRecordRepository) AttachServices(db *gorm.DB, record *entity.MedicalRecord, services []entity.Service) error {
	args := m.Called(db, record, services)
	return args.Error(0)
}

func (m *MockMedicalRecordRepository) ExistsSimilar(db *gorm.DB, appointmentID int64, diagnosis string, from, to time.Time) (bool, error) {
	args := m.Called(db, appointmentID, diagnosis, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockMedicalRecordRepository) FindByAppointment(db *gorm.DB, appointmentID int64) ([]entity.MedicalRecord, error) {
	args := m.Called(db, appointmentID)
	return args.Get(0).([]entity.MedicalRecord), args.Error(1)
}

func (m *MockMedicalRecordRepository) FindAll(db *gorm.DB, filter entity.MedicalRecordFilter) ([]entity.MedicalRecord, error) {
	args := m.Called(db, filter)
	return args.Get(0).([]entity.MedicalRecord), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(db *gorm.DB, user *entity.User) error {
	args := m.Called(db, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(db *gorm.DB, username string) (*entity.User, error) {
	args := m.Called(db, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(db *gorm.DB, id int64) (*entity.User, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// MockAuditService is a mock implementation of AuditService
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) LogEvent(ctx context.Context, tx *gorm.DB, actor *entity.Principal, action string, metadata entity.JSON) error {
	args := m.Called(ctx, tx, actor, action, metadata)
	return args.Error(0)
}

func (m *MockAuditService) LogCreate(ctx context.Context, tx *gorm.DB, actor *entity.Principal, action string, entityName string, entityID int64, newValue interface{}) error {
	args := m.Called(ctx, tx, actor, action, entityName, entityID, newValue)
	return args.Error(0)
}

func (m *MockAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, actor *entity.Principal, action string, entityName string, entityID int64, oldValue, newValue interface{}) error {
	args := m.Called(ctx, tx, actor, action, entityName, entityID, oldValue, newValue)
	return args.Error(0)
}

func (m *MockAuditService) LogDelete(ctx context.Context, tx *gorm.DB, actor *entity.Principal, action string, entityName string, entityID int64, oldValue interface{}) error {
	args := m.Called(ctx, tx, actor, action, entityName, entityID, oldValue)
	return args.Error(0)
}

// MockSessionStore is a mock implementation of SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context, sessionID string, principal entity.Principal) error {
	args := m.Called(ctx, sessionID, principal)
	return args.Error(0)
}

func (m *MockSessionStore) Get(ctx context.Context, kind entity.PrincipalKind, principalID int64, sessionID string) (*entity.Principal, error) {
	args := m.Called(ctx, kind, principalID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Principal), args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, kind entity.PrincipalKind, principalID int64, sessionID string) error {
	args := m.Called(ctx, kind, principalID, sessionID)
	return args.Error(0)
}

func (m *MockSessionStore) DeleteAll(ctx context.Context, kind entity.PrincipalKind, principalID int64) error {
	args := m.Called(ctx, kind, principalID)
	return args.Error(0)
}
