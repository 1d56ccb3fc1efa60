package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"clinic-portal/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	args := m.Called(db, log)
	return args.Error(0)
}

func (m *MockAuditLogRepository) FindAll(db *gorm.DB, limit int) ([]entity.AuditLog, error) {
	args := m.Called(db, limit)
	return args.Get(0).([]entity.AuditLog), args.Error(1)
}

func (m *MockAuditLogRepository) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	args := m.Called(db, id)
	return args.Get(0).(*entity.AuditLog), args.Error(1)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestAuditService_LogUpdate_RecordsActor(t *testing.T) {
	repo := &MockAuditLogRepository{}
	svc := NewAuditService(quietLogger(), repo)
	actor := &entity.Principal{Kind: entity.PrincipalStaff, ID: 1, Name: "admin"}

	var saved *entity.AuditLog
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.AuditLog")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.AuditLog) }).
		Return(nil)

	err := svc.LogUpdate(context.Background(), nil, actor, entity.AuditActionAppointmentStatus, "appointment", 12, "pending", "confirmed")

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, entity.PrincipalStaff, saved.ActorKind)
	assert.Equal(t, int64(1), *saved.ActorID)
	assert.Equal(t, "admin", saved.ActorName)
	assert.Equal(t, "12", saved.Metadata["entity_id"])
	assert.Equal(t, "confirmed", saved.Metadata["new_value"])
	repo.AssertExpectations(t)
}

func TestAuditService_LogEvent_Anonymous(t *testing.T) {
	repo := &MockAuditLogRepository{}
	svc := NewAuditService(quietLogger(), repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(l *entity.AuditLog) bool {
		return l.ActorID == nil && l.ActorKind == "" && l.Action == entity.AuditActionLogout
	})).Return(errors.New("db down"))

	err := svc.LogEvent(context.Background(), nil, nil, entity.AuditActionLogout, nil)

	assert.Error(t, err)
	repo.AssertExpectations(t)
}
