package usecase

import (
	"context"
	"testing"

	"clinic-portal/internal/domain/entity"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParsePrice(t *testing.T) {
	price, err := parsePrice(nil)
	require.NoError(t, err)
	assert.False(t, price.Valid)

	price, err = parsePrice(strPtr("1500.505"))
	require.NoError(t, err)
	assert.True(t, price.Valid)
	assert.Equal(t, "1500.51", price.Decimal.StringFixed(2))

	_, err = parsePrice(strPtr("-1"))
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = parsePrice(strPtr("free"))
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestDeleteService_InUse(t *testing.T) {
	db, sqlMock := newMockDB(t)
	serviceRepo := &MockServiceRepository{}
	uc := NewServiceUsecase(db, quietLogger(), serviceRepo, &MockAuditService{})

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	serviceRepo.On("FindByID", mock.Anything, int64(3)).Return(&entity.Service{ID: 3}, nil)
	serviceRepo.On("Delete", mock.Anything, int64(3)).
		Return(int64(0), &pgconn.PgError{Code: "23503", ConstraintName: "medical_record_services_service_id_fkey"})

	err := uc.DeleteService(context.Background(), 3)

	assert.ErrorIs(t, err, ErrServiceInUse)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
