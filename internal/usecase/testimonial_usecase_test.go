package usecase

import (
	"context"
	"testing"

	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestimonialUsecase(t *testing.T) (TestimonialUsecase, *MockTestimonialRepository, *MockAuditService) {
	db, _ := newMockDB(t)
	repo := &MockTestimonialRepository{}
	audit := &MockAuditService{}
	return NewTestimonialUsecase(db, quietLogger(), repo, &MockDoctorRepository{}, audit), repo, audit
}

func TestSubmit_StoresUnapprovedWithFingerprint(t *testing.T) {
	uc, repo, _ := setupTestimonialUsecase(t)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(tm *entity.Testimonial) bool {
		return !tm.IsApproved &&
			tm.Name == "Anna" &&
			tm.Fingerprint == entity.TestimonialFingerprint("Anna", 2, "Great doctor")
	})).Return(nil)

	response, err := uc.Submit(context.Background(), &dto.CreateTestimonialRequest{
		Name:     " Anna ",
		DoctorID: 2,
		Message:  "Great doctor",
		Rating:   "good",
	})

	require.NoError(t, err)
	assert.False(t, response.IsApproved)
	repo.AssertExpectations(t)
}

func TestSubmit_DuplicateIsRejected(t *testing.T) {
	uc, repo, _ := setupTestimonialUsecase(t)

	repo.On("Create", mock.Anything, mock.Anything).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_testimonials_fingerprint"})

	_, err := uc.Submit(context.Background(), &dto.CreateTestimonialRequest{
		Name: "Anna", DoctorID: 2, Message: "Great doctor", Rating: "good",
	})

	assert.ErrorIs(t, err, ErrDuplicateTestimonial)
}

func TestSubmit_InvalidRating(t *testing.T) {
	uc, repo, _ := setupTestimonialUsecase(t)

	_, err := uc.Submit(context.Background(), &dto.CreateTestimonialRequest{
		Name: "Anna", DoctorID: 2, Message: "ok", Rating: "5",
	})

	assert.ErrorIs(t, err, ErrInvalidRating)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListApproved_AlwaysFiltersApproved(t *testing.T) {
	uc, repo, _ := setupTestimonialUsecase(t)

	repo.On("FindAll", mock.Anything, entity.TestimonialFilter{
		ApprovedOnly: true,
		Rating:       entity.RatingBad,
		Search:       "slow",
	}).Return([]entity.Testimonial{{ID: 1, IsApproved: true, Rating: entity.RatingBad}}, nil)

	response, err := uc.ListApproved(context.Background(), &dto.TestimonialQuery{Rating: "bad", Search: " slow "})

	require.NoError(t, err)
	assert.Equal(t, 1, response.Total)
	assert.Equal(t, "bad", response.RatingFilter)
	repo.AssertExpectations(t)
}

func TestListApproved_IgnoresUnknownRatingAndApprovedFlag(t *testing.T) {
	uc, repo, _ := setupTestimonialUsecase(t)
	unapproved := false

	repo.On("FindAll", mock.Anything, entity.TestimonialFilter{ApprovedOnly: true}).
		Return([]entity.Testimonial{}, nil)

	_, err := uc.ListApproved(context.Background(), &dto.TestimonialQuery{Rating: "excellent", Approved: &unapproved})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestModerate_Approves(t *testing.T) {
	db, sqlMock := newMockDB(t)
	repo := &MockTestimonialRepository{}
	audit := &MockAuditService{}
	uc := NewTestimonialUsecase(db, quietLogger(), repo, &MockDoctorRepository{}, audit)

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	repo.On("FindByID", mock.Anything, int64(4)).Return(&entity.Testimonial{ID: 4}, nil)
	repo.On("SetApproved", mock.Anything, int64(4), true).Return(int64(1), nil)
	audit.On("LogUpdate", mock.Anything, mock.Anything, mock.Anything, entity.AuditActionTestimonialModerate, "testimonial", int64(4), false, true).Return(nil)

	response, err := uc.Moderate(context.Background(), 4, true)

	require.NoError(t, err)
	assert.True(t, response.IsApproved)
	audit.AssertExpectations(t)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestModerate_NotFound(t *testing.T) {
	db, sqlMock := newMockDB(t)
	repo := &MockTestimonialRepository{}
	uc := NewTestimonialUsecase(db, quietLogger(), repo, &MockDoctorRepository{}, &MockAuditService{})

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()
	repo.On("FindByID", mock.Anything, int64(4)).Return(nil, nil)

	_, err := uc.Moderate(context.Background(), 4, true)

	assert.ErrorIs(t, err, ErrTestimonialNotFound)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
