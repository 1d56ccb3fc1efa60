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
	"clinic-portal/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDuplicateTestimonial = errors.New("you have already left this review for this doctor")
	ErrTestimonialNotFound  = errors.New("testimonial not found")
	ErrInvalidRating        = errors.New("rating must be good or bad")
)

var ratingChoices = []dto.RatingChoice{
	{Value: string(entity.RatingGood), Label: "Good"},
	{Value: string(entity.RatingBad), Label: "Bad"},
}

type TestimonialUsecase interface {
	GetFormData(ctx context.Context) (*dto.TestimonialFormResponse, error)
	Submit(ctx context.Context, req *dto.CreateTestimonialRequest) (*dto.TestimonialResponse, error)
	ListApproved(ctx context.Context, query *dto.TestimonialQuery) (*dto.TestimonialListResponse, error)
	ListAll(ctx context.Context, query *dto.TestimonialQuery) (*dto.TestimonialListResponse, error)
	Moderate(ctx context.Context, id int64, approved bool) (*dto.TestimonialResponse, error)
}

type testimonialUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	testimonialRepo repository.TestimonialRepository
	doctorRepo      repository.DoctorRepository
	auditService    service.AuditService
}

func NewTestimonialUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	testimonialRepo repository.TestimonialRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) TestimonialUsecase {
	return &testimonialUsecase{
		db:              db,
		log:             log,
		testimonialRepo: testimonialRepo,
		doctorRepo:      doctorRepo,
		auditService:    auditService,
	}
}

func (u *testimonialUsecase) GetFormData(ctx context.Context) (*dto.TestimonialFormResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	return &dto.TestimonialFormResponse{
		Doctors: converter.DoctorsToChoices(doctors),
		Ratings: ratingChoices,
	}, nil
}

// Submit stores an unapproved testimonial. The fingerprint column is unique,
// so resubmitting the same name, doctor and message stores nothing.
func (u *testimonialUsecase) Submit(ctx context.Context, req *dto.CreateTestimonialRequest) (*dto.TestimonialResponse, error) {
	rating := entity.TestimonialRating(req.Rating)
	if !rating.IsValid() {
		return nil, ErrInvalidRating
	}

	testimonial := (&entity.Testimonial{
		Name:       strings.TrimSpace(req.Name),
		DoctorID:   req.DoctorID,
		Message:    strings.TrimSpace(req.Message),
		Rating:     rating,
		IsApproved: false,
	}).Fingerprinted()

	if err := u.testimonialRepo.Create(u.db.WithContext(ctx), testimonial); err != nil {
		if isDuplicateKeyError(err, "uq_testimonials_fingerprint") {
			return nil, ErrDuplicateTestimonial
		}
		if isForeignKeyError(err, "doctor_id") {
			return nil, ErrDoctorNotFound
		}
		u.log.Warnf("Failed to create testimonial: %+v", err)
		return nil, err
	}

	u.log.Infof("Testimonial submitted for moderation: id=%d, doctor=%d", testimonial.ID, testimonial.DoctorID)

	return converter.TestimonialToResponse(testimonial), nil
}

// ListApproved is the public listing; unapproved testimonials never appear.
// An unknown rating is ignored.
func (u *testimonialUsecase) ListApproved(ctx context.Context, query *dto.TestimonialQuery) (*dto.TestimonialListResponse, error) {
	filter := entity.TestimonialFilter{
		ApprovedOnly: true,
		Search:       strings.TrimSpace(query.Search),
	}
	if rating := entity.TestimonialRating(query.Rating); rating.IsValid() {
		filter.Rating = rating
	}

	return u.list(ctx, filter, query)
}

// ListAll is the moderation queue view.
func (u *testimonialUsecase) ListAll(ctx context.Context, query *dto.TestimonialQuery) (*dto.TestimonialListResponse, error) {
	filter := entity.TestimonialFilter{
		Approved: query.Approved,
		Search:   strings.TrimSpace(query.Search),
	}
	if rating := entity.TestimonialRating(query.Rating); rating.IsValid() {
		filter.Rating = rating
	}

	return u.list(ctx, filter, query)
}

func (u *testimonialUsecase) list(ctx context.Context, filter entity.TestimonialFilter, query *dto.TestimonialQuery) (*dto.TestimonialListResponse, error) {
	testimonials, err := u.testimonialRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find testimonials: %+v", err)
		return nil, err
	}

	return &dto.TestimonialListResponse{
		Testimonials: converter.TestimonialsToResponses(testimonials),
		RatingFilter: string(filter.Rating),
		SearchQuery:  query.Search,
		Total:        len(testimonials),
	}, nil
}

// Moderate flips the approval flag.
func (u *testimonialUsecase) Moderate(ctx context.Context, id int64, approved bool) (*dto.TestimonialResponse, error) {
	actor, _ := middleware.GetPrincipalFromContext(ctx)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	testimonial, err := u.testimonialRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find testimonial by ID: %+v", err)
		return nil, err
	}
	if testimonial == nil {
		return nil, ErrTestimonialNotFound
	}

	wasApproved := testimonial.IsApproved

	if _, err := u.testimonialRepo.SetApproved(tx, id, approved); err != nil {
		u.log.Warnf("Failed to moderate testimonial: %+v", err)
		return nil, err
	}
	if approved {
		testimonial.Approve()
	} else {
		testimonial.IsApproved = false
	}

	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionTestimonialModerate, "testimonial", id, wasApproved, approved); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Testimonial moderated: id=%d, approved=%t", id, approved)

	return converter.TestimonialToResponse(testimonial), nil
}
