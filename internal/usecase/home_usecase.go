package usecase

import (
	"context"

	"clinic-portal/internal/converter"
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type HomeUsecase interface {
	GetHome(ctx context.Context) (*dto.HomeResponse, error)
}

type homeUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	serviceRepo     repository.ServiceRepository
	doctorRepo      repository.DoctorRepository
	testimonialRepo repository.TestimonialRepository
}

func NewHomeUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	serviceRepo repository.ServiceRepository,
	doctorRepo repository.DoctorRepository,
	testimonialRepo repository.TestimonialRepository,
) HomeUsecase {
	return &homeUsecase{
		db:              db,
		log:             log,
		serviceRepo:     serviceRepo,
		doctorRepo:      doctorRepo,
		testimonialRepo: testimonialRepo,
	}
}

// GetHome loads the three home page lists concurrently. Only approved
// testimonials are shown.
func (u *homeUsecase) GetHome(ctx context.Context) (*dto.HomeResponse, error) {
	var (
		services     []entity.Service
		doctors      []entity.Doctor
		testimonials []entity.Testimonial
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		services, err = u.serviceRepo.FindAll(u.db.WithContext(gctx))
		if err != nil {
			u.log.Warnf("Failed to find services: %+v", err)
		}
		return err
	})

	g.Go(func() error {
		var err error
		doctors, err = u.doctorRepo.FindAll(u.db.WithContext(gctx))
		if err != nil {
			u.log.Warnf("Failed to find doctors: %+v", err)
		}
		return err
	})

	g.Go(func() error {
		var err error
		testimonials, err = u.testimonialRepo.FindAll(u.db.WithContext(gctx), entity.TestimonialFilter{ApprovedOnly: true})
		if err != nil {
			u.log.Warnf("Failed to find testimonials: %+v", err)
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.HomeResponse{
		Services:     converter.ServicesToResponses(services),
		Doctors:      converter.DoctorsToResponses(doctors),
		Testimonials: converter.TestimonialsToResponses(testimonials),
	}, nil
}
