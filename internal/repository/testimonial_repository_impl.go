package repository

import (
	"errors"

	"clinic-portal/internal/domain/entity"
	domainRepo "clinic-portal/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type testimonialRepository struct{}

func NewTestimonialRepository() domainRepo.TestimonialRepository {
	return &testimonialRepository{}
}

func (r *testimonialRepository) Create(db *gorm.DB, testimonial *entity.Testimonial) error {
	return db.Omit(clause.Associations).Create(testimonial).Error
}

func (r *testimonialRepository) FindByID(db *gorm.DB, id int64) (*entity.Testimonial, error) {
	var testimonial entity.Testimonial
	err := db.Preload("Doctor").Where("id = ?", id).First(&testimonial).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &testimonial, nil
}

func (r *testimonialRepository) FindAll(db *gorm.DB, filter entity.TestimonialFilter) ([]entity.Testimonial, error) {
	var testimonials []entity.Testimonial
	query := db.Preload("Doctor")

	if filter.ApprovedOnly {
		query = query.Where("is_approved = ?", true)
	} else if filter.Approved != nil {
		query = query.Where("is_approved = ?", *filter.Approved)
	}
	if filter.Rating != "" {
		query = query.Where("rating = ?", filter.Rating)
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query = query.Where("(name ILIKE ? OR message ILIKE ?)", pattern, pattern)
	}

	err := query.Order("created_at DESC").Find(&testimonials).Error
	if err != nil {
		return nil, err
	}
	return testimonials, nil
}

func (r *testimonialRepository) SetApproved(db *gorm.DB, id int64, approved bool) (int64, error) {
	result := db.Model(&entity.Testimonial{}).
		Where("id = ?", id).
		Update("is_approved", approved)
	return result.RowsAffected, result.Error
}
