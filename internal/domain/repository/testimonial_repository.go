package repository

import (
	"clinic-portal/internal/domain/entity"

	"gorm.io/gorm"
)

type TestimonialRepository interface {
	Create(db *gorm.DB, testimonial *entity.Testimonial) error
	FindByID(db *gorm.DB, id int64) (*entity.Testimonial, error)
	FindAll(db *gorm.DB, filter entity.TestimonialFilter) ([]entity.Testimonial, error)
	SetApproved(db *gorm.DB, id int64, approved bool) (int64, error)
}
