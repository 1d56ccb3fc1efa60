package repository

import (
	"clinic-portal/internal/domain/entity"

	"gorm.io/gorm"
)

type ServiceRepository interface {
	Create(db *gorm.DB, service *entity.Service) error
	FindByID(db *gorm.DB, id int64) (*entity.Service, error)
	FindByIDs(db *gorm.DB, ids []int64) ([]entity.Service, error)
	FindAll(db *gorm.DB) ([]entity.Service, error)
	Update(db *gorm.DB, service *entity.Service) error
	Delete(db *gorm.DB, id int64) (int64, error)
}
