package repository

import (
	"time"

	"clinic-portal/internal/domain/entity"

	"gorm.io/gorm"
)

type MedicalRecordRepository interface {
	Create(db *gorm.DB, record *entity.MedicalRecord) error
	AttachServices(db *gorm.DB, record *entity.MedicalRecord, services []entity.Service) error
	ExistsSimilar(db *gorm.DB, appointmentID int64, diagnosis string, from, to time.Time) (bool, error)
	FindByAppointment(db *gorm.DB, appointmentID int64) ([]entity.MedicalRecord, error)
	FindAll(db *gorm.DB, filter entity.MedicalRecordFilter) ([]entity.MedicalRecord, error)
}
