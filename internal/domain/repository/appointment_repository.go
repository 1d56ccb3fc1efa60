package repository

import (
	"clinic-portal/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id int64) (*entity.Appointment, error)
	FindByIDForUpdate(db *gorm.DB, id int64) (*entity.Appointment, error)
	FindByDoctor(db *gorm.DB, doctorID int64, filter entity.DashboardFilter) ([]entity.Appointment, error)
	FindByPhone(db *gorm.DB, phone string) ([]entity.Appointment, error)
	FindAll(db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error)
	UpdateStatusAndPatient(db *gorm.DB, appointment *entity.Appointment) error
}
