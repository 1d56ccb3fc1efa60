package repository

import (
	"errors"

	"clinic-portal/internal/domain/entity"
	domainRepo "clinic-portal/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit(clause.Associations).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id int64) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Doctor").Preload("Patient").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// FindByIDForUpdate locks the appointment row until the surrounding
// transaction ends, serializing writers that depend on it.
func (r *appointmentRepository) FindByIDForUpdate(db *gorm.DB, id int64) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByDoctor(db *gorm.DB, doctorID int64, filter entity.DashboardFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Where("doctor_id = ?", doctorID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query = query.Where("(name ILIKE ? OR phone ILIKE ? OR message ILIKE ?)", pattern, pattern, pattern)
	}

	err := query.Order("date DESC").Order("created_at DESC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindByPhone returns the visit history for everyone booked under phone.
func (r *appointmentRepository) FindByPhone(db *gorm.DB, phone string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor").
		Where("phone = ?", phone).
		Order("date DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Preload("Doctor")

	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	if filter.Date != nil {
		query = query.Where("date = ?", filter.Date.Format("2006-01-02"))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query = query.Where("(name ILIKE ? OR phone ILIKE ?)", pattern, pattern)
	}

	err := query.Order("created_at DESC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) UpdateStatusAndPatient(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Model(appointment).
		Select("status", "patient_id", "updated_at").
		Updates(appointment).Error
}
