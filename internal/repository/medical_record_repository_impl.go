package repository

import (
	"time"

	"clinic-portal/internal/domain/entity"
	domainRepo "clinic-portal/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type medicalRecordRepository struct{}

func NewMedicalRecordRepository() domainRepo.MedicalRecordRepository {
	return &medicalRecordRepository{}
}

func (r *medicalRecordRepository) Create(db *gorm.DB, record *entity.MedicalRecord) error {
	return db.Omit(clause.Associations).Create(record).Error
}

// AttachServices writes the many-to-many rows for an already inserted record.
func (r *medicalRecordRepository) AttachServices(db *gorm.DB, record *entity.MedicalRecord, services []entity.Service) error {
	if len(services) == 0 {
		return nil
	}
	return db.Model(record).Omit("Services.*").Association("Services").Append(services)
}

// ExistsSimilar reports whether the appointment already has a record created
// in [from, to) whose diagnosis contains diagnosis, case-insensitively.
func (r *medicalRecordRepository) ExistsSimilar(db *gorm.DB, appointmentID int64, diagnosis string, from, to time.Time) (bool, error) {
	var count int64
	err := db.Model(&entity.MedicalRecord{}).
		Where("appointment_id = ?", appointmentID).
		Where("diagnosis ILIKE ?", containsPattern(diagnosis)).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *medicalRecordRepository) FindByAppointment(db *gorm.DB, appointmentID int64) ([]entity.MedicalRecord, error) {
	var records []entity.MedicalRecord
	err := db.Preload("Services").Preload("Doctor").
		Where("appointment_id = ?", appointmentID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *medicalRecordRepository) FindAll(db *gorm.DB, filter entity.MedicalRecordFilter) ([]entity.MedicalRecord, error) {
	var records []entity.MedicalRecord
	query := db.Model(&entity.MedicalRecord{}).
		Preload("Appointment").Preload("Doctor").Preload("Services")

	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query = query.
			Joins("JOIN appointments ON appointments.id = medical_records.appointment_id").
			Joins("JOIN doctors ON doctors.id = medical_records.doctor_id").
			Where("(appointments.name ILIKE ? OR appointments.phone ILIKE ? OR medical_records.diagnosis ILIKE ? OR medical_records.treatment ILIKE ? OR doctors.name ILIKE ?)",
				pattern, pattern, pattern, pattern, pattern)
	}

	err := query.Order("medical_records.created_at DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
