package entity

import "time"

// MedicalRecord is a clinical note written by the appointment's doctor.
// Records are never edited after creation.
type MedicalRecord struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID   int64     `gorm:"not null;index" json:"appointment_id"`
	DoctorID        int64     `gorm:"not null;index" json:"doctor_id"`
	PatientID       *int64    `gorm:"index" json:"patient_id,omitempty"`
	Diagnosis       string    `gorm:"type:text;not null" json:"diagnosis"`
	Treatment       string    `gorm:"type:text;not null" json:"treatment"`
	Recommendations string    `gorm:"type:text;not null;default:''" json:"recommendations"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Appointment *Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
	Doctor      *Doctor      `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient     *Patient     `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Services    []Service    `gorm:"many2many:medical_record_services;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"services,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}
