package entity

import "time"

// AppointmentStatus represents the processing state of an appointment.
// Any status may be set from any other.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// AppointmentStatuses lists every status in display order.
var AppointmentStatuses = []AppointmentStatus{
	AppointmentStatusPending,
	AppointmentStatusConfirmed,
	AppointmentStatusCancelled,
	AppointmentStatusCompleted,
}

func (s AppointmentStatus) IsValid() bool {
	for _, status := range AppointmentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Appointment is a booking request submitted from the public form.
// (phone, doctor_id, date) is unique at the store level.
type Appointment struct {
	ID        int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string            `gorm:"type:varchar(100);not null" json:"name"`
	Phone     string            `gorm:"type:varchar(20);not null;index" json:"phone"`
	DoctorID  int64             `gorm:"not null;index" json:"doctor_id"`
	Date      time.Time         `gorm:"type:date;not null;index" json:"date"`
	Message   string            `gorm:"type:text;not null;default:''" json:"message"`
	Status    AppointmentStatus `gorm:"type:varchar(10);not null;default:'pending';index" json:"status"`
	PatientID *int64            `gorm:"index" json:"patient_id,omitempty"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// SetStatus moves the appointment to status without transition checks.
func (a *Appointment) SetStatus(status AppointmentStatus) {
	a.Status = status
}
