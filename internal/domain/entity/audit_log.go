package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// AuditLog is an append-only trail of state changes and logins.
type AuditLog struct {
	ID        int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorKind PrincipalKind `gorm:"type:varchar(10)" json:"actor_kind,omitempty"`
	ActorID   *int64        `gorm:"index" json:"actor_id,omitempty"`
	ActorName string        `gorm:"type:varchar(255);not null;default:''" json:"actor_name,omitempty"`
	Action    string        `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON          `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time     `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

const (
	AuditActionStaffLogin            = "staff.login"
	AuditActionDoctorLogin           = "doctor.login"
	AuditActionLogout                = "session.logout"
	AuditActionAppointmentStatus     = "appointment.status"
	AuditActionAppointmentUpdate     = "appointment.update"
	AuditActionTestimonialModerate   = "testimonial.moderate"
	AuditActionMedicalRecordCreate   = "medical_record.create"
	AuditActionDoctorCreate          = "doctor.create"
	AuditActionDoctorUpdate          = "doctor.update"
	AuditActionDoctorDelete          = "doctor.delete"
	AuditActionDoctorPasswordChanged = "doctor.password"
	AuditActionServiceCreate         = "service.create"
	AuditActionServiceUpdate         = "service.update"
	AuditActionServiceDelete         = "service.delete"
	AuditActionPatientCreate         = "patient.create"
)
