package entity

import "time"

// Doctor is a clinic specialist. Username and Password are optional; a doctor
// without them cannot use self-service login.
type Doctor struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string    `gorm:"type:varchar(100);not null" json:"name"`
	Specialization string    `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Experience     int       `gorm:"not null;default:0" json:"experience"`
	Description    string    `gorm:"type:text;not null;default:''" json:"description,omitempty"`
	Username       *string   `gorm:"type:varchar(50);uniqueIndex" json:"username,omitempty"`
	Password       *string   `gorm:"type:varchar(128)" json:"-"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// HasCredentials reports whether the doctor can log in.
func (d *Doctor) HasCredentials() bool {
	return d.Username != nil && *d.Username != "" && d.Password != nil && *d.Password != ""
}
