package entity

import "time"

type Patient struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string     `gorm:"type:varchar(100);not null" json:"name"`
	Phone     string     `gorm:"type:varchar(20);not null;index" json:"phone"`
	BirthDate *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Notes     string     `gorm:"type:text;not null;default:''" json:"notes,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Patient) TableName() string {
	return "patients"
}
