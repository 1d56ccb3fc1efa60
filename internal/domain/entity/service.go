package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a medical service listed on the public site.
type Service struct {
	ID          int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string              `gorm:"type:varchar(200);not null" json:"title"`
	Description string              `gorm:"type:text;not null" json:"description"`
	Order       int                 `gorm:"column:display_order;not null;default:0" json:"order"`
	Price       decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"price"`
	CreatedAt   time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Service) TableName() string {
	return "services"
}
