package entity

import "time"

// User is a back-office account. Only accounts with IsStaff may log in
// through the staff login.
type User struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username    string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Password    string    `gorm:"type:varchar(128);not null" json:"-"`
	FullName    string    `gorm:"type:varchar(255);not null;default:''" json:"full_name"`
	IsStaff     bool      `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser bool      `gorm:"not null;default:false" json:"is_superuser"`
	IsActive    *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// CanLogin reports whether the account may open a staff session.
func (u *User) CanLogin() bool {
	return u.IsStaff && (u.IsActive == nil || *u.IsActive)
}

// DisplayName falls back to the username when no full name is set.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
