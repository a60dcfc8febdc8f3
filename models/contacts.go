package models

import "time"

// Attorney is a simple contact record referenced by transactions.
type Attorney struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name      string     `gorm:"not null" json:"name" form:"name"`
	Firm      string     `gorm:"default:''" json:"firm" form:"firm"`
	Email     string     `gorm:"default:''" json:"email" form:"email"`
	Phone     string     `gorm:"default:''" json:"phone" form:"phone"`
	CreatedAt *time.Time `json:"created_at" form:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" form:"updated_at"`
}

func (attorney Attorney) MissingFields() string {
	if attorney.Name == "" {
		return "name"
	}
	return ""
}

// Lender is a simple contact record referenced by transactions.
type Lender struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name      string     `gorm:"not null" json:"name" form:"name"`
	Company   string     `gorm:"default:''" json:"company" form:"company"`
	Email     string     `gorm:"default:''" json:"email" form:"email"`
	Phone     string     `gorm:"default:''" json:"phone" form:"phone"`
	CreatedAt *time.Time `json:"created_at" form:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" form:"updated_at"`
}

func (lender Lender) MissingFields() string {
	if lender.Name == "" {
		return "name"
	}
	return ""
}
