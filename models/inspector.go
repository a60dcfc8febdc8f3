package models

import "time"

// Inspector is an external inspection vendor addressed by the dispatcher.
type Inspector struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name        string     `gorm:"not null" json:"name" form:"name"`
	Company     string     `gorm:"default:''" json:"company" form:"company"`
	Email       string     `gorm:"not null" json:"email" form:"email"`
	Phone       string     `gorm:"default:''" json:"phone" form:"phone"`
	Specialties string     `gorm:"type:text" json:"specialties" form:"specialties"`
	CreatedAt   *time.Time `json:"created_at" form:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at" form:"updated_at"`
}

func (inspector Inspector) MissingFields() string {
	if inspector.Name == "" {
		return "name"
	} else if inspector.Email == "" {
		return "email"
	}
	return ""
}

// InspectionType is a named inspection category (general, termite, radon, ...).
type InspectionType struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name        string     `gorm:"not null;unique" json:"name" form:"name"`
	Description string     `gorm:"type:text" json:"description" form:"description"`
	CreatedAt   *time.Time `json:"created_at" form:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at" form:"updated_at"`
}
