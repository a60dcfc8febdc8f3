package models

import (
	"dealdesk/tools"
	"time"
)

/************************************************
/**** MARK: USER TYPES ****/
/************************************************/
const USER_TYPE_NORMAL = 0
const USER_TYPE_ADMIN = 1
const USER_TYPE_AGENT = 2
const USER_TYPE_COORDINATOR = 3

/************************************************
/**** MARK: USER STATUS ****/
/************************************************/
const USER_STATUS_AVAILABLE = 0
const USER_STATUS_PENDING = 1
const USER_STATUS_BLOCKED = 2

// User is a staff account. Agents carry the extra profile fields
// (license, brokerage) that go out on inspection-request e-mails.
type User struct {
	ID            int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name          string     `gorm:"not null" json:"name" form:"name"`
	Email         string     `gorm:"not null;unique" json:"email" form:"email"`
	Password      string     `gorm:"not null" json:"password" form:"password"`
	Phone         string     `gorm:"default:''" json:"phone" form:"phone"`
	LicenseNumber string     `gorm:"column:license_number;default:''" json:"license_number" form:"license_number"`
	Brokerage     string     `gorm:"default:''" json:"brokerage" form:"brokerage"`
	Status        int        `gorm:"default:0" json:"status" form:"status"`
	Type          int        `gorm:"not null;default:0" json:"type" form:"type"`
	Admin         bool       `gorm:"not null;default:false" json:"admin" form:"admin"`
	CreatedAt     *time.Time `json:"created_at" form:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at" form:"updated_at"`
}

func (user User) MissingFields() string {
	if user.Name == "" {
		return "name"
	} else if user.Email == "" {
		return "email"
	} else if user.Password == "" {
		return "password"
	} else if tools.CheckPassword(user.Password) != "" {
		return tools.CheckPassword(user.Password)
	}
	return ""
}
