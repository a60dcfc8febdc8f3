package models

import (
	"strings"
	"time"
)

// Property is the subject of a transaction.
type Property struct {
	ID             int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	AddressStreet  string     `gorm:"column:address_street;not null" json:"address_street" form:"address_street"`
	AddressCity    string     `gorm:"column:address_city;default:''" json:"address_city" form:"address_city"`
	AddressState   string     `gorm:"column:address_state;default:''" json:"address_state" form:"address_state"`
	AddressZip     string     `gorm:"column:address_zip;default:''" json:"address_zip" form:"address_zip"`
	ListPriceCents int64      `gorm:"column:list_price_cents;default:0" json:"list_price_cents" form:"list_price_cents"`
	Bedrooms       int        `gorm:"default:0" json:"bedrooms" form:"bedrooms"`
	Bathrooms      int        `gorm:"default:0" json:"bathrooms" form:"bathrooms"`
	SquareFeet     int        `gorm:"column:square_feet;default:0" json:"square_feet" form:"square_feet"`
	CreatedAt      *time.Time `json:"created_at" form:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at" form:"updated_at"`
}

func (property Property) MissingFields() string {
	if property.AddressStreet == "" {
		return "address_street"
	}
	return ""
}

// FullAddress joins the non-empty address parts, e.g. "12 Oak St, Boston, MA 02101".
func (property Property) FullAddress() string {
	parts := []string{}
	if property.AddressStreet != "" {
		parts = append(parts, property.AddressStreet)
	}
	if property.AddressCity != "" {
		parts = append(parts, property.AddressCity)
	}
	tail := strings.TrimSpace(property.AddressState + " " + property.AddressZip)
	if tail != "" {
		parts = append(parts, tail)
	}
	return strings.Join(parts, ", ")
}
