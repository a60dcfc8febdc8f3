package models

import "time"

/************************************************
/**** MARK: CUSTOMER SIDE (transaction join) ****/
/************************************************/
const CUSTOMER_SIDE_BUYER = "buyer"
const CUSTOMER_SIDE_SELLER = "seller"

// Customer is a client record (buyer or seller on one or more transactions).
// AccessCode grants read-only portal access.
type Customer struct {
	ID         int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name       string     `gorm:"not null" json:"name" form:"name"`
	Email      string     `gorm:"default:''" json:"email" form:"email"`
	Phone      string     `gorm:"default:''" json:"phone" form:"phone"`
	AccessCode string     `gorm:"column:access_code;default:''" json:"access_code" form:"access_code"`
	Notes      string     `gorm:"type:text" json:"notes" form:"notes"`
	CreatedAt  *time.Time `json:"created_at" form:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at" form:"updated_at"`
}

func (customer Customer) MissingFields() string {
	if customer.Name == "" {
		return "name"
	}
	return ""
}

// TransactionCustomer links a customer to a transaction on one side of the deal.
type TransactionCustomer struct {
	ID            int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	TransactionID int64      `gorm:"not null;index" json:"transaction_id" form:"transaction_id"`
	CustomerID    int64      `gorm:"not null;index" json:"customer_id" form:"customer_id"`
	Side          string     `gorm:"not null" json:"side" form:"side"`
	CreatedAt     *time.Time `json:"created_at" form:"created_at"`
}
