package models

import "time"

/************************************************
/**** MARK: TRANSACTION STATUS ****/
/************************************************/
const TRANSACTION_STATUS_PENDING = "pending"
const TRANSACTION_STATUS_ACTIVE = "active"
const TRANSACTION_STATUS_UNDER_CONTRACT = "under_contract"
const TRANSACTION_STATUS_CLOSED = "closed"
const TRANSACTION_STATUS_CANCELLED = "cancelled"

// Transaction is one deal: a property, the agents working it, and its
// participants. It auto-closes once every follow-up event on it reaches a
// terminal status (see workflow package).
type Transaction struct {
	ID             int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	PropertyID     int64      `gorm:"not null;index" json:"property_id" form:"property_id"`
	ListingAgentID *int64     `gorm:"column:listing_agent_id;index" json:"listing_agent_id" form:"listing_agent_id"`
	BuyerAgentID   *int64     `gorm:"column:buyer_agent_id;index" json:"buyer_agent_id" form:"buyer_agent_id"`
	AttorneyID     *int64     `gorm:"index" json:"attorney_id" form:"attorney_id"`
	LenderID       *int64     `gorm:"index" json:"lender_id" form:"lender_id"`
	Status         string     `gorm:"not null;default:'pending';index" json:"status" form:"status"`
	PriceCents     int64      `gorm:"column:price_cents;default:0" json:"price_cents" form:"price_cents"`
	StartDate      *time.Time `gorm:"column:start_date" json:"start_date" form:"start_date"`
	ClosingDate    *time.Time `gorm:"column:closing_date" json:"closing_date" form:"closing_date"`
	IsActive       bool       `gorm:"column:is_active;not null;default:true" json:"is_active" form:"is_active"`
	CreatedAt      *time.Time `json:"created_at" form:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at" form:"updated_at"`
}

func (transaction Transaction) MissingFields() string {
	if transaction.PropertyID == 0 {
		return "property_id"
	}
	return ""
}
