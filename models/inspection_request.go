package models

import "time"

/************************************************
/**** MARK: INSPECTION REQUEST STATUS ****/
/************************************************/
const INSPECTION_REQUEST_STATUS_PENDING = "pending"
const INSPECTION_REQUEST_STATUS_SENT = "sent"

// InspectionRequest is one outbound solicitation to one inspector for one
// transaction. EmailSentAt is set if and only if status is "sent"; a request
// whose e-mail failed stays "pending" and can be retried manually.
type InspectionRequest struct {
	ID               int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Reference        string     `gorm:"not null;unique" json:"reference"`
	TransactionID    int64      `gorm:"not null;index" json:"transaction_id" form:"transaction_id"`
	InspectorID      int64      `gorm:"not null;index" json:"inspector_id" form:"inspector_id"`
	FollowUpEventID  *int64     `gorm:"column:follow_up_event_id;index" json:"follow_up_event_id" form:"follow_up_event_id"`
	InspectionTypeID *int64     `gorm:"column:inspection_type_id" json:"inspection_type_id" form:"inspection_type_id"`
	RequestedDate    *time.Time `gorm:"column:requested_date" json:"requested_date" form:"requested_date"`
	Notes            string     `gorm:"type:text" json:"notes" form:"notes"`
	Status           string     `gorm:"not null;default:'pending';index" json:"status" form:"status"`
	EmailSentAt      *time.Time `gorm:"column:email_sent_at" json:"email_sent_at"`
	EmailSentBy      *int64     `gorm:"column:email_sent_by" json:"email_sent_by"`
	CreatedAt        *time.Time `json:"created_at" form:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at" form:"updated_at"`
}

// InspectionRequestHistory is an append-only audit row. Written once per
// status change, never updated or deleted.
type InspectionRequestHistory struct {
	ID                  int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	InspectionRequestID int64      `gorm:"column:inspection_request_id;not null;index" json:"inspection_request_id"`
	StatusFrom          string     `gorm:"column:status_from;not null" json:"status_from"`
	StatusTo            string     `gorm:"column:status_to;not null" json:"status_to"`
	ChangedBy           *int64     `gorm:"column:changed_by" json:"changed_by"`
	Notes               string     `gorm:"type:text" json:"notes"`
	CreatedAt           *time.Time `json:"created_at"`
}
