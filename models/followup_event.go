package models

import "time"

/************************************************
/**** MARK: FOLLOW-UP EVENT STATUS ****/
/************************************************/
const FOLLOWUP_STATUS_PENDING = "pending"
const FOLLOWUP_STATUS_OVERDUE = "overdue"
const FOLLOWUP_STATUS_COMPLETED = "completed"
const FOLLOWUP_STATUS_NOT_APPLICABLE = "not_applicable"

/************************************************
/**** MARK: FOLLOW-UP EVENT PRIORITY ****/
/************************************************/
const FOLLOWUP_PRIORITY_MEDIUM = "medium"
const FOLLOWUP_PRIORITY_HIGH = "high"
const FOLLOWUP_PRIORITY_URGENT = "urgent"

// FollowUpEvent is a task on a transaction's checklist. CompletedAt is set
// if and only if status is "completed"; the status write and the timestamp
// write always happen together (see workflow.TaskService).
type FollowUpEvent struct {
	ID             int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	TransactionID  *int64     `gorm:"index" json:"transaction_id" form:"transaction_id"`
	EventName      string     `gorm:"column:event_name;not null" json:"event_name" form:"event_name"`
	Description    string     `gorm:"type:text" json:"description" form:"description"`
	Notes          string     `gorm:"type:text" json:"notes" form:"notes"`
	DueDate        *time.Time `gorm:"column:due_date;index" json:"due_date" form:"due_date"`
	Priority       string     `gorm:"not null;default:'medium'" json:"priority" form:"priority"`
	Status         string     `gorm:"not null;default:'pending';index" json:"status" form:"status"`
	AssignedTo     *int64     `gorm:"column:assigned_to;index" json:"assigned_to" form:"assigned_to"`
	CompletedAt    *time.Time `gorm:"column:completed_at" json:"completed_at" form:"completed_at"`
	TemplateTaskID *int64     `gorm:"column:template_task_id" json:"template_task_id" form:"template_task_id"`
	CreatedAt      *time.Time `json:"created_at" form:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at" form:"updated_at"`
}

func (event FollowUpEvent) MissingFields() string {
	if event.EventName == "" {
		return "event_name"
	}
	return ""
}

// ValidFollowUpStatus reports whether status is one of the allowed values.
func ValidFollowUpStatus(status string) bool {
	switch status {
	case FOLLOWUP_STATUS_PENDING, FOLLOWUP_STATUS_OVERDUE,
		FOLLOWUP_STATUS_COMPLETED, FOLLOWUP_STATUS_NOT_APPLICABLE:
		return true
	}
	return false
}

// ValidFollowUpPriority reports whether priority is one of the allowed values.
func ValidFollowUpPriority(priority string) bool {
	switch priority {
	case FOLLOWUP_PRIORITY_MEDIUM, FOLLOWUP_PRIORITY_HIGH, FOLLOWUP_PRIORITY_URGENT:
		return true
	}
	return false
}

// IsTerminal reports whether the status counts as "done" for auto-closure.
func IsTerminalFollowUpStatus(status string) bool {
	return status == FOLLOWUP_STATUS_COMPLETED || status == FOLLOWUP_STATUS_NOT_APPLICABLE
}

// FollowUpPriorityRank orders priorities by urgency (urgent first).
// Used as a sort tie-break after due date.
func FollowUpPriorityRank(priority string) int {
	switch priority {
	case FOLLOWUP_PRIORITY_URGENT:
		return 0
	case FOLLOWUP_PRIORITY_HIGH:
		return 1
	default:
		return 2
	}
}
