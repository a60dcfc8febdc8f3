package models

import "time"

// TaskTemplate is a named checklist applied to new transactions.
type TaskTemplate struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name        string     `gorm:"not null;unique" json:"name" form:"name"`
	Description string     `gorm:"type:text" json:"description" form:"description"`
	CreatedAt   *time.Time `json:"created_at" form:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at" form:"updated_at"`
}

func (template TaskTemplate) MissingFields() string {
	if template.Name == "" {
		return "name"
	}
	return ""
}

// TemplateTask is one item of a template. DueOffsetDays is added to the
// transaction start date when the template expands into follow-up events.
type TemplateTask struct {
	ID            int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	TemplateID    int64      `gorm:"column:template_id;not null;index" json:"template_id" form:"template_id"`
	EventName     string     `gorm:"column:event_name;not null" json:"event_name" form:"event_name"`
	Description   string     `gorm:"type:text" json:"description" form:"description"`
	Priority      string     `gorm:"not null;default:'medium'" json:"priority" form:"priority"`
	DueOffsetDays int        `gorm:"column:due_offset_days;default:0" json:"due_offset_days" form:"due_offset_days"`
	CreatedAt     *time.Time `json:"created_at" form:"created_at"`
}

func (task TemplateTask) MissingFields() string {
	if task.TemplateID == 0 {
		return "template_id"
	} else if task.EventName == "" {
		return "event_name"
	}
	return ""
}
