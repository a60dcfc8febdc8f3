package controllers

import (
	"errors"
	"net/http"
	"time"

	dbpkg "dealdesk/db"
	"dealdesk/models"
	"dealdesk/tools"
	"dealdesk/workflow"

	"github.com/gin-gonic/gin"
)

type PreviewRequest struct {
	TransactionID int64  `json:"transaction_id" form:"transaction_id"`
	Subject       string `json:"subject" form:"subject"`
	Body          string `json:"body" form:"body"`
}

// GET /api/templates (validated)
func GetTaskTemplates(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var templates []models.TaskTemplate
	if err := db.Order("name asc").Find(&templates).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"templates": templates})
}

// GET /api/templates/:id (validated) - template with its task items
func GetTaskTemplateByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var template models.TaskTemplate
	if err := db.First(&template, id).Error; err != nil {
		RespondError(c, "template not found", http.StatusNotFound)
		return
	}

	var tasks []models.TemplateTask
	if err := db.Where("template_id = ?", id).Order("due_offset_days asc, id asc").Find(&tasks).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"template": template, "tasks": tasks})
}

// POST /api/templates (admin)
func CreateTaskTemplate(c *gin.Context) {
	var template models.TaskTemplate
	if err := c.Bind(&template); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if missing := template.MissingFields(); missing != "" {
		RespondError(c, "missing field "+missing, http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	if err := db.Create(&template).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondCreated(c, gin.H{"template": template})
}

// POST /api/templates/:id/tasks (admin)
func CreateTemplateTask(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var task models.TemplateTask
	if err := c.Bind(&task); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	task.TemplateID = id
	if missing := task.MissingFields(); missing != "" {
		RespondError(c, "missing field "+missing, http.StatusBadRequest)
		return
	}
	if task.Priority == "" {
		task.Priority = models.FOLLOWUP_PRIORITY_MEDIUM
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	if err := db.First(&models.TaskTemplate{}, id).Error; err != nil {
		RespondError(c, "template not found", http.StatusNotFound)
		return
	}

	if err := db.Create(&task).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondCreated(c, gin.H{"task": task})
}

// DELETE /api/templates/:id (admin)
func DeleteTaskTemplate(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	if err := db.Delete(&models.TemplateTask{}, "template_id = ?", id).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := db.Delete(&models.TaskTemplate{}, "id = ?", id).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, true)
}

// POST /api/transactions/:id/apply-template (validated)
// Body: { "template_id": N }
// Expands every template task into a follow-up event on the transaction.
// Due dates are the transaction start date (today when unset) plus each
// item's offset.
func ApplyTemplateToTransaction(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	type Request struct {
		TemplateID int64 `json:"template_id" form:"template_id"`
	}
	var req Request
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.TemplateID <= 0 {
		RespondError(c, "template_id is required", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var transaction models.Transaction
	if err := db.First(&transaction, id).Error; err != nil {
		RespondError(c, "transaction not found", http.StatusNotFound)
		return
	}
	if err := db.First(&models.TaskTemplate{}, req.TemplateID).Error; err != nil {
		RespondError(c, "template not found", http.StatusNotFound)
		return
	}

	var tasks []models.TemplateTask
	if err := db.Where("template_id = ?", req.TemplateID).Order("due_offset_days asc, id asc").Find(&tasks).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	if transaction.StartDate != nil {
		start = *transaction.StartDate
	}

	events := make([]models.FollowUpEvent, 0, len(tasks))
	tx := db.Begin()
	for _, task := range tasks {
		due := start.AddDate(0, 0, task.DueOffsetDays)
		taskID := task.ID
		transactionID := transaction.ID
		event := models.FollowUpEvent{
			TransactionID:  &transactionID,
			EventName:      task.EventName,
			Description:    task.Description,
			DueDate:        &due,
			Priority:       task.Priority,
			Status:         models.FOLLOWUP_STATUS_PENDING,
			TemplateTaskID: &taskID,
		}
		if err := tx.Create(&event).Error; err != nil {
			tx.Rollback()
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
		events = append(events, event)
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondCreated(c, gin.H{"follow_up_events": events})
}

// POST /api/templates/preview (validated)
// Renders a subject/body pair against a transaction's merge variables. The
// result is what the dispatch endpoint accepts verbatim as email_subject /
// email_body.
func PreviewTemplate(c *gin.Context) {
	var req PreviewRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.TransactionID <= 0 {
		RespondError(c, "transaction_id is required", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	agent, _ := GetUserLogged(c)

	vars, err := workflow.LoadMergeVariables(db, req.TransactionID, agent)
	if err != nil {
		if errors.Is(err, workflow.ErrTransactionNotFound) {
			RespondError(c, err.Error(), http.StatusNotFound)
			return
		}
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	subject, body := tools.RenderEmail(req.Subject, req.Body, vars)
	RespondSuccess(c, gin.H{"subject": subject, "body": body})
}
