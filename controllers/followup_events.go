package controllers

import (
	"errors"
	"net/http"

	dbpkg "dealdesk/db"
	"dealdesk/models"
	"dealdesk/tools"
	"dealdesk/workflow"

	"github.com/gin-gonic/gin"
)

type FollowUpEventRequest struct {
	TransactionID *int64  `json:"transaction_id" form:"transaction_id"`
	EventName     *string `json:"event_name" form:"event_name"`
	Description   *string `json:"description" form:"description"`
	Notes         *string `json:"notes" form:"notes"`
	DueDate       *string `json:"due_date" form:"due_date"`
	Priority      *string `json:"priority" form:"priority"`
	Status        *string `json:"status" form:"status"`
	AssignedTo    *int64  `json:"assigned_to" form:"assigned_to"`
}

// GET /api/followup-events (validated)
// Filters: transaction_id, status, priority, assigned_to.
// Ordered by due date, with urgency as the tie-break.
func GetFollowUpEvents(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	q := db.Order("due_date asc, CASE priority WHEN 'urgent' THEN 0 WHEN 'high' THEN 1 ELSE 2 END, id asc")
	if transactionID := c.Query("transaction_id"); transactionID != "" {
		q = q.Where("transaction_id = ?", transactionID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if priority := c.Query("priority"); priority != "" {
		q = q.Where("priority = ?", priority)
	}
	if assignedTo := c.Query("assigned_to"); assignedTo != "" {
		q = q.Where("assigned_to = ?", assignedTo)
	}

	var events []models.FollowUpEvent
	if err := q.Find(&events).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"follow_up_events": events})
}

// GET /api/followup-events/:id (validated)
func GetFollowUpEventByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var event models.FollowUpEvent
	if err := db.First(&event, id).Error; err != nil {
		RespondError(c, "follow-up event not found", http.StatusNotFound)
		return
	}
	RespondSuccess(c, gin.H{"follow_up_event": event})
}

// POST /api/followup-events (validated)
func CreateFollowUpEvent(c *gin.Context) {
	var req FollowUpEventRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.EventName == nil || *req.EventName == "" {
		RespondError(c, "event_name is required", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	event := models.FollowUpEvent{
		EventName: *req.EventName,
		Priority:  models.FOLLOWUP_PRIORITY_MEDIUM,
		Status:    models.FOLLOWUP_STATUS_PENDING,
	}
	if req.TransactionID != nil && *req.TransactionID > 0 {
		if err := db.First(&models.Transaction{}, *req.TransactionID).Error; err != nil {
			RespondError(c, "transaction not found", http.StatusNotFound)
			return
		}
		event.TransactionID = req.TransactionID
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Notes != nil {
		event.Notes = *req.Notes
	}
	if req.Priority != nil && *req.Priority != "" {
		if !models.ValidFollowUpPriority(*req.Priority) {
			RespondError(c, "priority is invalid", http.StatusBadRequest)
			return
		}
		event.Priority = *req.Priority
	}
	if req.AssignedTo != nil && *req.AssignedTo > 0 {
		event.AssignedTo = req.AssignedTo
	}
	if req.DueDate != nil {
		dueDate, ok := ParseDate(*req.DueDate)
		if !ok {
			RespondError(c, "due_date is invalid, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		event.DueDate = dueDate
	}

	if err := db.Create(&event).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondCreated(c, gin.H{"follow_up_event": event})
}

// PUT /api/followup-events/:id (validated)
// Partial update; omitted fields keep their value. A status change runs the
// completion workflow (customer notification + auto-closure check) and the
// response says whether the parent transaction closed as a side effect.
func UpdateFollowUpEvent(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var req FollowUpEventRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	upd := workflow.TaskUpdate{
		EventName:   req.EventName,
		Description: req.Description,
		Notes:       req.Notes,
		Priority:    req.Priority,
		Status:      req.Status,
		AssignedTo:  req.AssignedTo,
	}
	if req.DueDate != nil && *req.DueDate != "" {
		dueDate, ok := ParseDate(*req.DueDate)
		if !ok {
			RespondError(c, "due_date is invalid, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		upd.DueDate = dueDate
	}

	actorID := int64(0)
	if user, ok := GetUserLogged(c); ok {
		actorID = user.ID
	}

	service := workflow.TaskService{DB: db, Notifier: tools.NotifierFromEnv()}
	result, err := service.UpdateTask(requestCtx(c), id, upd, actorID)
	if err != nil {
		if errors.Is(err, workflow.ErrTaskNotFound) {
			RespondError(c, err.Error(), http.StatusNotFound)
			return
		}
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, result)
}

// DELETE /api/followup-events/:id (admin)
// Administrative removal; the workflow itself never hard-deletes tasks.
func DeleteFollowUpEvent(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	if err := db.Delete(&models.FollowUpEvent{}, "id = ?", id).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, true)
}
