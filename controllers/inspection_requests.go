package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	dbpkg "dealdesk/db"
	"dealdesk/models"
	"dealdesk/tools"
	"dealdesk/workflow"

	"github.com/gin-gonic/gin"
)

type DispatchRequest struct {
	InspectorIDs []int64 `json:"inspector_ids" form:"inspector_ids"`
	// InspectionTypeID arrives as a string because a blank form select posts
	// ""; it is normalized to "no type" rather than an invalid foreign key.
	InspectionTypeID string `json:"inspection_type_id" form:"inspection_type_id"`
	FollowUpEventID  *int64 `json:"follow_up_event_id" form:"follow_up_event_id"`
	RequestedDate    string `json:"requested_date" form:"requested_date"`
	Notes            string `json:"notes" form:"notes"`
	EmailSubject     string `json:"email_subject" form:"email_subject"`
	EmailBody        string `json:"email_body" form:"email_body"`
}

// POST /api/transactions/:id/inspection-requests (validated)
// Fans out one request per inspector. Always answers 201 with per-inspector
// outcomes; the caller inspects email_sent per entry ("3 of 4 sent").
func DispatchInspectionRequests(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var req DispatchRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	input := workflow.DispatchInput{
		TransactionID:   id,
		InspectorIDs:    req.InspectorIDs,
		FollowUpEventID: req.FollowUpEventID,
		Notes:           req.Notes,
		EmailSubject:    req.EmailSubject,
		EmailBody:       req.EmailBody,
	}

	if typeRaw := strings.TrimSpace(req.InspectionTypeID); typeRaw != "" {
		typeID, err := strconv.ParseInt(typeRaw, 10, 64)
		if err != nil || typeID < 0 {
			RespondError(c, "inspection_type_id is invalid", http.StatusBadRequest)
			return
		}
		input.InspectionTypeID = &typeID
	}

	if req.RequestedDate != "" {
		requestedDate, ok := ParseDate(req.RequestedDate)
		if !ok {
			RespondError(c, "requested_date is invalid, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		input.RequestedDate = requestedDate
	}

	actorID := int64(0)
	if user, ok := GetUserLogged(c); ok {
		actorID = user.ID
	}

	dispatcher := workflow.Dispatcher{DB: db, Mailer: tools.MailerFromEnv()}
	results, err := dispatcher.Dispatch(requestCtx(c), input, actorID)
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrMissingInspectors), errors.Is(err, workflow.ErrMissingTransaction):
			RespondError(c, err.Error(), http.StatusBadRequest)
		case errors.Is(err, workflow.ErrTransactionNotFound):
			RespondError(c, err.Error(), http.StatusNotFound)
		default:
			RespondError(c, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	RespondCreated(c, gin.H{"results": results})
}

// GET /api/transactions/:id/inspection-requests (validated)
func GetInspectionRequests(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var requests []models.InspectionRequest
	if err := db.Where("transaction_id = ?", id).Order("id asc").Find(&requests).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"inspection_requests": requests})
}

// GET /api/inspection-requests/:id/history (validated)
func GetInspectionRequestHistory(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	if err := db.First(&models.InspectionRequest{}, id).Error; err != nil {
		RespondError(c, "inspection request not found", http.StatusNotFound)
		return
	}

	var history []models.InspectionRequestHistory
	if err := db.Where("inspection_request_id = ?", id).Order("id asc").Find(&history).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"history": history})
}
