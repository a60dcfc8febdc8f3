package controllers

import (
	"net/http"

	dbpkg "dealdesk/db"
	"dealdesk/models"
	"dealdesk/workflow"

	"github.com/gin-gonic/gin"
)

type TransactionRequest struct {
	PropertyID     int64  `json:"property_id" form:"property_id"`
	ListingAgentID *int64 `json:"listing_agent_id" form:"listing_agent_id"`
	BuyerAgentID   *int64 `json:"buyer_agent_id" form:"buyer_agent_id"`
	AttorneyID     *int64 `json:"attorney_id" form:"attorney_id"`
	LenderID       *int64 `json:"lender_id" form:"lender_id"`
	Status         string `json:"status" form:"status"`
	PriceCents     int64  `json:"price_cents" form:"price_cents"`
	StartDate      string `json:"start_date" form:"start_date"`
	ClosingDate    string `json:"closing_date" form:"closing_date"`
}

type ParticipantRequest struct {
	CustomerID int64  `json:"customer_id" form:"customer_id"`
	Side       string `json:"side" form:"side"`
}

// GET /api/transactions (validated)
// Filters: status, agent_id (either side), include_inactive=1.
func GetTransactions(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	q := db.Order("id desc")
	if c.Query("include_inactive") != "1" {
		q = q.Where("is_active = ?", true)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if agentID := c.Query("agent_id"); agentID != "" {
		q = q.Where("listing_agent_id = ? OR buyer_agent_id = ?", agentID, agentID)
	}

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"transactions": transactions})
}

// GET /api/transactions/:id (validated)
// Detail view: transaction + property + participants + follow-up events.
func GetTransactionByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
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

	var property models.Property
	_ = db.First(&property, transaction.PropertyID).Error

	buyers, err := workflow.CustomersBySide(db, transaction.ID, models.CUSTOMER_SIDE_BUYER)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	sellers, err := workflow.CustomersBySide(db, transaction.ID, models.CUSTOMER_SIDE_SELLER)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	var events []models.FollowUpEvent
	if err := db.Where("transaction_id = ?", transaction.ID).
		Order("due_date asc, CASE priority WHEN 'urgent' THEN 0 WHEN 'high' THEN 1 ELSE 2 END, id asc").
		Find(&events).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{
		"transaction":      transaction,
		"property":         property,
		"buyers":           buyers,
		"sellers":          sellers,
		"follow_up_events": events,
	})
}

// POST /api/transactions (validated)
func CreateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.PropertyID <= 0 {
		RespondError(c, "property_id is required", http.StatusBadRequest)
		return
	}

	startDate, ok := ParseDate(req.StartDate)
	if !ok {
		RespondError(c, "start_date is invalid, use YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	closingDate, ok := ParseDate(req.ClosingDate)
	if !ok {
		RespondError(c, "closing_date is invalid, use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	if err := db.First(&models.Property{}, req.PropertyID).Error; err != nil {
		RespondError(c, "property not found", http.StatusNotFound)
		return
	}

	status := req.Status
	if status == "" {
		status = models.TRANSACTION_STATUS_PENDING
	}

	transaction := models.Transaction{
		PropertyID:     req.PropertyID,
		ListingAgentID: req.ListingAgentID,
		BuyerAgentID:   req.BuyerAgentID,
		AttorneyID:     req.AttorneyID,
		LenderID:       req.LenderID,
		Status:         status,
		PriceCents:     req.PriceCents,
		StartDate:      startDate,
		ClosingDate:    closingDate,
		IsActive:       true,
	}

	if err := db.Create(&transaction).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondCreated(c, gin.H{"transaction": transaction})
}

// PUT /api/transactions/:id (validated)
func UpdateTransaction(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
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

	if req.Status != "" {
		transaction.Status = req.Status
	}
	if req.PropertyID > 0 {
		transaction.PropertyID = req.PropertyID
	}
	if req.ListingAgentID != nil {
		transaction.ListingAgentID = req.ListingAgentID
	}
	if req.BuyerAgentID != nil {
		transaction.BuyerAgentID = req.BuyerAgentID
	}
	if req.AttorneyID != nil {
		transaction.AttorneyID = req.AttorneyID
	}
	if req.LenderID != nil {
		transaction.LenderID = req.LenderID
	}
	if req.PriceCents > 0 {
		transaction.PriceCents = req.PriceCents
	}
	if req.StartDate != "" {
		startDate, ok := ParseDate(req.StartDate)
		if !ok {
			RespondError(c, "start_date is invalid, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		transaction.StartDate = startDate
	}
	if req.ClosingDate != "" {
		closingDate, ok := ParseDate(req.ClosingDate)
		if !ok {
			RespondError(c, "closing_date is invalid, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		transaction.ClosingDate = closingDate
	}

	if err := db.Save(&transaction).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"transaction": transaction})
}

// DELETE /api/transactions/:id (admin) - soft delete
func DeleteTransaction(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
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

	if err := db.Model(&transaction).Update("is_active", false).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, true)
}

// POST /api/transactions/:id/participants (validated)
func AddTransactionParticipant(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var req ParticipantRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.CustomerID <= 0 {
		RespondError(c, "customer_id is required", http.StatusBadRequest)
		return
	}
	if req.Side != models.CUSTOMER_SIDE_BUYER && req.Side != models.CUSTOMER_SIDE_SELLER {
		RespondError(c, "side must be buyer or seller", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	if err := db.First(&models.Transaction{}, id).Error; err != nil {
		RespondError(c, "transaction not found", http.StatusNotFound)
		return
	}
	if err := db.First(&models.Customer{}, req.CustomerID).Error; err != nil {
		RespondError(c, "customer not found", http.StatusNotFound)
		return
	}

	var existing models.TransactionCustomer
	if err := db.Where("transaction_id = ? AND customer_id = ? AND side = ?", id, req.CustomerID, req.Side).
		First(&existing).Error; err == nil {
		RespondError(c, "participant already added", http.StatusConflict)
		return
	}

	participant := models.TransactionCustomer{
		TransactionID: id,
		CustomerID:    req.CustomerID,
		Side:          req.Side,
	}
	if err := db.Create(&participant).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondCreated(c, gin.H{"participant": participant})
}

// DELETE /api/transactions/:id/participants (validated) - IDs in body
func RemoveTransactionParticipant(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var req ParticipantRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.CustomerID <= 0 {
		RespondError(c, "customer_id is required", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	q := db.Where("transaction_id = ? AND customer_id = ?", id, req.CustomerID)
	if req.Side != "" {
		q = q.Where("side = ?", req.Side)
	}
	if err := q.Delete(&models.TransactionCustomer{}).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, true)
}
