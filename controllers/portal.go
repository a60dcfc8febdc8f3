package controllers

import (
	"net/http"
	"strings"

	dbpkg "dealdesk/db"
	"dealdesk/models"

	"github.com/gin-gonic/gin"
)

// GET /api/portal/:code (public)
// Customer read-only view: the customer's transactions with their task
// checklists, looked up by portal access code. No account required.
func GetPortalView(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		RespondError(c, "code is required", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var customer models.Customer
	if err := db.Where("access_code = ?", code).First(&customer).Error; err != nil {
		RespondError(c, "not found", http.StatusNotFound)
		return
	}

	var links []models.TransactionCustomer
	if err := db.Where("customer_id = ?", customer.ID).Find(&links).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	type portalTransaction struct {
		Transaction models.Transaction     `json:"transaction"`
		Property    models.Property        `json:"property"`
		Side        string                 `json:"side"`
		Events      []models.FollowUpEvent `json:"follow_up_events"`
	}

	out := make([]portalTransaction, 0, len(links))
	for _, link := range links {
		var transaction models.Transaction
		if err := db.First(&transaction, link.TransactionID).Error; err != nil {
			continue
		}
		if !transaction.IsActive {
			continue
		}

		var property models.Property
		_ = db.First(&property, transaction.PropertyID).Error

		var events []models.FollowUpEvent
		_ = db.Where("transaction_id = ?", transaction.ID).
			Order("due_date asc, id asc").
			Find(&events).Error

		out = append(out, portalTransaction{
			Transaction: transaction,
			Property:    property,
			Side:        link.Side,
			Events:      events,
		})
	}

	customer.AccessCode = ""
	RespondSuccess(c, gin.H{"customer": customer, "transactions": out})
}
