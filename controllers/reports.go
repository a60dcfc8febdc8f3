package controllers

import (
	"net/http"

	dbpkg "dealdesk/db"
	"dealdesk/models"

	"github.com/gin-gonic/gin"
)

type statusCountRow struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// GET /api/reports/tasks-per-status (validated)
// Optional filter: transaction_id.
func GetTasksPerStatus(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	q := db.Table("follow_up_events").
		Select("status, count(*) as count").
		Group("status").
		Order("status asc")
	if transactionID := c.Query("transaction_id"); transactionID != "" {
		q = q.Where("transaction_id = ?", transactionID)
	}

	var rows []statusCountRow
	if err := q.Scan(&rows).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"tasks_per_status": rows})
}

type openTransactionRow struct {
	TransactionID int64  `json:"transaction_id"`
	Status        string `json:"status"`
	Total         int64  `json:"total"`
	Done          int64  `json:"done"`
}

// GET /api/reports/open-transactions (validated)
// Open transactions with their task progress - the back-office "what's left"
// view.
func GetOpenTransactionProgress(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var rows []openTransactionRow
	q := db.Table("transactions").
		Select(`transactions.id as transaction_id, transactions.status,
			count(follow_up_events.id) as total,
			sum(CASE WHEN follow_up_events.status IN (?, ?) THEN 1 ELSE 0 END) as done`,
			models.FOLLOWUP_STATUS_COMPLETED, models.FOLLOWUP_STATUS_NOT_APPLICABLE).
		Joins("LEFT JOIN follow_up_events ON follow_up_events.transaction_id = transactions.id").
		Where("transactions.is_active = ? AND transactions.status NOT IN (?, ?)",
			true, models.TRANSACTION_STATUS_CLOSED, models.TRANSACTION_STATUS_CANCELLED).
		Group("transactions.id, transactions.status").
		Order("transactions.id asc")

	if err := q.Scan(&rows).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"open_transactions": rows})
}
