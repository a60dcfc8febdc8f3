package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	dbpkg "dealdesk/db"
	"dealdesk/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/require"
)

func setupAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open("sqlite3", filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Property{},
		&models.Transaction{},
		&models.TransactionCustomer{},
		&models.FollowUpEvent{},
	).Error; err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(db))
	r.PUT("/api/followup-events/:id", UpdateFollowUpEvent)
	r.GET("/api/portal/:code", GetPortalView)
	return r, db
}

func putJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	b, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateFollowUpEventEndpoint(t *testing.T) {
	r, db := setupAPI(t)

	property := models.Property{AddressStreet: "12 Oak St"}
	require.NoError(t, db.Create(&property).Error)
	transaction := models.Transaction{
		PropertyID: property.ID,
		Status:     models.TRANSACTION_STATUS_ACTIVE,
		IsActive:   true,
	}
	require.NoError(t, db.Create(&transaction).Error)
	event := models.FollowUpEvent{
		TransactionID: &transaction.ID,
		EventName:     "Order title search",
		Priority:      models.FOLLOWUP_PRIORITY_MEDIUM,
		Status:        models.FOLLOWUP_STATUS_PENDING,
	}
	require.NoError(t, db.Create(&event).Error)

	path := fmt.Sprintf("/api/followup-events/%d", event.ID)

	w := putJSON(t, r, "/api/followup-events/999", gin.H{"status": "completed"})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = putJSON(t, r, path, gin.H{"status": "done"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Completing the only task auto-closes the transaction and says so.
	w = putJSON(t, r, path, gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Task                  models.FollowUpEvent `json:"follow_up_event"`
		TransactionAutoClosed bool                 `json:"transaction_auto_closed"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, models.FOLLOWUP_STATUS_COMPLETED, body.Task.Status)
	require.NotNil(t, body.Task.CompletedAt)
	require.True(t, body.TransactionAutoClosed)

	var reloaded models.Transaction
	require.NoError(t, db.First(&reloaded, transaction.ID).Error)
	require.Equal(t, models.TRANSACTION_STATUS_CLOSED, reloaded.Status)
}

func TestPortalViewEndpoint(t *testing.T) {
	r, db := setupAPI(t)

	property := models.Property{AddressStreet: "12 Oak St", AddressCity: "Boston"}
	require.NoError(t, db.Create(&property).Error)
	transaction := models.Transaction{
		PropertyID: property.ID,
		Status:     models.TRANSACTION_STATUS_ACTIVE,
		IsActive:   true,
	}
	require.NoError(t, db.Create(&transaction).Error)
	customer := models.Customer{Name: "Pat Buyer", Email: "pat@example.com", AccessCode: "k7mRp2Wq"}
	require.NoError(t, db.Create(&customer).Error)
	require.NoError(t, db.Create(&models.TransactionCustomer{
		TransactionID: transaction.ID,
		CustomerID:    customer.ID,
		Side:          models.CUSTOMER_SIDE_BUYER,
	}).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/portal/k7mRp2Wq", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Customer     models.Customer `json:"customer"`
		Transactions []struct {
			Side string `json:"side"`
		} `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Pat Buyer", body.Customer.Name)
	require.Empty(t, body.Customer.AccessCode, "access code never echoed back")
	require.Len(t, body.Transactions, 1)
	require.Equal(t, models.CUSTOMER_SIDE_BUYER, body.Transactions[0].Side)

	req = httptest.NewRequest(http.MethodGet, "/api/portal/wrong-code", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}
