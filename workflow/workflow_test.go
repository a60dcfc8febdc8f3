package workflow

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"dealdesk/models"
	"dealdesk/tools"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open("sqlite3", filepath.Join(t.TempDir(), "workflow.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Property{},
		&models.Inspector{},
		&models.InspectionType{},
		&models.Transaction{},
		&models.TransactionCustomer{},
		&models.FollowUpEvent{},
		&models.InspectionRequest{},
		&models.InspectionRequestHistory{},
	).Error; err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

type stubNotifier struct {
	notices []tools.TaskCompletionNotice
	fail    bool
}

func (n *stubNotifier) NotifyTaskCompletion(_ context.Context, notice tools.TaskCompletionNotice) error {
	n.notices = append(n.notices, notice)
	if n.fail {
		return errors.New("webhook down")
	}
	return nil
}

func createTransaction(t *testing.T, db *gorm.DB) models.Transaction {
	t.Helper()

	property := models.Property{
		AddressStreet: "12 Oak St",
		AddressCity:   "Boston",
		AddressState:  "MA",
		AddressZip:    "02101",
	}
	require.NoError(t, db.Create(&property).Error)

	transaction := models.Transaction{
		PropertyID: property.ID,
		Status:     models.TRANSACTION_STATUS_ACTIVE,
		IsActive:   true,
	}
	require.NoError(t, db.Create(&transaction).Error)
	return transaction
}

func createTask(t *testing.T, db *gorm.DB, transactionID int64, name, priority string, due time.Time) models.FollowUpEvent {
	t.Helper()

	event := models.FollowUpEvent{
		TransactionID: &transactionID,
		EventName:     name,
		Priority:      priority,
		Status:        models.FOLLOWUP_STATUS_PENDING,
		DueDate:       &due,
	}
	require.NoError(t, db.Create(&event).Error)
	return event
}

func addCustomer(t *testing.T, db *gorm.DB, transactionID int64, name, email, side string) models.Customer {
	t.Helper()

	customer := models.Customer{Name: name, Email: email}
	require.NoError(t, db.Create(&customer).Error)
	require.NoError(t, db.Create(&models.TransactionCustomer{
		TransactionID: transactionID,
		CustomerID:    customer.ID,
		Side:          side,
	}).Error)
	return customer
}

func setStatus(t *testing.T, service TaskService, taskID int64, status string) TaskUpdateResult {
	t.Helper()

	result, err := service.UpdateTask(context.Background(), taskID, TaskUpdate{Status: &status}, 1)
	require.NoError(t, err)
	return result
}

func TestUpdateTaskNotFound(t *testing.T) {
	db := setupDB(t)
	service := TaskService{DB: db}

	status := models.FOLLOWUP_STATUS_COMPLETED
	_, err := service.UpdateTask(context.Background(), 999, TaskUpdate{Status: &status}, 1)
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestUpdateTaskRejectsUnknownStatus(t *testing.T) {
	db := setupDB(t)
	service := TaskService{DB: db}

	tx := createTransaction(t, db)
	task := createTask(t, db, tx.ID, "Order title search", models.FOLLOWUP_PRIORITY_MEDIUM, time.Now())

	status := "done"
	_, err := service.UpdateTask(context.Background(), task.ID, TaskUpdate{Status: &status}, 1)
	require.ErrorIs(t, err, ErrInvalidStatus)

	priority := "asap"
	_, err = service.UpdateTask(context.Background(), task.ID, TaskUpdate{Priority: &priority}, 1)
	require.ErrorIs(t, err, ErrInvalidPriority)

	var reloaded models.FollowUpEvent
	require.NoError(t, db.First(&reloaded, task.ID).Error)
	require.Equal(t, models.FOLLOWUP_STATUS_PENDING, reloaded.Status)
}

func TestCompletedAtFollowsStatus(t *testing.T) {
	db := setupDB(t)
	service := TaskService{DB: db, Notifier: &stubNotifier{}}

	tx := createTransaction(t, db)
	task := createTask(t, db, tx.ID, "Order title search", models.FOLLOWUP_PRIORITY_MEDIUM, time.Now())

	sequence := []string{
		models.FOLLOWUP_STATUS_COMPLETED,
		models.FOLLOWUP_STATUS_OVERDUE,
		models.FOLLOWUP_STATUS_COMPLETED,
		models.FOLLOWUP_STATUS_NOT_APPLICABLE,
		models.FOLLOWUP_STATUS_PENDING,
	}
	for _, status := range sequence {
		result := setStatus(t, service, task.ID, status)
		if status == models.FOLLOWUP_STATUS_COMPLETED {
			require.NotNil(t, result.Task.CompletedAt, "completed_at must be set for status %s", status)
		} else {
			require.Nil(t, result.Task.CompletedAt, "completed_at must be cleared for status %s", status)
		}
	}
}

func TestPartialUpdateKeepsOtherFields(t *testing.T) {
	db := setupDB(t)
	service := TaskService{DB: db}

	tx := createTransaction(t, db)
	task := createTask(t, db, tx.ID, "Schedule walkthrough", models.FOLLOWUP_PRIORITY_HIGH, time.Now())

	notes := "left a voicemail"
	result, err := service.UpdateTask(context.Background(), task.ID, TaskUpdate{Notes: &notes}, 1)
	require.NoError(t, err)

	require.Equal(t, "Schedule walkthrough", result.Task.EventName)
	require.Equal(t, models.FOLLOWUP_PRIORITY_HIGH, result.Task.Priority)
	require.Equal(t, models.FOLLOWUP_STATUS_PENDING, result.Task.Status)
	require.Equal(t, "left a voicemail", result.Task.Notes)
}

func TestAutoCloseRequiresFullCoverage(t *testing.T) {
	db := setupDB(t)
	service := TaskService{DB: db, Notifier: &stubNotifier{}}

	tx := createTransaction(t, db)
	a := createTask(t, db, tx.ID, "a", models.FOLLOWUP_PRIORITY_MEDIUM, time.Now())
	b := createTask(t, db, tx.ID, "b", models.FOLLOWUP_PRIORITY_MEDIUM, time.Now())
	c := createTask(t, db, tx.ID, "c", models.FOLLOWUP_PRIORITY_MEDIUM, time.Now())

	result := setStatus(t, service, a.ID, models.FOLLOWUP_STATUS_COMPLETED)
	require.False(t, result.TransactionAutoClosed)
	result = setStatus(t, service, b.ID, models.FOLLOWUP_STATUS_COMPLETED)
	require.False(t, result.TransactionAutoClosed)

	var reloaded models.Transaction
	require.NoError(t, db.First(&reloaded, tx.ID).Error)
	require.Equal(t, models.TRANSACTION_STATUS_ACTIVE, reloaded.Status)

	result = setStatus(t, service, c.ID, models.FOLLOWUP_STATUS_NOT_APPLICABLE)
	require.True(t, result.TransactionAutoClosed)
	require.NotEmpty(t, result.Message)

	require.NoError(t, db.First(&reloaded, tx.ID).Error)
	require.Equal(t, models.TRANSACTION_STATUS_CLOSED, reloaded.Status)
}

func TestZeroTaskTransactionNeverAutoCloses(t *testing.T) {
	db := setupDB(t)
	tx := createTransaction(t, db)

	for i := 0; i < 3; i++ {
		closed, err := EvaluateClosure(db, tx.ID)
		require.NoError(t, err)
		require.False(t, closed)
	}

	var reloaded models.Transaction
	require.NoError(t, db.First(&reloaded, tx.ID).Error)
	require.Equal(t, models.TRANSACTION_STATUS_ACTIVE, reloaded.Status)
}

func TestClosureIdempotent(t *testing.T) {
	db := setupDB(t)
	service := TaskService{DB: db, Notifier: &stubNotifier{}}

	tx := createTransaction(t, db)
	task := createTask(t, db, tx.ID, "only task", models.FOLLOWUP_PRIORITY_MEDIUM, time.Now())

	result := setStatus(t, service, task.ID, models.FOLLOWUP_STATUS_COMPLETED)
	require.True(t, result.TransactionAutoClosed)

	// Second evaluation against the closed transaction: no error, no write.
	closed, err := EvaluateClosure(db, tx.ID)
	require.NoError(t, err)
	require.False(t, closed)
}

func TestClosureUnknownTransaction(t *testing.T) {
	db := setupDB(t)

	_, err := EvaluateClosure(db, 12345)
	require.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestNotificationOnlyForCompleted(t *testing.T) {
	db := setupDB(t)
	notifier := &stubNotifier{}
	service := TaskService{DB: db, Notifier: notifier}

	tx := createTransaction(t, db)
	a := createTask(t, db, tx.ID, "a", models.FOLLOWUP_PRIORITY_MEDIUM, time.Now())
	b := createTask(t, db, tx.ID, "b", models.FOLLOWUP_PRIORITY_MEDIUM, time.Now())
	addCustomer(t, db, tx.ID, "Pat Buyer", "pat@example.com", models.CUSTOMER_SIDE_BUYER)

	setStatus(t, service, a.ID, models.FOLLOWUP_STATUS_NOT_APPLICABLE)
	require.Empty(t, notifier.notices, "not_applicable must not notify")

	setStatus(t, service, b.ID, models.FOLLOWUP_STATUS_COMPLETED)
	require.Len(t, notifier.notices, 1)
	require.Equal(t, b.ID, notifier.notices[0].TaskID)
	require.Equal(t, []string{"pat@example.com"}, notifier.notices[0].CustomerEmails)
	require.Contains(t, notifier.notices[0].PropertyAddress, "12 Oak St")
}

func TestNotificationRecipientsDeduplicated(t *testing.T) {
	db := setupDB(t)
	notifier := &stubNotifier{}
	service := TaskService{DB: db, Notifier: notifier}

	tx := createTransaction(t, db)
	task := createTask(t, db, tx.ID, "t", models.FOLLOWUP_PRIORITY_MEDIUM, time.Now())

	// Same customer on both sides of the deal rolls up to one recipient.
	customer := addCustomer(t, db, tx.ID, "Sam Both", "sam@example.com", models.CUSTOMER_SIDE_BUYER)
	require.NoError(t, db.Create(&models.TransactionCustomer{
		TransactionID: tx.ID,
		CustomerID:    customer.ID,
		Side:          models.CUSTOMER_SIDE_SELLER,
	}).Error)

	setStatus(t, service, task.ID, models.FOLLOWUP_STATUS_COMPLETED)
	require.Len(t, notifier.notices, 1)
	require.Equal(t, []int64{customer.ID}, notifier.notices[0].CustomerIDs)
	require.Equal(t, []string{"sam@example.com"}, notifier.notices[0].CustomerEmails)
}

func TestNotificationFailureDoesNotBlockUpdateOrClosure(t *testing.T) {
	db := setupDB(t)
	notifier := &stubNotifier{fail: true}
	service := TaskService{DB: db, Notifier: notifier}

	tx := createTransaction(t, db)
	task := createTask(t, db, tx.ID, "only task", models.FOLLOWUP_PRIORITY_MEDIUM, time.Now())
	addCustomer(t, db, tx.ID, "Pat Buyer", "pat@example.com", models.CUSTOMER_SIDE_BUYER)

	result := setStatus(t, service, task.ID, models.FOLLOWUP_STATUS_COMPLETED)
	require.Len(t, notifier.notices, 1)
	require.Equal(t, models.FOLLOWUP_STATUS_COMPLETED, result.Task.Status)
	require.True(t, result.TransactionAutoClosed, "closure still runs after a failed notification")
}

func TestEndToEndTwoTasks(t *testing.T) {
	db := setupDB(t)
	notifier := &stubNotifier{}
	service := TaskService{DB: db, Notifier: notifier}

	tx := createTransaction(t, db)
	yesterday := time.Now().AddDate(0, 0, -1)
	nextWeek := time.Now().AddDate(0, 0, 7)
	a := createTask(t, db, tx.ID, "Send disclosures", models.FOLLOWUP_PRIORITY_URGENT, yesterday)
	b := createTask(t, db, tx.ID, "Confirm utilities transfer", models.FOLLOWUP_PRIORITY_MEDIUM, nextWeek)
	addCustomer(t, db, tx.ID, "Pat Buyer", "pat@example.com", models.CUSTOMER_SIDE_BUYER)
	addCustomer(t, db, tx.ID, "Sal Seller", "sal@example.com", models.CUSTOMER_SIDE_SELLER)

	result := setStatus(t, service, a.ID, models.FOLLOWUP_STATUS_COMPLETED)
	require.NotNil(t, result.Task.CompletedAt)
	require.False(t, result.TransactionAutoClosed)
	require.Len(t, notifier.notices, 1)
	require.Len(t, notifier.notices[0].CustomerEmails, 2)

	var reloaded models.Transaction
	require.NoError(t, db.First(&reloaded, tx.ID).Error)
	require.Equal(t, models.TRANSACTION_STATUS_ACTIVE, reloaded.Status)

	result = setStatus(t, service, b.ID, models.FOLLOWUP_STATUS_NOT_APPLICABLE)
	require.True(t, result.TransactionAutoClosed)

	require.NoError(t, db.First(&reloaded, tx.ID).Error)
	require.Equal(t, models.TRANSACTION_STATUS_CLOSED, reloaded.Status)

	// Only A's completion notified.
	require.Len(t, notifier.notices, 1)
}
