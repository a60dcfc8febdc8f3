package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"dealdesk/models"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/require"
)

type stubMailer struct {
	sent    []string // recipient addresses, in order
	subject string
	body    string
	failFor map[string]bool
}

func (m *stubMailer) SendEmail(_ context.Context, to, subject, html string) error {
	if m.failFor[to] {
		return errors.New("smtp relay rejected")
	}
	m.sent = append(m.sent, to)
	m.subject = subject
	m.body = html
	return nil
}

func createInspector(t *testing.T, db *gorm.DB, name, email string) models.Inspector {
	t.Helper()

	inspector := models.Inspector{Name: name, Email: email}
	require.NoError(t, db.Create(&inspector).Error)
	return inspector
}

func createAgent(t *testing.T, db *gorm.DB) models.User {
	t.Helper()

	agent := models.User{
		Name:      "Dana Reeve",
		Email:     "dana@brokerage.example",
		Password:  "irrelevant",
		Phone:     "555-0100",
		Brokerage: "Harborline Realty",
		Type:      models.USER_TYPE_AGENT,
	}
	require.NoError(t, db.Create(&agent).Error)
	return agent
}

func TestDispatchRequiresInspectors(t *testing.T) {
	db := setupDB(t)
	tx := createTransaction(t, db)
	dispatcher := Dispatcher{DB: db, Mailer: &stubMailer{}}

	_, err := dispatcher.Dispatch(context.Background(), DispatchInput{TransactionID: tx.ID}, 1)
	require.ErrorIs(t, err, ErrMissingInspectors)

	// Validation happens before any write.
	var count int64
	require.NoError(t, db.Model(&models.InspectionRequest{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestDispatchRequiresTransaction(t *testing.T) {
	db := setupDB(t)
	dispatcher := Dispatcher{DB: db, Mailer: &stubMailer{}}

	_, err := dispatcher.Dispatch(context.Background(), DispatchInput{InspectorIDs: []int64{1}}, 1)
	require.ErrorIs(t, err, ErrMissingTransaction)

	_, err = dispatcher.Dispatch(context.Background(), DispatchInput{TransactionID: 999, InspectorIDs: []int64{1}}, 1)
	require.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestDispatchPartialFailure(t *testing.T) {
	db := setupDB(t)
	tx := createTransaction(t, db)
	agent := createAgent(t, db)
	first := createInspector(t, db, "First Inspections", "first@example.com")
	third := createInspector(t, db, "Third Eye Home", "third@example.com")

	mailer := &stubMailer{failFor: map[string]bool{"third@example.com": true}}
	dispatcher := Dispatcher{DB: db, Mailer: mailer}

	missingID := third.ID + 100
	results, err := dispatcher.Dispatch(context.Background(), DispatchInput{
		TransactionID: tx.ID,
		InspectorIDs:  []int64{first.ID, missingID, third.ID},
	}, agent.ID)
	require.NoError(t, err)

	// The unknown inspector is silently omitted; the failed send is included.
	require.Len(t, results, 2)
	require.Equal(t, first.ID, results[0].InspectorID)
	require.True(t, results[0].EmailSent)
	require.Equal(t, third.ID, results[1].InspectorID)
	require.False(t, results[1].EmailSent)
	require.NotEmpty(t, results[1].Error)

	// Both found inspectors got a request row; the failed one stays pending
	// with no sent timestamp and no history entry.
	var requests []models.InspectionRequest
	require.NoError(t, db.Order("id asc").Find(&requests).Error)
	require.Len(t, requests, 2)

	require.Equal(t, models.INSPECTION_REQUEST_STATUS_SENT, requests[0].Status)
	require.NotNil(t, requests[0].EmailSentAt)
	require.NotNil(t, requests[0].EmailSentBy)
	require.Equal(t, agent.ID, *requests[0].EmailSentBy)

	require.Equal(t, models.INSPECTION_REQUEST_STATUS_PENDING, requests[1].Status)
	require.Nil(t, requests[1].EmailSentAt)

	var history []models.InspectionRequestHistory
	require.NoError(t, db.Order("id asc").Find(&history).Error)
	require.Len(t, history, 1)
	require.Equal(t, requests[0].ID, history[0].InspectionRequestID)
	require.Equal(t, models.INSPECTION_REQUEST_STATUS_PENDING, history[0].StatusFrom)
	require.Equal(t, models.INSPECTION_REQUEST_STATUS_SENT, history[0].StatusTo)
}

func TestDispatchUsesCallerSubjectAndBodyVerbatim(t *testing.T) {
	db := setupDB(t)
	tx := createTransaction(t, db)
	agent := createAgent(t, db)
	inspector := createInspector(t, db, "First Inspections", "first@example.com")

	mailer := &stubMailer{}
	dispatcher := Dispatcher{DB: db, Mailer: mailer}

	results, err := dispatcher.Dispatch(context.Background(), DispatchInput{
		TransactionID: tx.ID,
		InspectorIDs:  []int64{inspector.ID},
		EmailSubject:  "Pre-rendered subject",
		EmailBody:     "<p>Pre-rendered body</p>",
	}, agent.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Pre-rendered subject", mailer.subject)
	require.Equal(t, "<p>Pre-rendered body</p>", mailer.body)
}

func TestDispatchDefaultEmail(t *testing.T) {
	db := setupDB(t)
	tx := createTransaction(t, db)
	agent := createAgent(t, db)
	inspector := createInspector(t, db, "First Inspections", "first@example.com")

	mailer := &stubMailer{}
	dispatcher := Dispatcher{DB: db, Mailer: mailer}

	requested := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	_, err := dispatcher.Dispatch(context.Background(), DispatchInput{
		TransactionID: tx.ID,
		InspectorIDs:  []int64{inspector.ID},
		RequestedDate: &requested,
	}, agent.ID)
	require.NoError(t, err)

	require.Contains(t, mailer.subject, "12 Oak St")
	require.Contains(t, mailer.body, "First Inspections")
	require.Contains(t, mailer.body, "12 Oak St")
	require.Contains(t, mailer.body, "09/15/2026")
	require.Contains(t, mailer.body, "Dana Reeve")
	require.Contains(t, mailer.body, "Harborline Realty")
}

func TestDispatchNormalizesEmptyInspectionType(t *testing.T) {
	db := setupDB(t)
	tx := createTransaction(t, db)
	agent := createAgent(t, db)
	inspector := createInspector(t, db, "First Inspections", "first@example.com")

	zero := int64(0)
	dispatcher := Dispatcher{DB: db, Mailer: &stubMailer{}}
	_, err := dispatcher.Dispatch(context.Background(), DispatchInput{
		TransactionID:    tx.ID,
		InspectorIDs:     []int64{inspector.ID},
		InspectionTypeID: &zero,
	}, agent.ID)
	require.NoError(t, err)

	var request models.InspectionRequest
	require.NoError(t, db.First(&request).Error)
	require.Nil(t, request.InspectionTypeID)
}

func TestDefaultRequestBodyStandalone(t *testing.T) {
	property := models.Property{AddressStreet: "77 Pine Rd", AddressCity: "Salem", AddressState: "MA"}
	inspector := models.Inspector{Name: "Keystone Inspections"}
	closing := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	transaction := models.Transaction{ClosingDate: &closing}
	agent := models.User{Name: "Dana Reeve", Phone: "555-0100"}

	body := defaultRequestBody(transaction, property, inspector, agent, nil)
	require.Contains(t, body, "Keystone Inspections")
	require.Contains(t, body, "77 Pine Rd, Salem, MA")
	require.Contains(t, body, "10/01/2026")
	require.Contains(t, body, "Dana Reeve")
}
