package workflow

import (
	"context"
	"fmt"
	"log"
	"time"

	"dealdesk/models"
	"dealdesk/tools"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// DispatchInput is one fan-out request: one transaction, many inspectors.
// EmailSubject/EmailBody, when set, are used verbatim (the caller already
// rendered them against a preview); otherwise a default message is
// synthesized from the transaction context.
type DispatchInput struct {
	TransactionID    int64
	InspectorIDs     []int64
	InspectionTypeID *int64
	FollowUpEventID  *int64
	RequestedDate    *time.Time
	Notes            string
	EmailSubject     string
	EmailBody        string
}

// DispatchResult is the per-inspector outcome. Inspectors that were found
// but whose e-mail failed appear with EmailSent=false; inspectors that were
// not found do not appear at all, so the slice may be shorter than the input
// id list.
type DispatchResult struct {
	InspectionRequestID int64  `json:"inspection_request_id"`
	Reference           string `json:"reference"`
	InspectorID         int64  `json:"inspector_id"`
	InspectorName       string `json:"inspector_name"`
	InspectorEmail      string `json:"inspector_email"`
	EmailSent           bool   `json:"email_sent"`
	Error               string `json:"error,omitempty"`
}

// Dispatcher creates and e-mails inspection requests.
type Dispatcher struct {
	DB     *gorm.DB
	Mailer tools.Mailer
}

// Dispatch creates one pending InspectionRequest per inspector and attempts
// each e-mail in turn. The transaction context and the acting agent's profile
// are loaded once for the whole batch. Per-inspector failures never abort
// the batch: an unknown inspector is skipped, a failed send leaves its
// request pending (kept as evidence of intent, retryable later) with no
// history row.
func (d Dispatcher) Dispatch(ctx context.Context, input DispatchInput, actorID int64) ([]DispatchResult, error) {
	if input.TransactionID <= 0 {
		return nil, ErrMissingTransaction
	}
	if len(input.InspectorIDs) == 0 {
		return nil, ErrMissingInspectors
	}

	var transaction models.Transaction
	if err := d.DB.First(&transaction, input.TransactionID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	var property models.Property
	if err := d.DB.First(&property, transaction.PropertyID).Error; err != nil && !gorm.IsRecordNotFoundError(err) {
		return nil, err
	}

	var agent models.User
	if err := d.DB.First(&agent, actorID).Error; err != nil {
		log.Printf("dispatch: acting user %d load failed: %v", actorID, err)
	}

	// A blank form field must not end up as an invalid foreign key.
	typeID := input.InspectionTypeID
	if typeID != nil && *typeID == 0 {
		typeID = nil
	}

	results := make([]DispatchResult, 0, len(input.InspectorIDs))

	for _, inspectorID := range input.InspectorIDs {
		var inspector models.Inspector
		if err := d.DB.First(&inspector, inspectorID).Error; err != nil {
			if gorm.IsRecordNotFoundError(err) {
				log.Printf("dispatch: inspector %d not found, skipping", inspectorID)
				continue
			}
			return results, err
		}

		request := models.InspectionRequest{
			Reference:        uuid.NewString(),
			TransactionID:    transaction.ID,
			InspectorID:      inspector.ID,
			FollowUpEventID:  input.FollowUpEventID,
			InspectionTypeID: typeID,
			RequestedDate:    input.RequestedDate,
			Notes:            input.Notes,
			Status:           models.INSPECTION_REQUEST_STATUS_PENDING,
		}
		if err := d.DB.Create(&request).Error; err != nil {
			return results, err
		}

		subject := input.EmailSubject
		if subject == "" {
			subject = defaultRequestSubject(property)
		}
		body := input.EmailBody
		if body == "" {
			body = defaultRequestBody(transaction, property, inspector, agent, input.RequestedDate)
		}

		result := DispatchResult{
			InspectionRequestID: request.ID,
			Reference:           request.Reference,
			InspectorID:         inspector.ID,
			InspectorName:       inspector.Name,
			InspectorEmail:      inspector.Email,
		}

		if err := d.Mailer.SendEmail(ctx, inspector.Email, subject, body); err != nil {
			log.Printf("dispatch: send failed: request_id=%d inspector_id=%d err=%v",
				request.ID, inspector.ID, err)
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		now := time.Now()
		if err := d.DB.Model(&request).Updates(map[string]interface{}{
			"status":        models.INSPECTION_REQUEST_STATUS_SENT,
			"email_sent_at": &now,
			"email_sent_by": actorID,
		}).Error; err != nil {
			return results, err
		}

		actor := actorID
		history := models.InspectionRequestHistory{
			InspectionRequestID: request.ID,
			StatusFrom:          models.INSPECTION_REQUEST_STATUS_PENDING,
			StatusTo:            models.INSPECTION_REQUEST_STATUS_SENT,
			ChangedBy:           &actor,
			Notes:               "request e-mail sent to " + inspector.Email,
		}
		if err := d.DB.Create(&history).Error; err != nil {
			return results, err
		}

		result.EmailSent = true
		results = append(results, result)
	}

	return results, nil
}

// defaultRequestSubject is used when the caller did not pre-render one.
func defaultRequestSubject(property models.Property) string {
	address := property.FullAddress()
	if address == "" {
		return "Inspection request"
	}
	return "Inspection request - " + address
}

// defaultRequestBody synthesizes the fallback message from the loaded
// context, without templating. Kept separate from the dispatch loop so it
// can be tested on its own.
func defaultRequestBody(transaction models.Transaction, property models.Property, inspector models.Inspector, agent models.User, requestedDate *time.Time) string {
	body := fmt.Sprintf("<p>Hello %s,</p>", inspector.Name)
	body += fmt.Sprintf("<p>We would like to request an inspection for the property at %s.</p>", property.FullAddress())
	if requestedDate != nil {
		body += fmt.Sprintf("<p>Requested date: %s</p>", tools.FormatDate(requestedDate))
	}
	if transaction.ClosingDate != nil {
		body += fmt.Sprintf("<p>The transaction is scheduled to close on %s.</p>", tools.FormatDate(transaction.ClosingDate))
	}
	body += "<p>Please reply with your availability.</p>"
	if agent.Name != "" {
		signature := agent.Name
		if agent.Brokerage != "" {
			signature += ", " + agent.Brokerage
		}
		if agent.Phone != "" {
			signature += " - " + agent.Phone
		}
		body += fmt.Sprintf("<p>Thank you,<br>%s</p>", signature)
	}
	return body
}
