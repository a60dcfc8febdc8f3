package workflow

import (
	"context"
	"log"
	"time"

	"dealdesk/models"
	"dealdesk/tools"

	"github.com/jinzhu/gorm"
)

// TaskUpdate is a partial update: nil fields keep the stored value.
type TaskUpdate struct {
	EventName   *string
	Description *string
	Notes       *string
	DueDate     *time.Time
	Priority    *string
	Status      *string
	AssignedTo  *int64
}

// TaskUpdateResult carries the updated record plus the auto-closure flag the
// UI uses to explain why a transaction changed status as a side effect of a
// task edit.
type TaskUpdateResult struct {
	Task                  models.FollowUpEvent `json:"follow_up_event"`
	TransactionAutoClosed bool                 `json:"transaction_auto_closed"`
	Message               string               `json:"message,omitempty"`
}

// TaskService owns follow-up event mutations and the completion side
// effects: customer notification, then transaction auto-closure.
type TaskService struct {
	DB       *gorm.DB
	Notifier tools.Notifier
}

// UpdateTask applies a partial update to one follow-up event. Entering
// "completed" stamps completed_at; entering any other status clears it, in
// the same write as the status. When the new status is terminal and the task
// belongs to a transaction, the closure evaluator runs after the (best
// effort) customer notification.
func (s TaskService) UpdateTask(ctx context.Context, taskID int64, upd TaskUpdate, actorID int64) (TaskUpdateResult, error) {
	if upd.Status != nil && !models.ValidFollowUpStatus(*upd.Status) {
		return TaskUpdateResult{}, ErrInvalidStatus
	}
	if upd.Priority != nil && !models.ValidFollowUpPriority(*upd.Priority) {
		return TaskUpdateResult{}, ErrInvalidPriority
	}

	var task models.FollowUpEvent
	if err := s.DB.First(&task, taskID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return TaskUpdateResult{}, ErrTaskNotFound
		}
		return TaskUpdateResult{}, err
	}

	updates := map[string]interface{}{}
	if upd.EventName != nil {
		updates["event_name"] = *upd.EventName
	}
	if upd.Description != nil {
		updates["description"] = *upd.Description
	}
	if upd.Notes != nil {
		updates["notes"] = *upd.Notes
	}
	if upd.DueDate != nil {
		updates["due_date"] = upd.DueDate
	}
	if upd.Priority != nil {
		updates["priority"] = *upd.Priority
	}
	if upd.AssignedTo != nil {
		updates["assigned_to"] = *upd.AssignedTo
	}
	if upd.Status != nil {
		updates["status"] = *upd.Status
		if *upd.Status == models.FOLLOWUP_STATUS_COMPLETED {
			now := time.Now()
			updates["completed_at"] = &now
		} else {
			updates["completed_at"] = nil
		}
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&task).Updates(updates).Error; err != nil {
			return TaskUpdateResult{}, err
		}
	}

	if err := s.DB.First(&task, taskID).Error; err != nil {
		return TaskUpdateResult{}, err
	}

	result := TaskUpdateResult{Task: task}

	if upd.Status == nil || task.TransactionID == nil {
		return result, nil
	}

	// Notification fires for "completed" only; "not_applicable" counts as
	// done for closure but is not worth announcing.
	if *upd.Status == models.FOLLOWUP_STATUS_COMPLETED {
		s.notifyCompletion(ctx, task)
	}

	if models.IsTerminalFollowUpStatus(*upd.Status) {
		closed, err := EvaluateClosure(s.DB, *task.TransactionID)
		if err != nil {
			return result, err
		}
		if closed {
			result.TransactionAutoClosed = true
			result.Message = "all follow-up events are done; transaction closed automatically"
		}
	}

	return result, nil
}

// notifyCompletion resolves the transaction's customers (both sides, deduped)
// and fires one notice. Any failure is logged and swallowed: a broken mail
// path must never block a task update.
func (s TaskService) notifyCompletion(ctx context.Context, task models.FollowUpEvent) {
	if s.Notifier == nil || task.TransactionID == nil {
		return
	}

	var transaction models.Transaction
	if err := s.DB.First(&transaction, *task.TransactionID).Error; err != nil {
		log.Printf("task notify: transaction %d load failed: %v", *task.TransactionID, err)
		return
	}

	var property models.Property
	if err := s.DB.First(&property, transaction.PropertyID).Error; err != nil {
		log.Printf("task notify: property %d load failed: %v", transaction.PropertyID, err)
	}

	customers, err := TransactionCustomers(s.DB, transaction.ID)
	if err != nil {
		log.Printf("task notify: customers load failed: transaction_id=%d err=%v", transaction.ID, err)
		return
	}

	notice := tools.TaskCompletionNotice{
		TaskID:          task.ID,
		TaskName:        task.EventName,
		TransactionID:   transaction.ID,
		PropertyAddress: property.FullAddress(),
	}
	for _, customer := range customers {
		notice.CustomerIDs = append(notice.CustomerIDs, customer.ID)
		if customer.Email != "" {
			notice.CustomerEmails = append(notice.CustomerEmails, customer.Email)
		}
	}

	if err := s.Notifier.NotifyTaskCompletion(ctx, notice); err != nil {
		log.Printf("task notify: delivery failed: task_id=%d transaction_id=%d err=%v",
			task.ID, transaction.ID, err)
	}
}
