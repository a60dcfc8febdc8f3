package workflow

import (
	"time"

	"dealdesk/models"

	"github.com/jinzhu/gorm"
)

// EvaluateClosure closes a transaction once every follow-up event on it is
// terminal (completed or not_applicable). The counts are re-read from the
// store rather than derived from the one task just updated, so the result
// does not depend on completion order. A transaction with zero tasks never
// auto-closes, and an already-closed transaction is left alone.
//
// The count-read and the conditional write run inside one database
// transaction so two concurrent completions of the last tasks cannot both
// observe a stale count.
func EvaluateClosure(db *gorm.DB, transactionID int64) (bool, error) {
	closed := false

	err := db.Transaction(func(tx *gorm.DB) error {
		var transaction models.Transaction
		if err := tx.First(&transaction, transactionID).Error; err != nil {
			if gorm.IsRecordNotFoundError(err) {
				return ErrTransactionNotFound
			}
			return err
		}
		if transaction.Status == models.TRANSACTION_STATUS_CLOSED {
			return nil
		}

		var total int64
		if err := tx.Model(&models.FollowUpEvent{}).
			Where("transaction_id = ?", transactionID).
			Count(&total).Error; err != nil {
			return err
		}
		// No tasks is not evidence of completion.
		if total == 0 {
			return nil
		}

		var done int64
		if err := tx.Model(&models.FollowUpEvent{}).
			Where("transaction_id = ? AND status IN (?)", transactionID,
				[]string{models.FOLLOWUP_STATUS_COMPLETED, models.FOLLOWUP_STATUS_NOT_APPLICABLE}).
			Count(&done).Error; err != nil {
			return err
		}
		if done != total {
			return nil
		}

		now := time.Now()
		if err := tx.Model(&models.Transaction{}).
			Where("id = ? AND status <> ?", transactionID, models.TRANSACTION_STATUS_CLOSED).
			Updates(map[string]interface{}{
				"status":     models.TRANSACTION_STATUS_CLOSED,
				"updated_at": &now,
			}).Error; err != nil {
			return err
		}

		closed = true
		return nil
	})

	return closed, err
}
