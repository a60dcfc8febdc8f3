package workers

import (
	"log"
	"time"

	"dealdesk/models"

	"github.com/jinzhu/gorm"
)

// StartOverdueSweeper starts a loop that flips pending follow-up events past
// their due date to overdue. The task workflow itself never computes
// overdue; it treats the status as just another value this sweeper asserts.
func StartOverdueSweeper(db *gorm.DB, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			SweepOverdue(db)
		}
	}()
}

// SweepOverdue marks one batch of due pending events. The guarded UPDATE
// only touches rows still pending, so a concurrent status change through
// the workflow wins.
func SweepOverdue(db *gorm.DB) {
	now := time.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	res := db.Model(&models.FollowUpEvent{}).
		Where("status = ?", models.FOLLOWUP_STATUS_PENDING).
		Where("due_date IS NOT NULL AND due_date < ?", startOfToday).
		Update("status", models.FOLLOWUP_STATUS_OVERDUE)
	if res.Error != nil {
		log.Printf("overdue sweeper: update error: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("overdue sweeper: marked %d follow-up event(s) overdue", res.RowsAffected)
	}
}
