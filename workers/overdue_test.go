package workers

import (
	"path/filepath"
	"testing"
	"time"

	"dealdesk/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open("sqlite3", filepath.Join(t.TempDir(), "workers.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := db.AutoMigrate(&models.FollowUpEvent{}).Error; err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func createEvent(t *testing.T, db *gorm.DB, name, status string, due *time.Time) models.FollowUpEvent {
	t.Helper()

	event := models.FollowUpEvent{
		EventName: name,
		Priority:  models.FOLLOWUP_PRIORITY_MEDIUM,
		Status:    status,
		DueDate:   due,
	}
	require.NoError(t, db.Create(&event).Error)
	return event
}

func TestSweepOverdue(t *testing.T) {
	db := setupDB(t)

	yesterday := time.Now().AddDate(0, 0, -1)
	tomorrow := time.Now().AddDate(0, 0, 1)

	pastDue := createEvent(t, db, "Order title search", models.FOLLOWUP_STATUS_PENDING, &yesterday)
	notDue := createEvent(t, db, "Schedule walkthrough", models.FOLLOWUP_STATUS_PENDING, &tomorrow)
	noDue := createEvent(t, db, "Confirm wire details", models.FOLLOWUP_STATUS_PENDING, nil)
	completed := createEvent(t, db, "Send disclosures", models.FOLLOWUP_STATUS_COMPLETED, &yesterday)

	SweepOverdue(db)

	statuses := map[int64]string{}
	var events []models.FollowUpEvent
	require.NoError(t, db.Find(&events).Error)
	for _, event := range events {
		statuses[event.ID] = event.Status
	}

	require.Equal(t, models.FOLLOWUP_STATUS_OVERDUE, statuses[pastDue.ID])
	require.Equal(t, models.FOLLOWUP_STATUS_PENDING, statuses[notDue.ID])
	require.Equal(t, models.FOLLOWUP_STATUS_PENDING, statuses[noDue.ID])
	require.Equal(t, models.FOLLOWUP_STATUS_COMPLETED, statuses[completed.ID])
}

func TestSweepOverdueIsRepeatable(t *testing.T) {
	db := setupDB(t)

	yesterday := time.Now().AddDate(0, 0, -1)
	event := createEvent(t, db, "Order title search", models.FOLLOWUP_STATUS_PENDING, &yesterday)

	SweepOverdue(db)
	SweepOverdue(db)

	var reloaded models.FollowUpEvent
	require.NoError(t, db.First(&reloaded, event.ID).Error)
	require.Equal(t, models.FOLLOWUP_STATUS_OVERDUE, reloaded.Status)
}
