package jobs

import (
	"log"
	"time"

	"github.com/tutoria-app/backend/database"
	"github.com/tutoria-app/backend/models"
	"github.com/tutoria-app/backend/notifications"
)

// RemindStaleRequests nudges tutors about sessions that have sat in
// requested for more than a day. Sessions with an unresolved tutor are
// skipped; nobody can be notified for those.
func RemindStaleRequests() {
	log.Println("Running job: RemindStaleRequests...")

	cutoff := time.Now().Add(-24 * time.Hour)

	var staleSessions []models.Session
	err := database.DB.
		Where("status = ? AND tutor_id IS NOT NULL AND created_at < ?", models.SessionRequested, cutoff).
		Find(&staleSessions).Error
	if err != nil {
		log.Printf("Error checking for stale session requests: %v", err)
		return
	}

	if len(staleSessions) == 0 {
		return
	}

	notifier := notifications.NewStoreNotifier(database.DB)
	for _, session := range staleSessions {
		log.Printf("Sending reminder for session ID: %s", session.ID)
		notifier.NotifyUser(*session.TutorID, models.NotificationSessionReminder, map[string]interface{}{
			"sessionId": session.ID.String(),
			"topic":     session.Topic,
		})
	}
}
