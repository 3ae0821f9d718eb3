package notifications

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/tutoria-app/backend/models"
	"gorm.io/gorm"
)

// Adapter delivers a notification to a user. The store adapter below is
// the only implementation for now; a push or email provider would slot
// in behind the same interface.
type Adapter interface {
	Send(uid uuid.UUID, kind string, payload map[string]interface{}) error
}

// StoreAdapter records notifications as rows instead of delivering them
// anywhere. Real-time delivery is out of scope.
type StoreAdapter struct {
	DB *gorm.DB
}

func (a *StoreAdapter) Send(uid uuid.UUID, kind string, payload map[string]interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	n := models.Notification{UserID: uid, Type: kind, Payload: string(body)}
	return a.DB.Create(&n).Error
}

// Notifier is best-effort: failures are logged and never propagated to
// the operation that triggered the notification.
type Notifier struct {
	adapter Adapter
}

func NewNotifier(adapter Adapter) *Notifier {
	return &Notifier{adapter: adapter}
}

func NewStoreNotifier(db *gorm.DB) *Notifier {
	return &Notifier{adapter: &StoreAdapter{DB: db}}
}

func (n *Notifier) NotifyUser(uid uuid.UUID, kind string, payload map[string]interface{}) {
	if err := n.adapter.Send(uid, kind, payload); err != nil {
		log.Printf("⚠️ Failed to send %s notification to %s: %v", kind, uid, err)
	}
}
