package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SessionRequested = "requested"
	SessionConfirmed = "confirmed"
	SessionDone      = "done"
)

// Session tracks one tutoring engagement through its three-state
// lifecycle: requested -> confirmed -> done. Status never regresses.
type Session struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Status    string     `gorm:"size:20;not null;default:'requested'" json:"status"`
	StudentID uuid.UUID  `gorm:"type:uuid;not null" json:"student_id"`
	TutorID   *uuid.UUID `gorm:"type:uuid" json:"tutor_id"`
	TutorCode string     `gorm:"size:4;not null" json:"tutor_code"`

	Topic       string `gorm:"size:255;not null" json:"topic"`
	Description string `gorm:"type:text" json:"description"`
	DurationMin int    `gorm:"not null" json:"duration_min"`

	PreferredAt *time.Time `json:"preferred_at"`
	ScheduledAt *time.Time `json:"scheduled_at"`

	Currency   string `gorm:"size:3;not null;default:'COP'" json:"currency"`
	Price      *int64 `json:"price"`
	HourlyRate *int64 `json:"hourly_rate"`

	CreatedAt   time.Time  `json:"created_at"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
	DoneAt      *time.Time `json:"done_at"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
