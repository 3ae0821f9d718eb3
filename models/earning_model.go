package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Earning is the net-of-fee ledger credit recorded for a tutor when a
// payout is marked paid. The unique index on PaymentID makes crediting
// a conditional create: at most one entry per payment ever exists.
type Earning struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TutorID   uuid.UUID `gorm:"type:uuid;not null" json:"tutor_id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null" json:"session_id"`
	PaymentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"payment_id"`

	Currency    string `gorm:"size:3;not null" json:"currency"`
	GrossAmount int64  `gorm:"not null" json:"gross_amount"`
	FeeAmount   int64  `gorm:"not null" json:"fee_amount"`
	NetAmount   int64  `gorm:"not null" json:"net_amount"`

	Status    string    `gorm:"size:20;not null;default:'accrued'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (e *Earning) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
