package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentTypePayout   = "payout"
	PaymentTypeCheckout = "checkout"

	// payout protocol
	PaymentRequested = "requested"
	PaymentApproved  = "approved"
	PaymentPaid      = "paid"

	// checkout variant
	PaymentPending = "pending"
)

// Payment is one settlement attempt. Amounts are integers in the
// smallest currency unit. Payout status only moves forward:
// requested -> approved -> paid.
type Payment struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID   uuid.UUID  `gorm:"type:uuid;not null" json:"session_id"`
	TutorID     *uuid.UUID `gorm:"type:uuid" json:"tutor_id"`
	RequesterID uuid.UUID  `gorm:"type:uuid;not null" json:"requester_id"`

	Amount   int64  `gorm:"not null" json:"amount"`
	Currency string `gorm:"size:3;not null" json:"currency"`
	Type     string `gorm:"size:20;not null" json:"type"`
	Status   string `gorm:"size:20;not null" json:"status"`

	Provider    string  `gorm:"size:50" json:"provider,omitempty"`
	ProviderRef *string `gorm:"size:255;unique" json:"provider_ref,omitempty"`

	ApprovedBy *uuid.UUID `gorm:"type:uuid" json:"approved_by"`
	ApprovedAt *time.Time `json:"approved_at"`
	PaidBy     *uuid.UUID `gorm:"type:uuid" json:"paid_by"`
	PaidAt     *time.Time `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
