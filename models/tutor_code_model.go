package models

import (
	"time"

	"github.com/google/uuid"
)

// TutorCode is a 4-digit code a manager issues and a tutor claims exactly
// once. A claimed code is never reactivated or reused.
type TutorCode struct {
	Code      string     `gorm:"size:4;primary_key" json:"code"`
	CreatedBy uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	Note      string     `gorm:"type:text" json:"note"`
	Active    bool       `gorm:"not null;default:true" json:"active"`
	ClaimedBy *uuid.UUID `gorm:"type:uuid" json:"claimed_by"`
	ClaimedAt *time.Time `json:"claimed_at"`
	CreatedAt time.Time  `json:"created_at"`
}
