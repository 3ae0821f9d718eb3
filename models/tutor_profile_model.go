package models

import (
	"time"

	"github.com/google/uuid"
)

type TutorProfile struct {
	UserID    uuid.UUID `gorm:"type:uuid;primary_key" json:"user_id"`
	TutorCode *string   `gorm:"size:4" json:"tutor_code"`
	Headline  *string   `gorm:"size:255" json:"headline"`
	Bio       *string   `gorm:"type:text" json:"bio"`

	User User `gorm:"foreignkey:UserID" json:"user"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
