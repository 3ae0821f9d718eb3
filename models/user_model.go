package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`

	IsStudent bool `gorm:"not null;default:true" json:"is_student"`
	IsTutor   bool `gorm:"not null;default:false" json:"is_tutor"`
	IsManager bool `gorm:"not null;default:false" json:"is_manager"`

	IsActive bool `gorm:"default:true" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) Roles() RoleSet {
	return RoleSet{Student: u.IsStudent, Tutor: u.IsTutor, Manager: u.IsManager}
}

// RoleSet is the fixed set of role flags a user may hold. Roles are
// non-exclusive and only ever toggled, never removed from the set.
type RoleSet struct {
	Student bool `json:"student"`
	Tutor   bool `json:"tutor"`
	Manager bool `json:"manager"`
}

func (r RoleSet) Has(name string) bool {
	switch name {
	case "student":
		return r.Student
	case "tutor":
		return r.Tutor
	case "manager":
		return r.Manager
	}
	return false
}

// HasAny reports whether the set holds at least one of the named roles.
func (r RoleSet) HasAny(names ...string) bool {
	for _, n := range names {
		if r.Has(n) {
			return true
		}
	}
	return false
}

// Merge is additive: a flag already set stays set.
func (r RoleSet) Merge(other RoleSet) RoleSet {
	return RoleSet{
		Student: r.Student || other.Student,
		Tutor:   r.Tutor || other.Tutor,
		Manager: r.Manager || other.Manager,
	}
}

func (r RoleSet) Claims() map[string]bool {
	return map[string]bool{"student": r.Student, "tutor": r.Tutor, "manager": r.Manager}
}
