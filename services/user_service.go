package services

import (
	"github.com/google/uuid"
	"github.com/tutoria-app/backend/models"
	"gorm.io/gorm"
)

// UserService owns the role store. Role merges are additive only.
type UserService struct {
	DB    *gorm.DB
	Codes *TutorCodeService
}

func NewUserService(db *gorm.DB, codes *TutorCodeService) *UserService {
	return &UserService{DB: db, Codes: codes}
}

func (s *UserService) GetByID(uid uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", uid).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// MergeRoles turns on the flags set in patch; flags already held are
// kept. Returns the resulting set.
func (s *UserService) MergeRoles(uid uuid.UUID, patch models.RoleSet) (models.RoleSet, error) {
	user, err := s.GetByID(uid)
	if err != nil {
		return models.RoleSet{}, err
	}
	merged := user.Roles().Merge(patch)
	err = s.DB.Model(&models.User{}).Where("id = ?", uid).Updates(map[string]interface{}{
		"is_student": merged.Student,
		"is_tutor":   merged.Tutor,
		"is_manager": merged.Manager,
	}).Error
	if err != nil {
		return models.RoleSet{}, err
	}
	return merged, nil
}

// EnsureStudent lazily grants the default student role on first
// bootstrap.
func (s *UserService) EnsureStudent(uid uuid.UUID) (models.RoleSet, error) {
	user, err := s.GetByID(uid)
	if err != nil {
		return models.RoleSet{}, err
	}
	if user.IsStudent {
		return user.Roles(), nil
	}
	return s.MergeRoles(uid, models.RoleSet{Student: true})
}

// UpgradeToTutor claims the 4-digit code for the user, grants the tutor
// role and records the code on the tutor profile.
func (s *UserService) UpgradeToTutor(uid uuid.UUID, code string) (string, models.RoleSet, error) {
	entry, err := s.Codes.ClaimCode(uid, code)
	if err != nil {
		return "", models.RoleSet{}, err
	}
	roles, err := s.MergeRoles(uid, models.RoleSet{Tutor: true})
	if err != nil {
		return "", models.RoleSet{}, err
	}
	if err := s.Codes.EnsureTutorProfile(uid, map[string]interface{}{"tutor_code": entry.Code}); err != nil {
		return "", models.RoleSet{}, err
	}
	return entry.Code, roles, nil
}

func (s *UserService) SetManager(uid uuid.UUID, makeManager bool) (models.RoleSet, error) {
	user, err := s.GetByID(uid)
	if err != nil {
		return models.RoleSet{}, err
	}
	if err := s.DB.Model(&models.User{}).Where("id = ?", uid).Update("is_manager", makeManager).Error; err != nil {
		return models.RoleSet{}, err
	}
	roles := user.Roles()
	roles.Manager = makeManager
	return roles, nil
}
