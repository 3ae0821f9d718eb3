package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/tutoria-app/backend/models"
	"github.com/tutoria-app/backend/utils"
	"gorm.io/gorm"
)

// TutorCodeService issues 4-digit tutor codes and tracks their claim
// state. A code moves from active/unclaimed to inactive/claimed exactly
// once and is never reused.
type TutorCodeService struct {
	DB *gorm.DB
}

func NewTutorCodeService(db *gorm.DB) *TutorCodeService {
	return &TutorCodeService{DB: db}
}

func (s *TutorCodeService) CreateCode(managerID uuid.UUID, note string) (*models.TutorCode, error) {
	var created models.TutorCode
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		code, err := utils.GenerateUniqueTutorCode(tx)
		if err != nil {
			return err
		}
		created = models.TutorCode{
			Code:      code,
			CreatedBy: managerID,
			Note:      note,
			Active:    true,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ClaimCode marks the code claimed by tutorID. The update is
// conditional on the code still being active and unclaimed, so two
// racing claims cannot both succeed.
func (s *TutorCodeService) ClaimCode(tutorID uuid.UUID, code string) (*models.TutorCode, error) {
	var entry models.TutorCode
	if err := s.DB.Where("code = ?", code).First(&entry).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	if !entry.Active || entry.ClaimedBy != nil {
		return nil, ErrCodeAlreadyUsed
	}

	now := time.Now()
	res := s.DB.Model(&models.TutorCode{}).
		Where("code = ? AND active = ? AND claimed_by IS NULL", code, true).
		Updates(map[string]interface{}{
			"active":     false,
			"claimed_by": tutorID,
			"claimed_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrCodeAlreadyUsed
	}

	entry.Active = false
	entry.ClaimedBy = &tutorID
	entry.ClaimedAt = &now
	return &entry, nil
}

// GetByCode resolves a code to its claiming tutor. A nil return with no
// error means the code does not exist; an existing but unclaimed code
// resolves with ClaimedBy nil.
func (s *TutorCodeService) GetByCode(code string) (*models.TutorCode, error) {
	var entry models.TutorCode
	if err := s.DB.Where("code = ?", code).First(&entry).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// EnsureTutorProfile merge-upserts the tutor profile row. Existing
// fields are kept unless the patch overrides them.
func (s *TutorCodeService) EnsureTutorProfile(uid uuid.UUID, patch map[string]interface{}) error {
	var profile models.TutorProfile
	err := s.DB.Where("user_id = ?", uid).First(&profile).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		profile = models.TutorProfile{UserID: uid}
		if err := s.DB.Create(&profile).Error; err != nil {
			return err
		}
	}
	if len(patch) == 0 {
		return nil
	}
	return s.DB.Model(&models.TutorProfile{}).Where("user_id = ?", uid).Updates(patch).Error
}

func (s *TutorCodeService) ListTutors() ([]models.TutorProfile, error) {
	var profiles []models.TutorProfile
	if err := s.DB.Preload("User").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
