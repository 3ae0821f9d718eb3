package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tutoria-app/backend/models"
	"gorm.io/gorm"
)

// MaterialService registers session material metadata and hands out
// upload/download URLs. Materials are not locked behind payment; any
// authenticated user may fetch them.
type MaterialService struct {
	DB *gorm.DB
}

func NewMaterialService(db *gorm.DB) *MaterialService {
	return &MaterialService{DB: db}
}

func (s *MaterialService) RequestUpload(uid uuid.UUID, sessionID uuid.UUID, filename string) (*models.Material, string, error) {
	material := models.Material{
		SessionID: sessionID,
		Filename:  filename,
		CreatedBy: uid,
	}
	if err := s.DB.Create(&material).Error; err != nil {
		return nil, "", err
	}

	uploadURL := fmt.Sprintf("https://example.com/upload/%s", material.ID)
	return &material, uploadURL, nil
}

func (s *MaterialService) GetDownloadURL(materialID uuid.UUID) (string, error) {
	var material models.Material
	if err := s.DB.First(&material, "id = ?", materialID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", ErrMaterialNotFound
		}
		return "", err
	}
	return fmt.Sprintf("https://example.com/download/%s", material.ID), nil
}
