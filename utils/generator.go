package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/tutoria-app/backend/models"
	"gorm.io/gorm"
)

// GenerateUniqueTutorCode draws random 4-digit codes until one is free.
// Collision odds are ~1/10000 per draw, so the loop stays short in
// practice, but there is no hard retry cap.
func GenerateUniqueTutorCode(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		code := fmt.Sprintf("%04d", seededRand.Intn(10000))

		var existing models.TutorCode
		err := tx.Where("code = ?", code).First(&existing).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return code, nil
			}
			return "", err
		}
	}
}
