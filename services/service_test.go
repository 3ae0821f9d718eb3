package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tutoria-app/backend/models"
	"github.com/tutoria-app/backend/notifications"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// Single connection: in-memory sqlite locks the whole database per
	// writer, so concurrent tests serialize here instead of erroring.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.TutorCode{},
		&models.TutorProfile{},
		&models.Session{},
		&models.Payment{},
		&models.Earning{},
		&models.Notification{},
		&models.Material{},
	))
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, roles models.RoleSet) *models.User {
	t.Helper()

	user := models.User{
		FullName:  "Test User",
		Email:     fmt.Sprintf("%s@example.com", uuid.NewString()),
		Password:  "irrelevant",
		IsStudent: roles.Student,
		IsTutor:   roles.Tutor,
		IsManager: roles.Manager,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func newTestSessionService(db *gorm.DB) *SessionService {
	codes := NewTutorCodeService(db)
	return NewSessionService(db, codes, notifications.NewStoreNotifier(db))
}

// claimedCode issues a code through the registry and claims it for the
// tutor, returning the 4-digit value.
func claimedCode(t *testing.T, db *gorm.DB, managerID, tutorID uuid.UUID) string {
	t.Helper()

	svc := NewTutorCodeService(db)
	created, err := svc.CreateCode(managerID, "")
	require.NoError(t, err)
	_, err = svc.ClaimCode(tutorID, created.Code)
	require.NoError(t, err)
	return created.Code
}
