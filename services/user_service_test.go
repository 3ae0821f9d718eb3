package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutoria-app/backend/models"
	"gorm.io/gorm"
)

func newTestUserService(db *gorm.DB) *UserService {
	return NewUserService(db, NewTutorCodeService(db))
}

func TestEnsureStudentGrantsDefaultRole(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)
	user := newTestUser(t, db, models.RoleSet{})

	roles, err := svc.EnsureStudent(user.ID)
	require.NoError(t, err)
	assert.True(t, roles.Student)

	// Bootstrap is idempotent.
	roles, err = svc.EnsureStudent(user.ID)
	require.NoError(t, err)
	assert.True(t, roles.Student)
}

func TestMergeRolesIsAdditive(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)
	user := newTestUser(t, db, models.RoleSet{Student: true})

	roles, err := svc.MergeRoles(user.ID, models.RoleSet{Tutor: true})
	require.NoError(t, err)
	assert.True(t, roles.Student, "existing flags survive a merge")
	assert.True(t, roles.Tutor)
	assert.False(t, roles.Manager)
}

func TestUpgradeToTutor(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)
	manager := newTestUser(t, db, models.RoleSet{Manager: true})
	user := newTestUser(t, db, models.RoleSet{Student: true})

	created, err := svc.Codes.CreateCode(manager.ID, "")
	require.NoError(t, err)

	code, roles, err := svc.UpgradeToTutor(user.ID, created.Code)
	require.NoError(t, err)
	assert.Equal(t, created.Code, code)
	assert.True(t, roles.Student)
	assert.True(t, roles.Tutor)

	var profile models.TutorProfile
	require.NoError(t, db.First(&profile, "user_id = ?", user.ID).Error)
	require.NotNil(t, profile.TutorCode)
	assert.Equal(t, created.Code, *profile.TutorCode)

	// The claimed code cannot elevate anyone else.
	other := newTestUser(t, db, models.RoleSet{Student: true})
	_, _, err = svc.UpgradeToTutor(other.ID, created.Code)
	assert.ErrorIs(t, err, ErrCodeAlreadyUsed)
}

func TestUpgradeToTutorUnknownCode(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)
	user := newTestUser(t, db, models.RoleSet{Student: true})

	_, _, err := svc.UpgradeToTutor(user.ID, "0000")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestSetManager(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)
	user := newTestUser(t, db, models.RoleSet{Student: true})

	roles, err := svc.SetManager(user.ID, true)
	require.NoError(t, err)
	assert.True(t, roles.Manager)

	roles, err = svc.SetManager(user.ID, false)
	require.NoError(t, err)
	assert.False(t, roles.Manager)
	assert.True(t, roles.Student)

	_, err = svc.SetManager(uuid.New(), true)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
