package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_foreign_keys=1"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func TestBaseModelGeneratesUUID(t *testing.T) {
	db := openTestDB(t)

	user := User{Email: "owner@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	require.NotEmpty(t, user.ID)
	require.Len(t, user.ID, 36)
}

func TestClinicMemberUniquePerClinicAndUser(t *testing.T) {
	db := openTestDB(t)

	user := User{Email: "staff@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	clinic := Clinic{Name: "서울소아과", CreatedBy: user.ID}
	require.NoError(t, db.Create(&clinic).Error)

	first := ClinicMember{ClinicID: clinic.ID, UserID: user.ID, Role: ClinicRoleOwner}
	require.NoError(t, db.Create(&first).Error)

	dup := ClinicMember{ClinicID: clinic.ID, UserID: user.ID, Role: ClinicRoleStaff}
	require.Error(t, db.Create(&dup).Error)
}

func TestInviteStatusDerivation(t *testing.T) {
	now := time.Now()
	invite := ClinicInvite{ExpiresAt: now.Add(-time.Hour)}
	require.Equal(t, "unused", invite.Status(), "expired invites still display as unused")

	invite.UsedAt = &now
	require.Equal(t, "used", invite.Status())
}
