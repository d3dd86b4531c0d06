package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/clinivent/clinivent/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, models.AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{Email: email, PasswordHash: "x", Name: "Test User"}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createTestClinic seeds a clinic with an owner membership and one category,
// returning the clinic and category.
func createTestClinic(t *testing.T, db *gorm.DB, ownerID string) (*models.Clinic, *models.Category) {
	t.Helper()

	clinic := &models.Clinic{Name: "행복소아과", CreatedBy: ownerID}
	require.NoError(t, db.Create(clinic).Error)
	require.NoError(t, db.Create(&models.ClinicMember{
		ClinicID: clinic.ID,
		UserID:   ownerID,
		Role:     models.ClinicRoleOwner,
	}).Error)

	category := &models.Category{ClinicID: clinic.ID, Name: "백신", SortOrder: 0}
	require.NoError(t, db.Create(category).Error)

	return clinic, category
}

func createTestItem(t *testing.T, db *gorm.DB, clinicID, categoryID, name string, threshold int) *models.Item {
	t.Helper()

	item := &models.Item{
		ClinicID:         clinicID,
		CategoryID:       categoryID,
		Name:             name,
		Unit:             "개",
		ReorderThreshold: threshold,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func recordTestTxn(t *testing.T, db *gorm.DB, clinicID, itemID string, txType models.TransactionType, qty int, userID string) {
	t.Helper()

	require.NoError(t, db.Create(&models.StockTransaction{
		ClinicID:   clinicID,
		ItemID:     itemID,
		Type:       txType,
		Qty:        qty,
		OccurredAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		CreatedBy:  userID,
	}).Error)
}

func testCtx() context.Context {
	return context.Background()
}
