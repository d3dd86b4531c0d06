package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clinivent/clinivent/internal/models"
	apperrors "github.com/clinivent/clinivent/pkg/errors"
)

func TestItemServiceCreateDefaultsUnit(t *testing.T) {
	db := openTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	clinic, category := createTestClinic(t, db, owner.ID)

	svc, err := NewItemService(db)
	require.NoError(t, err)

	item, err := svc.Create(testCtx(), clinic.ID, CreateItemInput{
		CategoryID: category.ID,
		Name:       "독감백신",
	})
	require.NoError(t, err)
	require.Equal(t, "개", item.Unit)
	require.Zero(t, item.ReorderThreshold)

	withUnit, err := svc.Create(testCtx(), clinic.ID, CreateItemInput{
		CategoryID:       category.ID,
		Name:             "시럽",
		Unit:             "병",
		ReorderThreshold: 3,
	})
	require.NoError(t, err)
	require.Equal(t, "병", withUnit.Unit)
	require.Equal(t, 3, withUnit.ReorderThreshold)
}

func TestItemServiceCreateValidation(t *testing.T) {
	db := openTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	clinic, category := createTestClinic(t, db, owner.ID)

	svc, err := NewItemService(db)
	require.NoError(t, err)

	_, err = svc.Create(testCtx(), clinic.ID, CreateItemInput{CategoryID: category.ID, Name: "  "})
	require.Error(t, err)

	_, err = svc.Create(testCtx(), clinic.ID, CreateItemInput{CategoryID: category.ID, Name: "품목", ReorderThreshold: -1})
	require.Error(t, err)

	_, err = svc.Create(testCtx(), clinic.ID, CreateItemInput{CategoryID: "missing", Name: "품목"})
	require.Error(t, err)

	// Archived categories cannot take new items.
	require.NoError(t, db.Model(category).Update("is_archived", true).Error)
	_, err = svc.Create(testCtx(), clinic.ID, CreateItemInput{CategoryID: category.ID, Name: "품목"})
	require.Error(t, err)
}

func TestItemServiceCreateRejectsDuplicateName(t *testing.T) {
	db := openTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	clinic, category := createTestClinic(t, db, owner.ID)
	createTestItem(t, db, clinic.ID, category.ID, "독감백신", 0)

	svc, err := NewItemService(db)
	require.NoError(t, err)

	_, err = svc.Create(testCtx(), clinic.ID, CreateItemInput{CategoryID: category.ID, Name: "독감백신"})
	require.ErrorIs(t, err, apperrors.ErrNameTaken)
}

func TestItemServiceUpdateThreshold(t *testing.T) {
	db := openTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	clinic, category := createTestClinic(t, db, owner.ID)
	item := createTestItem(t, db, clinic.ID, category.ID, "독감백신", 5)

	svc, err := NewItemService(db)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateThreshold(testCtx(), clinic.ID, item.ID, 0))

	var updated models.Item
	require.NoError(t, db.First(&updated, "id = ?", item.ID).Error)
	require.Zero(t, updated.ReorderThreshold)

	err = svc.UpdateThreshold(testCtx(), clinic.ID, item.ID, -1)
	require.Error(t, err)

	err = svc.UpdateThreshold(testCtx(), clinic.ID, "missing", 1)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestItemServiceArchive(t *testing.T) {
	db := openTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	clinic, category := createTestClinic(t, db, owner.ID)
	item := createTestItem(t, db, clinic.ID, category.ID, "단종품", 0)

	svc, err := NewItemService(db)
	require.NoError(t, err)

	require.NoError(t, svc.Archive(testCtx(), clinic.ID, item.ID))

	list, err := svc.List(testCtx(), clinic.ID)
	require.NoError(t, err)
	require.Empty(t, list)

	err = svc.Archive(testCtx(), clinic.ID, "missing")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
