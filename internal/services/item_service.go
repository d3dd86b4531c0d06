package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/clinivent/clinivent/internal/models"
	apperrors "github.com/clinivent/clinivent/pkg/errors"
)

// CreateItemInput describes the fields accepted when registering an item.
type CreateItemInput struct {
	CategoryID       string
	Name             string
	Unit             string
	ReorderThreshold int
}

// ItemService manages the stocked-item catalogue within a clinic.
type ItemService struct {
	db *gorm.DB
}

// NewItemService constructs an ItemService instance.
func NewItemService(db *gorm.DB) (*ItemService, error) {
	if db == nil {
		return nil, errors.New("item service: db is required")
	}
	return &ItemService{db: db}, nil
}

// Create registers an item under an active category. Names are unique per
// clinic.
func (s *ItemService) Create(ctx context.Context, clinicID string, input CreateItemInput) (*models.Item, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewBadRequest("item name is required")
	}
	if input.ReorderThreshold < 0 {
		return nil, apperrors.NewBadRequest("reorder threshold must not be negative")
	}

	var category models.Category
	err := s.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ? AND is_archived = ?", input.CategoryID, clinicID, false).
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewBadRequest("category not found or archived")
	}
	if err != nil {
		return nil, fmt.Errorf("item service: load category: %w", err)
	}

	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		unit = "개"
	}

	item := &models.Item{
		ClinicID:         clinicID,
		CategoryID:       category.ID,
		Name:             name,
		Unit:             unit,
		ReorderThreshold: input.ReorderThreshold,
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrNameTaken
		}
		return nil, fmt.Errorf("item service: create: %w", err)
	}
	return item, nil
}

// List returns the clinic's active items with their categories, ordered by
// name.
func (s *ItemService) List(ctx context.Context, clinicID string) ([]models.Item, error) {
	ctx = ensureContext(ctx)

	var items []models.Item
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("clinic_id = ? AND is_archived = ?", clinicID, false).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("item service: list: %w", err)
	}
	return items, nil
}

// UpdateThreshold changes an item's reorder threshold. Zero disables the
// low-stock alert.
func (s *ItemService) UpdateThreshold(ctx context.Context, clinicID, itemID string, threshold int) error {
	ctx = ensureContext(ctx)

	if threshold < 0 {
		return apperrors.NewBadRequest("reorder threshold must not be negative")
	}

	res := s.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ? AND clinic_id = ?", itemID, clinicID).
		Update("reorder_threshold", threshold)
	if res.Error != nil {
		return fmt.Errorf("item service: update threshold: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Archive hides an item from active listings and stock computation. Its
// ledger rows remain.
func (s *ItemService) Archive(ctx context.Context, clinicID, itemID string) error {
	ctx = ensureContext(ctx)

	res := s.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ? AND clinic_id = ?", itemID, clinicID).
		Update("is_archived", true)
	if res.Error != nil {
		return fmt.Errorf("item service: archive: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
