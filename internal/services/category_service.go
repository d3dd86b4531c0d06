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

// CategoryService manages item categories within a clinic.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService constructs a CategoryService instance.
func NewCategoryService(db *gorm.DB) (*CategoryService, error) {
	if db == nil {
		return nil, errors.New("category service: db is required")
	}
	return &CategoryService{db: db}, nil
}

// Create adds a category at the end of the sort order. Names are unique per
// clinic, archived rows included.
func (s *CategoryService) Create(ctx context.Context, clinicID, name string) (*models.Category, error) {
	ctx = ensureContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewBadRequest("category name is required")
	}

	var maxOrder struct{ Max int }
	err := s.db.WithContext(ctx).
		Model(&models.Category{}).
		Select("COALESCE(MAX(sort_order), -1) AS max").
		Where("clinic_id = ?", clinicID).
		Scan(&maxOrder).Error
	if err != nil {
		return nil, fmt.Errorf("category service: next sort order: %w", err)
	}

	category := &models.Category{
		ClinicID:  clinicID,
		Name:      name,
		SortOrder: maxOrder.Max + 1,
	}
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrNameTaken
		}
		return nil, fmt.Errorf("category service: create: %w", err)
	}
	return category, nil
}

// List returns the clinic's active categories in sort order.
func (s *CategoryService) List(ctx context.Context, clinicID string) ([]models.Category, error) {
	ctx = ensureContext(ctx)

	var categories []models.Category
	err := s.db.WithContext(ctx).
		Where("clinic_id = ? AND is_archived = ?", clinicID, false).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("category service: list: %w", err)
	}
	return categories, nil
}

// Archive hides a category and its items from active listings. Ledger rows
// are untouched.
func (s *CategoryService) Archive(ctx context.Context, clinicID, categoryID string) error {
	ctx = ensureContext(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Category{}).
			Where("id = ? AND clinic_id = ?", categoryID, clinicID).
			Update("is_archived", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}

		err := tx.Model(&models.Item{}).
			Where("category_id = ? AND clinic_id = ?", categoryID, clinicID).
			Update("is_archived", true).Error
		if err != nil {
			return fmt.Errorf("archive items: %w", err)
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return fmt.Errorf("category service: archive: %w", err)
	}
	return nil
}
