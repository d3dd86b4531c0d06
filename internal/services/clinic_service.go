package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clinivent/clinivent/internal/models"
	apperrors "github.com/clinivent/clinivent/pkg/errors"
)

// ErrAlreadySetUp indicates the user already belongs to a clinic and cannot
// create another.
var ErrAlreadySetUp = apperrors.NewBadRequest("account already belongs to a clinic")

// defaultCategories are seeded for every new clinic so the first stock entry
// has somewhere to go.
var defaultCategories = []string{"백신", "외용제", "성장클리닉 주사약"}

// SetupInput describes the fields accepted when creating a clinic.
type SetupInput struct {
	Name string
}

// ClinicMemberInfo is a membership row joined with its user for listings.
type ClinicMemberInfo struct {
	UserID   string            `json:"user_id"`
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Role     models.ClinicRole `json:"role"`
	JoinedAt string            `json:"joined_at"`
}

// ClinicService manages clinic lifecycle and tenant resolution.
type ClinicService struct {
	db *gorm.DB
}

// NewClinicService constructs a ClinicService instance.
func NewClinicService(db *gorm.DB) (*ClinicService, error) {
	if db == nil {
		return nil, errors.New("clinic service: db is required")
	}
	return &ClinicService{db: db}, nil
}

// ResolveClinicID returns the clinic the user should operate on. The cached
// profile pointer wins when it still matches a live membership; otherwise the
// earliest membership is promoted and written back to the profile. A user
// with no memberships gets ErrNoClinic, which callers surface as a signal to
// enter the setup flow.
func (s *ClinicService) ResolveClinicID(ctx context.Context, userID string) (string, error) {
	ctx = ensureContext(ctx)

	var profile models.Profile
	err := s.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("clinic service: load profile: %w", err)
	}

	if profile.CurrentClinicID != nil && *profile.CurrentClinicID != "" {
		var count int64
		err := s.db.WithContext(ctx).Model(&models.ClinicMember{}).
			Where("clinic_id = ? AND user_id = ?", *profile.CurrentClinicID, userID).
			Count(&count).Error
		if err != nil {
			return "", fmt.Errorf("clinic service: verify membership: %w", err)
		}
		if count > 0 {
			return *profile.CurrentClinicID, nil
		}
	}

	var member models.ClinicMember
	err = s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperrors.ErrNoClinic
	}
	if err != nil {
		return "", fmt.Errorf("clinic service: load membership: %w", err)
	}

	if err := s.cacheCurrentClinic(ctx, userID, member.ClinicID); err != nil {
		return "", err
	}

	return member.ClinicID, nil
}

func (s *ClinicService) cacheCurrentClinic(ctx context.Context, userID, clinicID string) error {
	profile := models.Profile{UserID: userID, CurrentClinicID: &clinicID}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"current_clinic_id", "updated_at"}),
		}).
		Create(&profile).Error
	if err != nil {
		return fmt.Errorf("clinic service: cache current clinic: %w", err)
	}
	return nil
}

// Setup creates a clinic with the caller as owner and seeds the default
// categories. Users already belonging to a clinic cannot create another.
func (s *ClinicService) Setup(ctx context.Context, userID string, input SetupInput) (*models.Clinic, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewBadRequest("clinic name is required")
	}

	var existing int64
	err := s.db.WithContext(ctx).Model(&models.ClinicMember{}).
		Where("user_id = ?", userID).
		Count(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("clinic service: check memberships: %w", err)
	}
	if existing > 0 {
		return nil, ErrAlreadySetUp
	}

	clinic := &models.Clinic{Name: name, CreatedBy: userID}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(clinic).Error; err != nil {
			return fmt.Errorf("create clinic: %w", err)
		}

		member := &models.ClinicMember{
			ClinicID: clinic.ID,
			UserID:   userID,
			Role:     models.ClinicRoleOwner,
		}
		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("create owner membership: %w", err)
		}

		for i, categoryName := range defaultCategories {
			category := &models.Category{
				ClinicID:  clinic.ID,
				Name:      categoryName,
				SortOrder: i,
			}
			if err := tx.Create(category).Error; err != nil {
				return fmt.Errorf("seed category %q: %w", categoryName, err)
			}
		}

		profile := models.Profile{UserID: userID, CurrentClinicID: &clinic.ID}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"current_clinic_id", "updated_at"}),
		}).Create(&profile).Error
		if err != nil {
			return fmt.Errorf("update profile: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("clinic service: setup: %w", err)
	}

	return clinic, nil
}

// Get loads a clinic by identifier.
func (s *ClinicService) Get(ctx context.Context, clinicID string) (*models.Clinic, error) {
	ctx = ensureContext(ctx)

	var clinic models.Clinic
	err := s.db.WithContext(ctx).First(&clinic, "id = ?", clinicID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("clinic service: get clinic: %w", err)
	}
	return &clinic, nil
}

// UpdateClinicInput describes the mutable clinic fields. Nil fields are left
// untouched.
type UpdateClinicInput struct {
	Name     *string
	Settings datatypes.JSON
}

// Update applies owner-edited clinic fields. Settings is stored as opaque
// JSON holding client display preferences.
func (s *ClinicService) Update(ctx context.Context, clinicID, userID string, input UpdateClinicInput) (*models.Clinic, error) {
	ctx = ensureContext(ctx)

	role, err := s.MemberRole(ctx, clinicID, userID)
	if err != nil {
		return nil, err
	}
	if role != models.ClinicRoleOwner {
		return nil, apperrors.ErrForbidden
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewBadRequest("clinic name is required")
		}
		updates["name"] = name
	}
	if input.Settings != nil {
		updates["settings"] = input.Settings
	}

	if len(updates) > 0 {
		result := s.db.WithContext(ctx).Model(&models.Clinic{}).
			Where("id = ?", clinicID).
			Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("clinic service: update: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, apperrors.ErrNotFound
		}
	}

	return s.Get(ctx, clinicID)
}

// MemberRole returns the caller's role in the clinic, or ErrForbidden when
// the caller is not a member.
func (s *ClinicService) MemberRole(ctx context.Context, clinicID, userID string) (models.ClinicRole, error) {
	ctx = ensureContext(ctx)

	var member models.ClinicMember
	err := s.db.WithContext(ctx).
		Where("clinic_id = ? AND user_id = ?", clinicID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperrors.ErrForbidden
	}
	if err != nil {
		return "", fmt.Errorf("clinic service: load member role: %w", err)
	}
	return member.Role, nil
}

// ListMembers returns the clinic roster ordered by join time, owner first
// when times tie.
func (s *ClinicService) ListMembers(ctx context.Context, clinicID string) ([]ClinicMemberInfo, error) {
	ctx = ensureContext(ctx)

	var members []models.ClinicMember
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("clinic_id = ?", clinicID).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("clinic service: list members: %w", err)
	}

	infos := make([]ClinicMemberInfo, 0, len(members))
	for _, m := range members {
		infos = append(infos, ClinicMemberInfo{
			UserID:   m.UserID,
			Name:     m.User.Name,
			Email:    m.User.Email,
			Role:     m.Role,
			JoinedAt: m.CreatedAt.Format("2006-01-02"),
		})
	}
	return infos, nil
}

// Delete removes the clinic and every dependent row. Only the owner may
// delete, and the explicit deletes keep the behaviour identical across
// databases that do not honour cascade constraints in the schema.
func (s *ClinicService) Delete(ctx context.Context, clinicID, userID string) error {
	ctx = ensureContext(ctx)

	role, err := s.MemberRole(ctx, clinicID, userID)
	if err != nil {
		return err
	}
	if role != models.ClinicRoleOwner {
		return apperrors.ErrForbidden
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&models.StockTransaction{},
			&models.Item{},
			&models.Category{},
			&models.ClinicInvite{},
			&models.ClinicMember{},
		} {
			if err := tx.Where("clinic_id = ?", clinicID).Delete(model).Error; err != nil {
				return fmt.Errorf("delete dependents: %w", err)
			}
		}

		err := tx.Model(&models.Profile{}).
			Where("current_clinic_id = ?", clinicID).
			Update("current_clinic_id", nil).Error
		if err != nil {
			return fmt.Errorf("clear profiles: %w", err)
		}

		if err := tx.Delete(&models.Clinic{}, "id = ?", clinicID).Error; err != nil {
			return fmt.Errorf("delete clinic: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("clinic service: delete: %w", err)
	}
	return nil
}
