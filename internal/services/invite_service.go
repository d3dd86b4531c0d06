package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clinivent/clinivent/internal/models"
	"github.com/clinivent/clinivent/pkg/crypto"
	apperrors "github.com/clinivent/clinivent/pkg/errors"
	"github.com/clinivent/clinivent/pkg/metrics"
)

// ErrAlreadyMember indicates the accepting user already belongs to the
// invite's clinic.
var ErrAlreadyMember = apperrors.NewBadRequest("account is already a member of this clinic")

const (
	defaultInviteExpiry      = 7 * 24 * time.Hour
	defaultInviteTokenLength = 24
	inviteListLimit          = 20
)

// AcceptResult reports where an accepted invite landed the user.
type AcceptResult struct {
	ClinicID   string            `json:"clinic_id"`
	ClinicName string            `json:"clinic_name"`
	Role       models.ClinicRole `json:"role"`
}

// InviteService manages single-use clinic invitations.
type InviteService struct {
	db          *gorm.DB
	expiry      time.Duration
	tokenLength int
	clock       func() time.Time
}

// InviteOption customises an InviteService.
type InviteOption func(*InviteService)

// WithInviteClock injects a deterministic clock for tests.
func WithInviteClock(clock func() time.Time) InviteOption {
	return func(s *InviteService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithInviteExpiry overrides the invite validity window.
func WithInviteExpiry(expiry time.Duration) InviteOption {
	return func(s *InviteService) {
		if expiry > 0 {
			s.expiry = expiry
		}
	}
}

// WithInviteTokenLength overrides the token byte length.
func WithInviteTokenLength(length int) InviteOption {
	return func(s *InviteService) {
		if length > 0 {
			s.tokenLength = length
		}
	}
}

// NewInviteService constructs an InviteService instance.
func NewInviteService(db *gorm.DB, opts ...InviteOption) (*InviteService, error) {
	if db == nil {
		return nil, errors.New("invite service: db is required")
	}
	svc := &InviteService{
		db:          db,
		expiry:      defaultInviteExpiry,
		tokenLength: defaultInviteTokenLength,
		clock:       time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Issue creates a staff invite. Only the clinic owner may invite.
func (s *InviteService) Issue(ctx context.Context, clinicID, userID string) (*models.ClinicInvite, error) {
	ctx = ensureContext(ctx)

	var member models.ClinicMember
	err := s.db.WithContext(ctx).
		Where("clinic_id = ? AND user_id = ?", clinicID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && member.Role != models.ClinicRoleOwner) {
		return nil, apperrors.ErrForbidden
	}
	if err != nil {
		return nil, fmt.Errorf("invite service: check issuer: %w", err)
	}

	token, err := crypto.GenerateToken(s.tokenLength)
	if err != nil {
		return nil, fmt.Errorf("invite service: generate token: %w", err)
	}

	invite := &models.ClinicInvite{
		Token:     token,
		ClinicID:  clinicID,
		Role:      models.ClinicRoleStaff,
		CreatedBy: userID,
		ExpiresAt: s.clock().Add(s.expiry),
	}
	if err := s.db.WithContext(ctx).Create(invite).Error; err != nil {
		return nil, fmt.Errorf("invite service: create: %w", err)
	}
	return invite, nil
}

// Accept claims an invite for the user. The claim is a conditional update on
// the token row, so under concurrent acceptance exactly one caller wins and
// every other caller sees ErrInviteInvalidOrExpired. A winner who turns out
// to already be a member rolls the claim back.
func (s *InviteService) Accept(ctx context.Context, token, userID string) (*AcceptResult, error) {
	ctx = ensureContext(ctx)

	now := s.clock()
	var result AcceptResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claim := tx.Model(&models.ClinicInvite{}).
			Where("token = ? AND used_at IS NULL AND expires_at > ?", token, now).
			Updates(map[string]any{"used_at": now, "used_by": userID})
		if claim.Error != nil {
			return fmt.Errorf("claim invite: %w", claim.Error)
		}
		if claim.RowsAffected == 0 {
			return apperrors.ErrInviteInvalidOrExpired
		}

		var invite models.ClinicInvite
		if err := tx.Preload("Clinic").First(&invite, "token = ?", token).Error; err != nil {
			return fmt.Errorf("load claimed invite: %w", err)
		}

		var existing int64
		err := tx.Model(&models.ClinicMember{}).
			Where("clinic_id = ? AND user_id = ?", invite.ClinicID, userID).
			Count(&existing).Error
		if err != nil {
			return fmt.Errorf("check membership: %w", err)
		}
		if existing > 0 {
			return ErrAlreadyMember
		}

		member := &models.ClinicMember{
			ClinicID: invite.ClinicID,
			UserID:   userID,
			Role:     invite.Role,
		}
		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("create membership: %w", err)
		}

		profile := models.Profile{UserID: userID, CurrentClinicID: &invite.ClinicID}
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"current_clinic_id", "updated_at"}),
		}).Create(&profile).Error
		if err != nil {
			return fmt.Errorf("update profile: %w", err)
		}

		result = AcceptResult{
			ClinicID:   invite.ClinicID,
			ClinicName: invite.Clinic.Name,
			Role:       invite.Role,
		}
		return nil
	})
	if err != nil {
		metrics.InviteOutcomes.WithLabelValues("rejected").Inc()
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, fmt.Errorf("invite service: accept: %w", err)
	}

	metrics.InviteOutcomes.WithLabelValues("accepted").Inc()
	return &result, nil
}

// List returns the clinic's most recent invites.
func (s *InviteService) List(ctx context.Context, clinicID string) ([]models.ClinicInvite, error) {
	ctx = ensureContext(ctx)

	var invites []models.ClinicInvite
	err := s.db.WithContext(ctx).
		Where("clinic_id = ?", clinicID).
		Order("created_at DESC").
		Limit(inviteListLimit).
		Find(&invites).Error
	if err != nil {
		return nil, fmt.Errorf("invite service: list: %w", err)
	}
	return invites, nil
}
