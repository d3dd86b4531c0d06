package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/clinivent/clinivent/internal/models"
	apperrors "github.com/clinivent/clinivent/pkg/errors"
	"github.com/clinivent/clinivent/pkg/metrics"
)

// ErrItemUnavailable indicates the target item is missing or archived.
var ErrItemUnavailable = apperrors.NewBadRequest("item not found or archived")

const transactionListLimit = 50

// RecordTransactionInput describes a stock entry as submitted by a user.
// Qty is the raw text from the form; validation and sign handling happen
// inside Record.
type RecordTransactionInput struct {
	ItemID       string
	Type         models.TransactionType
	Qty          string
	Memo         string
	OccurredDate string
}

// TransactionService appends to and trims the stock ledger.
type TransactionService struct {
	db    *gorm.DB
	loc   *time.Location
	clock func() time.Time
}

// TransactionOption customises a TransactionService.
type TransactionOption func(*TransactionService)

// WithTransactionClock injects a deterministic clock for tests.
func WithTransactionClock(clock func() time.Time) TransactionOption {
	return func(s *TransactionService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithTransactionLocation sets the timezone used to anchor occurred dates.
func WithTransactionLocation(loc *time.Location) TransactionOption {
	return func(s *TransactionService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// NewTransactionService constructs a TransactionService instance.
func NewTransactionService(db *gorm.DB, opts ...TransactionOption) (*TransactionService, error) {
	if db == nil {
		return nil, errors.New("transaction service: db is required")
	}
	svc := &TransactionService{
		db:    db,
		loc:   clinicTimezone(),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// clinicTimezone resolves the display timezone, falling back to a fixed KST
// offset when the zone database is unavailable.
func clinicTimezone() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return time.FixedZone("KST", 9*3600)
	}
	return loc
}

// occurredAt anchors a YYYY-MM-DD date at 09:00 local time so same-day rows
// sort consistently. An empty date means today.
func (s *TransactionService) occurredAt(date string) (time.Time, error) {
	if date == "" {
		now := s.clock().In(s.loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, s.loc), nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return time.Time{}, apperrors.NewBadRequest("occurred_date must be YYYY-MM-DD")
	}
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 9, 0, 0, 0, s.loc), nil
}

// Record validates and appends one ledger row. The stored quantity is
// sign-adjusted so balances are a plain sum.
func (s *TransactionService) Record(ctx context.Context, clinicID, userID string, input RecordTransactionInput) (*models.StockTransaction, error) {
	ctx = ensureContext(ctx)

	qty, err := ValidateEntry(input.Type, input.Qty)
	if err != nil {
		return nil, apperrors.NewBadRequest(err.Error())
	}

	occurredAt, err := s.occurredAt(input.OccurredDate)
	if err != nil {
		return nil, err
	}

	var item models.Item
	err = s.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ? AND is_archived = ?", input.ItemID, clinicID, false).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("transaction service: load item: %w", err)
	}

	txn := &models.StockTransaction{
		ClinicID:   clinicID,
		ItemID:     item.ID,
		Type:       input.Type,
		Qty:        SignedQty(input.Type, qty),
		Memo:       input.Memo,
		OccurredAt: occurredAt,
		CreatedBy:  userID,
	}

	if err := s.db.WithContext(ctx).Create(txn).Error; err != nil {
		return nil, fmt.Errorf("transaction service: create: %w", err)
	}

	metrics.StockEntries.WithLabelValues(string(input.Type)).Inc()

	txn.Item = item
	return txn, nil
}

// List returns the newest ledger rows for the clinic, optionally filtered by
// item.
func (s *TransactionService) List(ctx context.Context, clinicID, itemID string) ([]models.StockTransaction, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).
		Preload("Item").
		Where("clinic_id = ?", clinicID)
	if itemID != "" {
		query = query.Where("item_id = ?", itemID)
	}

	var txns []models.StockTransaction
	err := query.
		Order("occurred_at DESC, created_at DESC").
		Limit(transactionListLimit).
		Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("transaction service: list: %w", err)
	}
	return txns, nil
}

// ListAll returns every ledger row for the clinic in chronological order,
// optionally bounded by [from, until). Zero times mean unbounded. Used by
// exports, which must not truncate.
func (s *TransactionService) ListAll(ctx context.Context, clinicID string, from, until time.Time) ([]models.StockTransaction, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).
		Preload("Item").
		Where("clinic_id = ?", clinicID)
	if !from.IsZero() {
		query = query.Where("occurred_at >= ?", from)
	}
	if !until.IsZero() {
		query = query.Where("occurred_at < ?", until)
	}

	var txns []models.StockTransaction
	err := query.
		Order("occurred_at ASC, created_at ASC").
		Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("transaction service: list all: %w", err)
	}
	return txns, nil
}

// Delete hard-removes one ledger row, scoped to the clinic so a row from
// another tenant cannot be reached by identifier.
func (s *TransactionService) Delete(ctx context.Context, clinicID, txnID string) error {
	ctx = ensureContext(ctx)

	res := s.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", txnID, clinicID).
		Delete(&models.StockTransaction{})
	if res.Error != nil {
		return fmt.Errorf("transaction service: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
