package services

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/clinivent/clinivent/internal/models"
)

var (
	// ErrEntryType indicates an unknown transaction type.
	ErrEntryType = errors.New("entry: unknown transaction type")
	// ErrEntryQty indicates the quantity did not parse to a non-zero integer.
	ErrEntryQty = errors.New("entry: quantity must be a non-zero integer")
	// ErrEntryNegative indicates a negative quantity for an in/out entry,
	// which are entered as magnitudes with the direction implied by the type.
	ErrEntryNegative = errors.New("entry: in/out quantities are entered as positive amounts")
)

// maxEntryQty caps the magnitude of a single ledger entry. The bound is exact
// in float64, so the int conversion below can never overflow.
const maxEntryQty = 1_000_000_000

// ValidateEntry checks a user-submitted transaction entry and returns the
// parsed quantity. Fractional input is truncated toward zero. The returned
// value is NOT sign-adjusted; see SignedQty.
func ValidateEntry(txType models.TransactionType, rawQty string) (int, error) {
	switch txType {
	case models.TransactionIn, models.TransactionOut, models.TransactionAdjust:
	default:
		return 0, ErrEntryType
	}

	raw := strings.TrimSpace(rawQty)
	if raw == "" {
		return 0, ErrEntryQty
	}

	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, ErrEntryQty
	}

	trunc := math.Trunc(parsed)
	if trunc < -maxEntryQty || trunc > maxEntryQty {
		return 0, ErrEntryQty
	}

	qty := int(trunc)
	if qty == 0 {
		return 0, ErrEntryQty
	}

	if (txType == models.TransactionIn || txType == models.TransactionOut) && qty < 0 {
		return 0, ErrEntryNegative
	}

	return qty, nil
}

// SignedQty applies the ledger sign convention to a validated quantity:
// "in" adds, "out" subtracts, "adjust" keeps the sign it was entered with.
func SignedQty(txType models.TransactionType, qty int) int {
	if txType == models.TransactionOut {
		return -qty
	}
	return qty
}
