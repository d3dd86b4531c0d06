package models

import "time"

// TransactionType labels the direction of a stock movement.
type TransactionType string

const (
	TransactionIn     TransactionType = "in"
	TransactionOut    TransactionType = "out"
	TransactionAdjust TransactionType = "adjust"
)

// StockTransaction is one entry in the append-only stock ledger. Qty is
// stored signed: "in" rows are positive, "out" rows negative, "adjust" rows
// carry whatever sign was entered. Current stock is the plain sum of Qty per
// item. Rows are never updated, only inserted or hard-deleted.
type StockTransaction struct {
	BaseModel

	ClinicID   string          `gorm:"type:uuid;not null;index" json:"clinic_id"`
	ItemID     string          `gorm:"type:uuid;not null;index" json:"item_id"`
	Type       TransactionType `gorm:"type:varchar(10);not null" json:"type"`
	Qty        int             `gorm:"not null" json:"qty"`
	Memo       string          `json:"memo,omitempty"`
	OccurredAt time.Time       `gorm:"not null;index" json:"occurred_at"`
	CreatedBy  string          `gorm:"type:uuid;not null" json:"created_by"`

	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"-"`
	Item   Item   `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}
