package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/clinivent/clinivent/internal/models"
)

// StockLevel is the computed balance for one item. Balance is the sum of the
// item's signed ledger rows; items with no rows report a balance of zero.
type StockLevel struct {
	ItemID           string `json:"item_id"`
	ItemName         string `json:"item_name"`
	CategoryID       string `json:"category_id"`
	CategoryName     string `json:"category_name"`
	Unit             string `json:"unit"`
	Balance          int    `json:"balance"`
	ReorderThreshold int    `json:"reorder_threshold"`
	IsLow            bool   `json:"is_low"`
}

// CategoryStock groups the stock levels of one category for display.
type CategoryStock struct {
	CategoryID   string       `json:"category_id"`
	CategoryName string       `json:"category_name"`
	SortOrder    int          `json:"sort_order"`
	Items        []StockLevel `json:"items"`
}

// CategoryTotal is the summed balance of one category, used for the dashboard
// chart. Categories with no items report zero so their bar still renders.
type CategoryTotal struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Total        int    `json:"total"`
}

// Dashboard is the landing-page aggregate.
type Dashboard struct {
	ClinicName     string          `json:"clinic_name"`
	ItemCount      int             `json:"item_count"`
	CategoryCount  int             `json:"category_count"`
	LowStockCount  int             `json:"low_stock_count"`
	LowStock       []StockLevel    `json:"low_stock"`
	CategoryTotals []CategoryTotal `json:"category_totals"`
}

// StockService computes current stock from the transaction ledger.
type StockService struct {
	db *gorm.DB
}

// NewStockService constructs a StockService instance.
func NewStockService(db *gorm.DB) (*StockService, error) {
	if db == nil {
		return nil, errors.New("stock service: db is required")
	}
	return &StockService{db: db}, nil
}

type itemBalance struct {
	ItemID  string
	Balance int
}

func (s *StockService) balances(ctx context.Context, clinicID string) (map[string]int, error) {
	var rows []itemBalance
	err := s.db.WithContext(ctx).
		Model(&models.StockTransaction{}).
		Select("item_id, COALESCE(SUM(qty), 0) AS balance").
		Where("clinic_id = ?", clinicID).
		Group("item_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("stock service: sum ledger: %w", err)
	}

	balances := make(map[string]int, len(rows))
	for _, row := range rows {
		balances[row.ItemID] = row.Balance
	}
	return balances, nil
}

// isLow reports whether an item needs a reorder alert. A threshold of zero
// disables the alert entirely, even for negative balances.
func isLow(balance, threshold int) bool {
	return threshold > 0 && balance <= threshold
}

// ComputeStock returns current levels for every active item in the clinic,
// grouped by category in sort order. Archived items and categories are
// excluded; their ledger rows remain and still count toward nothing visible
// here.
func (s *StockService) ComputeStock(ctx context.Context, clinicID string) ([]CategoryStock, error) {
	ctx = ensureContext(ctx)

	var categories []models.Category
	err := s.db.WithContext(ctx).
		Where("clinic_id = ? AND is_archived = ?", clinicID, false).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("stock service: list categories: %w", err)
	}

	var items []models.Item
	err = s.db.WithContext(ctx).
		Where("clinic_id = ? AND is_archived = ?", clinicID, false).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("stock service: list items: %w", err)
	}

	balances, err := s.balances(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]StockLevel, len(categories))
	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	for _, item := range items {
		balance := balances[item.ID]
		byCategory[item.CategoryID] = append(byCategory[item.CategoryID], StockLevel{
			ItemID:           item.ID,
			ItemName:         item.Name,
			CategoryID:       item.CategoryID,
			CategoryName:     categoryNames[item.CategoryID],
			Unit:             item.Unit,
			Balance:          balance,
			ReorderThreshold: item.ReorderThreshold,
			IsLow:            isLow(balance, item.ReorderThreshold),
		})
	}

	result := make([]CategoryStock, 0, len(categories))
	for _, c := range categories {
		levels := byCategory[c.ID]
		if levels == nil {
			levels = []StockLevel{}
		}
		result = append(result, CategoryStock{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			SortOrder:    c.SortOrder,
			Items:        levels,
		})
	}
	return result, nil
}

// CategoryTotals sums balances per active category in sort order.
func (s *StockService) CategoryTotals(ctx context.Context, clinicID string) ([]CategoryTotal, error) {
	grouped, err := s.ComputeStock(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	totals := make([]CategoryTotal, 0, len(grouped))
	for _, g := range grouped {
		total := 0
		for _, level := range g.Items {
			total += level.Balance
		}
		totals = append(totals, CategoryTotal{
			CategoryID:   g.CategoryID,
			CategoryName: g.CategoryName,
			Total:        total,
		})
	}
	return totals, nil
}

// Levels flattens ComputeStock into a single item list, preserving category
// order.
func (s *StockService) Levels(ctx context.Context, clinicID string) ([]StockLevel, error) {
	grouped, err := s.ComputeStock(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	var levels []StockLevel
	for _, g := range grouped {
		levels = append(levels, g.Items...)
	}
	return levels, nil
}

// GetDashboard builds the landing-page aggregate: item count, low-stock
// count, and the ten lowest items relative to their thresholds.
func (s *StockService) GetDashboard(ctx context.Context, clinicID string) (*Dashboard, error) {
	ctx = ensureContext(ctx)

	var clinic models.Clinic
	err := s.db.WithContext(ctx).First(&clinic, "id = ?", clinicID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("stock service: clinic not found: %s", clinicID)
	}
	if err != nil {
		return nil, fmt.Errorf("stock service: load clinic: %w", err)
	}

	grouped, err := s.ComputeStock(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	var levels []StockLevel
	totals := make([]CategoryTotal, 0, len(grouped))
	for _, g := range grouped {
		levels = append(levels, g.Items...)
		total := 0
		for _, level := range g.Items {
			total += level.Balance
		}
		totals = append(totals, CategoryTotal{
			CategoryID:   g.CategoryID,
			CategoryName: g.CategoryName,
			Total:        total,
		})
	}

	var low []StockLevel
	for _, level := range levels {
		if level.IsLow {
			low = append(low, level)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Balance-low[i].ReorderThreshold < low[j].Balance-low[j].ReorderThreshold
	})

	lowCount := len(low)
	if len(low) > 10 {
		low = low[:10]
	}
	if low == nil {
		low = []StockLevel{}
	}

	return &Dashboard{
		ClinicName:     clinic.Name,
		ItemCount:      len(levels),
		CategoryCount:  len(totals),
		LowStockCount:  lowCount,
		LowStock:       low,
		CategoryTotals: totals,
	}, nil
}
