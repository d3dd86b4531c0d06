package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clinivent/clinivent/internal/models"
)

func TestExportServiceCurrentStock(t *testing.T) {
	db := openTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	clinic, category := createTestClinic(t, db, owner.ID)

	item := createTestItem(t, db, clinic.ID, category.ID, "독감백신", 5)
	recordTestTxn(t, db, clinic.ID, item.ID, models.TransactionIn, 12, owner.ID)
	createTestItem(t, db, clinic.ID, category.ID, "신규품목", 0)

	stock, err := NewStockService(db)
	require.NoError(t, err)
	txns, err := NewTransactionService(db)
	require.NoError(t, err)

	loc := time.FixedZone("KST", 9*3600)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, loc)
	svc, err := NewExportService(stock, txns,
		WithExportLocation(loc),
		WithExportClock(func() time.Time { return now }),
	)
	require.NoError(t, err)

	file, err := svc.CurrentStock(testCtx(), clinic.ID)
	require.NoError(t, err)
	require.Equal(t, "current_stock_2025-06-15.csv", file.Filename)
	require.True(t, strings.HasPrefix(file.Content, "\uFEFF"))

	lines := strings.Split(strings.TrimRight(strings.TrimPrefix(file.Content, "\uFEFF"), "\n"), "\n")
	require.Equal(t, "카테고리,품목,현재재고,단위,경고기준(이하)", lines[0])
	require.Contains(t, lines, "백신,독감백신,12,개,5")
	// Items without transactions still appear with a zero balance.
	require.Contains(t, lines, "백신,신규품목,0,개,0")
}

func TestExportServiceTransactions(t *testing.T) {
	db := openTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	clinic, category := createTestClinic(t, db, owner.ID)
	item := createTestItem(t, db, clinic.ID, category.ID, "독감백신", 0)

	loc := time.FixedZone("KST", 9*3600)
	occurred := time.Date(2025, 6, 10, 9, 0, 0, 0, loc)
	require.NoError(t, db.Create(&models.StockTransaction{
		ClinicID:   clinic.ID,
		ItemID:     item.ID,
		Type:       models.TransactionOut,
		Qty:        -3,
		Memo:       "사용, \"오전\" 접종",
		OccurredAt: occurred,
		CreatedBy:  owner.ID,
	}).Error)

	stock, err := NewStockService(db)
	require.NoError(t, err)
	txns, err := NewTransactionService(db)
	require.NoError(t, err)

	now := time.Date(2025, 6, 15, 10, 0, 0, 0, loc)
	svc, err := NewExportService(stock, txns,
		WithExportLocation(loc),
		WithExportClock(func() time.Time { return now }),
	)
	require.NoError(t, err)

	file, err := svc.Transactions(testCtx(), clinic.ID, "", "")
	require.NoError(t, err)
	require.Equal(t, "inventory_transactions_2025-06-15.csv", file.Filename)
	require.True(t, strings.HasPrefix(file.Content, "\uFEFF"))

	lines := strings.Split(strings.TrimRight(strings.TrimPrefix(file.Content, "\uFEFF"), "\n"), "\n")
	require.Equal(t, "날짜,품목,유형,수량,단위,메모", lines[0])
	// Out rows show the magnitude; fields with commas or quotes are escaped.
	require.Equal(t, `2025-06-10,독감백신,출고,3,개,"사용, ""오전"" 접종"`, lines[1])
}

func TestExportServiceTransactionsDateRange(t *testing.T) {
	db := openTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	clinic, category := createTestClinic(t, db, owner.ID)
	item := createTestItem(t, db, clinic.ID, category.ID, "독감백신", 0)

	loc := time.FixedZone("KST", 9*3600)
	for _, day := range []int{1, 10, 20} {
		require.NoError(t, db.Create(&models.StockTransaction{
			ClinicID:   clinic.ID,
			ItemID:     item.ID,
			Type:       models.TransactionIn,
			Qty:        1,
			OccurredAt: time.Date(2025, 6, day, 9, 0, 0, 0, loc),
			CreatedBy:  owner.ID,
		}).Error)
	}

	stock, err := NewStockService(db)
	require.NoError(t, err)
	txns, err := NewTransactionService(db)
	require.NoError(t, err)

	svc, err := NewExportService(stock, txns, WithExportLocation(loc))
	require.NoError(t, err)

	file, err := svc.Transactions(testCtx(), clinic.ID, "2025-06-05", "2025-06-10")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(strings.TrimPrefix(file.Content, "\uFEFF"), "\n"), "\n")
	require.Len(t, lines, 2, "only the 06-10 row falls inside the range")
	require.True(t, strings.HasPrefix(lines[1], "2025-06-10,"))

	_, err = svc.Transactions(testCtx(), clinic.ID, "05/06/2025", "")
	require.Error(t, err)
}
