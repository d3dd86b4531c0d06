package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clinivent/clinivent/internal/models"
)

func TestStockServiceBalancesAreSignedSums(t *testing.T) {
	db := openTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	clinic, category := createTestClinic(t, db, owner.ID)
	item := createTestItem(t, db, clinic.ID, category.ID, "독감백신", 0)

	// Order of entry must not matter.
	recordTestTxn(t, db, clinic.ID, item.ID, models.TransactionOut, -3, owner.ID)
	recordTestTxn(t, db, clinic.ID, item.ID, models.TransactionIn, 10, owner.ID)
	recordTestTxn(t, db, clinic.ID, item.ID, models.TransactionAdjust, -2, owner.ID)

	svc, err := NewStockService(db)
	require.NoError(t, err)

	levels, err := svc.Levels(testCtx(), clinic.ID)
	require.NoError(t, err)
	require.Len(t, levels, 1)
	require.Equal(t, 5, levels[0].Balance)
}

func TestStockServiceItemWithoutTransactions(t *testing.T) {
	db := openTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	clinic, category := createTestClinic(t, db, owner.ID)
	createTestItem(t, db, clinic.ID, category.ID, "해열제", 3)

	svc, err := NewStockService(db)
	require.NoError(t, err)

	levels, err := svc.Levels(testCtx(), clinic.ID)
	require.NoError(t, err)
	require.Len(t, levels, 1)
	require.Equal(t, 0, levels[0].Balance)
	require.True(t, levels[0].IsLow, "zero balance at threshold 3 is low")
}

func TestStockServiceLowStockFlag(t *testing.T) {
	cases := []struct {
		name      string
		balance   int
		threshold int
		low       bool
	}{
		{"at threshold", 5, 5, true},
		{"below threshold", 4, 5, true},
		{"above threshold", 6, 5, false},
		{"threshold disabled", 0, 0, false},
		{"negative balance disabled threshold", -2, 0, false},
		{"negative balance with threshold", -2, 1, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.low, isLow(tc.balance, tc.threshold))
		})
	}
}

func TestStockServiceExcludesArchived(t *testing.T) {
	db := openTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	clinic, category := createTestClinic(t, db, owner.ID)
	item := createTestItem(t, db, clinic.ID, category.ID, "단종품", 0)
	recordTestTxn(t, db, clinic.ID, item.ID, models.TransactionIn, 7, owner.ID)

	require.NoError(t, db.Model(item).Update("is_archived", true).Error)

	svc, err := NewStockService(db)
	require.NoError(t, err)

	levels, err := svc.Levels(testCtx(), clinic.ID)
	require.NoError(t, err)
	require.Empty(t, levels)

	// The ledger itself is untouched.
	var count int64
	require.NoError(t, db.Model(&models.StockTransaction{}).Where("item_id = ?", item.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestStockServiceComputeStockGroupsByCategory(t *testing.T) {
	db := openTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	clinic, first := createTestClinic(t, db, owner.ID)

	second := &models.Category{ClinicID: clinic.ID, Name: "외용제", SortOrder: 1}
	require.NoError(t, db.Create(second).Error)
	empty := &models.Category{ClinicID: clinic.ID, Name: "성장클리닉 주사약", SortOrder: 2}
	require.NoError(t, db.Create(empty).Error)

	createTestItem(t, db, clinic.ID, first.ID, "독감백신", 0)
	createTestItem(t, db, clinic.ID, second.ID, "연고", 0)

	svc, err := NewStockService(db)
	require.NoError(t, err)

	grouped, err := svc.ComputeStock(testCtx(), clinic.ID)
	require.NoError(t, err)
	require.Len(t, grouped, 3)
	require.Equal(t, "백신", grouped[0].CategoryName)
	require.Len(t, grouped[0].Items, 1)
	require.Equal(t, "외용제", grouped[1].CategoryName)
	require.Len(t, grouped[1].Items, 1)
	// Empty categories still appear, with an empty item list.
	require.Equal(t, "성장클리닉 주사약", grouped[2].CategoryName)
	require.Empty(t, grouped[2].Items)
}

func TestStockServiceCategoryTotals(t *testing.T) {
	db := openTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	clinic, vaccines := createTestClinic(t, db, owner.ID)

	empty := &models.Category{ClinicID: clinic.ID, Name: "외용제", SortOrder: 1}
	require.NoError(t, db.Create(empty).Error)

	a := createTestItem(t, db, clinic.ID, vaccines.ID, "독감백신", 0)
	recordTestTxn(t, db, clinic.ID, a.ID, models.TransactionIn, 10, owner.ID)
	b := createTestItem(t, db, clinic.ID, vaccines.ID, "수두백신", 0)
	recordTestTxn(t, db, clinic.ID, b.ID, models.TransactionOut, -4, owner.ID)

	svc, err := NewStockService(db)
	require.NoError(t, err)

	totals, err := svc.CategoryTotals(testCtx(), clinic.ID)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	require.Equal(t, "백신", totals[0].CategoryName)
	require.Equal(t, 6, totals[0].Total)
	// Categories with no items still report a zero total.
	require.Equal(t, "외용제", totals[1].CategoryName)
	require.Zero(t, totals[1].Total)
}

func TestStockServiceDashboard(t *testing.T) {
	db := openTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	clinic, category := createTestClinic(t, db, owner.ID)

	low := createTestItem(t, db, clinic.ID, category.ID, "부족품", 5)
	recordTestTxn(t, db, clinic.ID, low.ID, models.TransactionIn, 2, owner.ID)

	ok := createTestItem(t, db, clinic.ID, category.ID, "충분품", 5)
	recordTestTxn(t, db, clinic.ID, ok.ID, models.TransactionIn, 20, owner.ID)

	svc, err := NewStockService(db)
	require.NoError(t, err)

	dashboard, err := svc.GetDashboard(testCtx(), clinic.ID)
	require.NoError(t, err)
	require.Equal(t, clinic.Name, dashboard.ClinicName)
	require.Equal(t, 2, dashboard.ItemCount)
	require.Equal(t, 1, dashboard.LowStockCount)
	require.Len(t, dashboard.LowStock, 1)
	require.Equal(t, "부족품", dashboard.LowStock[0].ItemName)
}

func TestStockServiceDashboardCapsLowStockList(t *testing.T) {
	db := openTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	clinic, category := createTestClinic(t, db, owner.ID)

	// Balances 1..12 against threshold 12 leave all twelve items low.
	for i := 0; i < 12; i++ {
		item := createTestItem(t, db, clinic.ID, category.ID, itemName(i), 12)
		recordTestTxn(t, db, clinic.ID, item.ID, models.TransactionIn, i+1, owner.ID)
	}

	svc, err := NewStockService(db)
	require.NoError(t, err)

	dashboard, err := svc.GetDashboard(testCtx(), clinic.ID)
	require.NoError(t, err)
	require.Equal(t, 12, dashboard.LowStockCount)
	require.Len(t, dashboard.LowStock, 10)
	// Scarcest items first.
	require.Equal(t, 1, dashboard.LowStock[0].Balance)
}

func itemName(i int) string {
	return "품목-" + string(rune('a'+i))
}
