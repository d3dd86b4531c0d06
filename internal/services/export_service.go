package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/clinivent/clinivent/internal/models"
	"github.com/clinivent/clinivent/pkg/csvutil"
	apperrors "github.com/clinivent/clinivent/pkg/errors"
)

var (
	currentStockHeaders = []string{"카테고리", "품목", "현재재고", "단위", "경고기준(이하)"}
	transactionHeaders  = []string{"날짜", "품목", "유형", "수량", "단위", "메모"}
)

var transactionTypeLabels = map[models.TransactionType]string{
	models.TransactionIn:     "입고",
	models.TransactionOut:    "출고",
	models.TransactionAdjust: "조정",
}

// ExportFile is a rendered CSV attachment.
type ExportFile struct {
	Filename string
	Content  string
}

// ExportService renders inventory reports as CSV downloads.
type ExportService struct {
	stock        *StockService
	transactions *TransactionService
	loc          *time.Location
	clock        func() time.Time
}

// ExportOption customises an ExportService.
type ExportOption func(*ExportService)

// WithExportClock injects a deterministic clock for tests.
func WithExportClock(clock func() time.Time) ExportOption {
	return func(s *ExportService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithExportLocation sets the timezone used for dates in report rows and
// filenames.
func WithExportLocation(loc *time.Location) ExportOption {
	return func(s *ExportService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// NewExportService constructs an ExportService instance.
func NewExportService(stock *StockService, transactions *TransactionService, opts ...ExportOption) (*ExportService, error) {
	if stock == nil {
		return nil, errors.New("export service: stock service is required")
	}
	if transactions == nil {
		return nil, errors.New("export service: transaction service is required")
	}
	svc := &ExportService{
		stock:        stock,
		transactions: transactions,
		loc:          clinicTimezone(),
		clock:        time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

func (s *ExportService) today() string {
	return s.clock().In(s.loc).Format("2006-01-02")
}

// dateRange parses optional YYYY-MM-DD bounds into a half-open interval; the
// end date is inclusive, so the upper bound is the start of the next day.
func (s *ExportService) dateRange(fromDate, toDate string) (time.Time, time.Time, error) {
	var from, until time.Time
	if fromDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", fromDate, s.loc)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.NewBadRequest("from must be YYYY-MM-DD")
		}
		from = parsed
	}
	if toDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", toDate, s.loc)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.NewBadRequest("to must be YYYY-MM-DD")
		}
		until = parsed.AddDate(0, 0, 1)
	}
	return from, until, nil
}

// CurrentStock renders the stock snapshot report. Every active item appears,
// zero balances included.
func (s *ExportService) CurrentStock(ctx context.Context, clinicID string) (*ExportFile, error) {
	levels, err := s.stock.Levels(ensureContext(ctx), clinicID)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(levels))
	for _, level := range levels {
		rows = append(rows, []string{
			level.CategoryName,
			level.ItemName,
			strconv.Itoa(level.Balance),
			level.Unit,
			strconv.Itoa(level.ReorderThreshold),
		})
	}

	return &ExportFile{
		Filename: "current_stock_" + s.today() + ".csv",
		Content:  csvutil.ToCSV(currentStockHeaders, rows),
	}, nil
}

// Transactions renders the ledger report in chronological order, optionally
// restricted to an inclusive date range. In and out rows show the entered
// magnitude; the type column carries the direction.
func (s *ExportService) Transactions(ctx context.Context, clinicID, fromDate, toDate string) (*ExportFile, error) {
	from, until, err := s.dateRange(fromDate, toDate)
	if err != nil {
		return nil, err
	}

	txns, err := s.transactions.ListAll(ensureContext(ctx), clinicID, from, until)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(txns))
	for _, txn := range txns {
		qty := txn.Qty
		if txn.Type == models.TransactionOut && qty < 0 {
			qty = -qty
		}
		rows = append(rows, []string{
			txn.OccurredAt.In(s.loc).Format("2006-01-02"),
			txn.Item.Name,
			transactionTypeLabels[txn.Type],
			strconv.Itoa(qty),
			txn.Item.Unit,
			txn.Memo,
		})
	}

	return &ExportFile{
		Filename: "inventory_transactions_" + s.today() + ".csv",
		Content:  csvutil.ToCSV(transactionHeaders, rows),
	}, nil
}
