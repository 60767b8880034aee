package importer

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/nrk16p/api-payslip-v2/internal/employee"
	"github.com/nrk16p/api-payslip-v2/internal/events"
	importererrors "github.com/nrk16p/api-payslip-v2/internal/importer/errors"
	"github.com/nrk16p/api-payslip-v2/internal/messaging/kafka"
	"github.com/nrk16p/api-payslip-v2/internal/meta"
	"github.com/nrk16p/api-payslip-v2/internal/salarydata"
	"github.com/nrk16p/api-payslip-v2/internal/sheet"
	"github.com/nrk16p/api-payslip-v2/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// insertBatchSize bounds the size of each staged INSERT; the whole import
// still commits as one transaction.
const insertBatchSize = 10

const (
	colSheet      = "Sheet"
	colEmpCode    = "รหัสพนักงาน"
	colFullName   = "ชื่อ-นามสกุล"
	colLeverState = "สถานะคนลาออก"
)

// topLevelColumns are the identity columns of an upload; everything else is a
// salary column and must exist in the whitelist. "prefix" and "year_th" are
// reserved for intermediate label parsing in upstream sheets.
var topLevelColumns = map[string]bool{
	colSheet:      true,
	colEmpCode:    true,
	colFullName:   true,
	colLeverState: true,
	"prefix":      true,
	"year_th":     true,
}

//go:generate mockgen -source=import_service.go -destination=mock/import_service_mock.go -package=mock
type Service interface {
	Import(ctx context.Context, file io.Reader) (ImportResult, error)
}

type service struct {
	db        *sql.DB
	items     salarydata.Repository
	employees employee.Repository
	sheets    sheet.Repository
	metas     meta.Repository
	metaCache *meta.Cache
	outbox    kafka.OutboxRepository
	rdb       *redis.Client
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	items salarydata.Repository,
	employees employee.Repository,
	sheets sheet.Repository,
	metas meta.Repository,
	metaCache *meta.Cache,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("importer.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("importer.service")
	}
	return &service{
		db:        db,
		items:     items,
		employees: employees,
		sheets:    sheets,
		metas:     metas,
		metaCache: metaCache,
		outbox:    outbox,
		rdb:       rdb,
		logger:    l,
	}
}

// Import reconciles one uploaded workbook against the store: it validates
// every salary column against the whitelist (strict: any unknown column
// aborts the whole upload with nothing written), upserts employees by code,
// and replaces each employee's line items for the target period. The whole
// import is one transaction; batching bounds statement size, not durability.
func (s *service) Import(ctx context.Context, file io.Reader) (ImportResult, error) {
	rid := contextutil.GetRequestID(ctx)

	tbl, err := ParseWorkbook(file)
	if err != nil {
		return ImportResult{}, importererrors.UnreadableFile(err)
	}
	if len(tbl.Rows) == 0 {
		return ImportResult{}, importererrors.ErrNoDataRows
	}

	hasSheetCol := false
	for _, col := range tbl.Columns {
		if col == colSheet {
			hasSheetCol = true
			break
		}
	}
	if hasSheetCol {
		for _, row := range tbl.Rows {
			row[colSheet] = NormalizeSheetLabel(row[colSheet])
		}
	}

	// The first data row names the period for the entire file.
	monthYear := strings.TrimSpace(tbl.Rows[0][colSheet])
	if monthYear == "" {
		monthYear = "Unknown"
	}

	// Fresh whitelist read: import validation must never act on a stale map.
	metaMap, err := s.metas.LoadMap(ctx)
	if err != nil {
		return ImportResult{}, err
	}

	salaryCols := make([]string, 0, len(tbl.Columns))
	unknownCols := make([]string, 0)
	for _, col := range tbl.Columns {
		if topLevelColumns[col] {
			continue
		}
		salaryCols = append(salaryCols, col)
		if _, ok := metaMap[col]; !ok {
			unknownCols = append(unknownCols, col)
		}
	}

	if len(unknownCols) > 0 {
		allowed := make([]string, 0, len(metaMap))
		for name := range metaMap {
			allowed = append(allowed, name)
		}
		sort.Strings(allowed)
		return ImportResult{}, importererrors.UnknownItems(unknownCols, allowed)
	}

	empMap, err := s.employees.ListCodeMap(ctx)
	if err != nil {
		return ImportResult{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportResult{}, err
	}
	defer tx.Rollback()

	qItems := s.items.WithTx(tx)
	qEmployees := s.employees.WithTx(tx)

	sheetID, err := s.sheets.WithTx(tx).FindOrCreate(ctx, monthYear)
	if err != nil {
		return ImportResult{}, err
	}

	staged := make([]salarydata.SalaryItem, 0, insertBatchSize)
	inserted := 0

	for _, row := range tbl.Rows {
		empCode := strings.TrimSpace(row[colEmpCode])
		fullName := strings.TrimSpace(row[colFullName])
		status := strings.TrimSpace(row[colLeverState])
		if status == "" {
			status = employee.DefaultStatus
		}

		switch strings.ToLower(empCode) {
		case "", "nan", "none":
			continue
		}

		employeeID, ok := empMap[empCode]
		if !ok {
			employeeID, err = qEmployees.Upsert(ctx, empCode, fullName, status)
			if err != nil {
				return ImportResult{}, err
			}
			empMap[empCode] = employeeID
		}

		// Replace: the employee's previous items for this period go away
		// before the new ones are staged.
		if err := qItems.DeleteBySheetAndEmployee(ctx, sheetID, employeeID); err != nil {
			return ImportResult{}, err
		}

		for _, col := range salaryCols {
			cell := row[col]
			if cell == "" {
				continue
			}
			amount, err := decimal.NewFromString(cell)
			if err != nil {
				// Non-numeric cells are skipped silently.
				continue
			}

			staged = append(staged, salarydata.SalaryItem{
				SheetID:    sheetID,
				EmployeeID: employeeID,
				ItemGroup:  metaMap[col],
				ItemName:   col,
				Amount:     amount,
			})
			inserted++

			if len(staged) >= insertBatchSize {
				if err := qItems.InsertBatch(ctx, staged); err != nil {
					return ImportResult{}, err
				}
				staged = staged[:0]
			}
		}
	}

	if err := qItems.InsertBatch(ctx, staged); err != nil {
		return ImportResult{}, err
	}

	if err := s.recordImportEvent(ctx, tx, rid, monthYear, sheetID, inserted); err != nil {
		return ImportResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return ImportResult{}, err
	}

	// Invalidate after commit so readers never pick up uncommitted data.
	s.metaCache.Invalidate()
	if s.rdb != nil {
		s.rdb.Del(ctx, employee.OptionsCacheKey)
	}

	s.logger.Info("excel import completed",
		zap.String("request_id", rid),
		zap.String("month_year", monthYear),
		zap.Int("rows_inserted", inserted),
	)

	return ImportResult{
		Status:       "success",
		Sheet:        monthYear,
		RowsInserted: inserted,
	}, nil
}

func (s *service) recordImportEvent(
	ctx context.Context,
	tx *sql.Tx,
	requestID, monthYear string,
	sheetID uint,
	rowsInserted int,
) error {
	if s.outbox == nil {
		return nil
	}

	event := events.ImportCompletedEvent{
		EventType:    "import.completed",
		MonthYear:    monthYear,
		SheetID:      sheetID,
		RowsInserted: rowsInserted,
		OccurredAt:   time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     requestID,
		AggregateType: "salary_sheet",
		AggregateID:   fmt.Sprintf("%d", sheetID),
		EventType:     event.EventType,
		Topic:         events.ImportCompletedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}
