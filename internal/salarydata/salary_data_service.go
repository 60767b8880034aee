package salarydata

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/nrk16p/api-payslip-v2/internal/employee"
	"github.com/nrk16p/api-payslip-v2/internal/events"
	"github.com/nrk16p/api-payslip-v2/internal/messaging/kafka"
	"github.com/nrk16p/api-payslip-v2/internal/meta"
	"github.com/nrk16p/api-payslip-v2/internal/sheet"
	"github.com/nrk16p/api-payslip-v2/internal/shared/contextutil"
	"github.com/nrk16p/api-payslip-v2/internal/shared/tz"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=salary_data_service.go -destination=mock/salary_data_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context, monthYear, empCode string) ([]SalaryDataResponse, error)
	Upsert(ctx context.Context, req UpsertSalaryDataRequest) (UpsertStatusResponse, error)
	Export(ctx context.Context, monthYear string) (ExportFile, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	sheets    sheet.Repository
	metaCache *meta.Cache
	outbox    kafka.OutboxRepository
	rdb       *redis.Client
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	sheets sheet.Repository,
	metaCache *meta.Cache,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("salarydata.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salarydata.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		sheets:    sheets,
		metaCache: metaCache,
		outbox:    outbox,
		rdb:       rdb,
		logger:    l,
	}
}

// Get returns the employee's line items for the period, grouped into the
// three fixed buckets. A missing period or employee is an empty result, and
// so is a period whose activation window excludes the current instant: the
// data exists but is not visible yet (or no longer).
func (s *service) Get(ctx context.Context, monthYear, empCode string) ([]SalaryDataResponse, error) {
	sh, err := s.sheets.FindByMonthYear(ctx, monthYear)
	if err != nil {
		return nil, err
	}
	emp, err := s.employees.FindByCode(ctx, empCode)
	if err != nil {
		return nil, err
	}
	if sh == nil || emp == nil {
		return []SalaryDataResponse{}, nil
	}

	if !sh.WindowOpenAt(tz.NowUTC()) {
		return []SalaryDataResponse{}, nil
	}

	items, err := s.repo.FindBySheetAndEmployee(ctx, sh.SheetID, emp.EmployeeID)
	if err != nil {
		return nil, err
	}

	grouped := GroupedItems{
		Earnings:   map[string]string{},
		Deductions: map[string]string{},
		Summary:    map[string]string{},
	}
	for _, item := range items {
		amount := item.Amount.StringFixed(2)
		switch item.ItemGroup {
		case meta.GroupEarnings:
			grouped.Earnings[item.ItemName] = amount
		case meta.GroupDeductions:
			grouped.Deductions[item.ItemName] = amount
		case meta.GroupSummary:
			grouped.Summary[item.ItemName] = amount
		}
	}

	return []SalaryDataResponse{{
		Sheet:      sh.MonthYear,
		EmpCode:    emp.EmpCode,
		FullName:   emp.FullName,
		StatusName: emp.StatusName,
		Datalist:   grouped,
	}}, nil
}

// Upsert replaces the employee's line items for the period with the request
// payload, all inside one transaction. Item groups are reclassified through
// the whitelist when the name is known; unknown names keep the caller's group.
// Values that do not parse as numbers are skipped silently.
func (s *service) Upsert(ctx context.Context, req UpsertSalaryDataRequest) (UpsertStatusResponse, error) {
	status := req.Status
	if status == "" {
		status = employee.DefaultStatus
	}

	metaMap, err := s.metaCache.Lookup(ctx)
	if err != nil {
		return UpsertStatusResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UpsertStatusResponse{}, err
	}
	defer tx.Rollback()

	sheetID, err := s.sheets.WithTx(tx).FindOrCreate(ctx, req.MonthYear)
	if err != nil {
		return UpsertStatusResponse{}, err
	}

	employeeID, err := s.employees.WithTx(tx).Upsert(ctx, req.EmpID, req.FullName, status)
	if err != nil {
		return UpsertStatusResponse{}, err
	}

	qtx := s.repo.WithTx(tx)
	if err := qtx.DeleteBySheetAndEmployee(ctx, sheetID, employeeID); err != nil {
		return UpsertStatusResponse{}, err
	}

	items := make([]SalaryItem, 0)
	for group, entries := range req.Datalist {
		for name, value := range entries {
			amount, ok := parseAmount(value)
			if !ok {
				continue
			}

			itemGroup := group
			if resolved, known := metaMap[name]; known && resolved != "" {
				itemGroup = resolved
			}

			items = append(items, SalaryItem{
				SheetID:    sheetID,
				EmployeeID: employeeID,
				ItemGroup:  itemGroup,
				ItemName:   name,
				Amount:     amount,
			})
		}
	}

	if err := qtx.InsertBatch(ctx, items); err != nil {
		return UpsertStatusResponse{}, mapRepositoryError(err)
	}

	if err := s.recordUpsertEvent(ctx, tx, req.MonthYear, req.EmpID, len(items)); err != nil {
		return UpsertStatusResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return UpsertStatusResponse{}, mapRepositoryError(err)
	}

	// The upsert may have created the employee; drop the picker cache.
	if s.rdb != nil {
		s.rdb.Del(ctx, employee.OptionsCacheKey)
	}

	s.logger.Info("salary data upserted",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("month_year", req.MonthYear),
		zap.String("emp_code", req.EmpID),
		zap.Int("items", len(items)),
	)

	return UpsertStatusResponse{Status: "updated"}, nil
}

func (s *service) recordUpsertEvent(ctx context.Context, tx *sql.Tx, monthYear, empCode string, itemCount int) error {
	if s.outbox == nil {
		return nil
	}

	event := events.SalaryUpsertedEvent{
		EventType:  "salary.upserted",
		MonthYear:  monthYear,
		EmpCode:    empCode,
		ItemCount:  itemCount,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "salary_data",
		AggregateID:   empCode,
		EventType:     event.EventType,
		Topic:         events.SalaryUpsertedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

// parseAmount accepts the value shapes a JSON datalist can carry: numbers,
// numeric strings, or json.Number.
func parseAmount(v any) (decimal.Decimal, bool) {
	switch value := v.(type) {
	case float64:
		return decimal.NewFromFloat(value), true
	case int:
		return decimal.NewFromInt(int64(value)), true
	case int64:
		return decimal.NewFromInt(value), true
	case json.Number:
		d, err := decimal.NewFromString(value.String())
		return d, err == nil
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return decimal.Decimal{}, false
		}
		d, err := decimal.NewFromString(trimmed)
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}
