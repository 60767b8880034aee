package importer_test

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/nrk16p/api-payslip-v2/internal/employee"
	"github.com/nrk16p/api-payslip-v2/internal/importer"
	"github.com/nrk16p/api-payslip-v2/internal/messaging/kafka"
	"github.com/nrk16p/api-payslip-v2/internal/meta"
	"github.com/nrk16p/api-payslip-v2/internal/salarydata"
	"github.com/nrk16p/api-payslip-v2/internal/sheet"
	"github.com/nrk16p/api-payslip-v2/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

// fakeItemsRepo keeps an in-memory item set keyed by (sheet, employee, item
// name) so replace semantics are observable across imports.
type fakeItemsRepo struct {
	store      map[string]salarydata.SalaryItem
	deletes    int
	batchSizes []int
}

func newFakeItemsRepo() *fakeItemsRepo {
	return &fakeItemsRepo{store: map[string]salarydata.SalaryItem{}}
}

func itemKey(sheetID, employeeID uint, name string) string {
	return fmt.Sprintf("%d|%d|%s", sheetID, employeeID, name)
}

func (f *fakeItemsRepo) WithTx(tx *sql.Tx) salarydata.Repository { return f }

func (f *fakeItemsRepo) FindBySheetAndEmployee(ctx context.Context, sheetID, employeeID uint) ([]salarydata.SalaryItem, error) {
	return nil, nil
}

func (f *fakeItemsRepo) DeleteBySheetAndEmployee(ctx context.Context, sheetID, employeeID uint) error {
	f.deletes++
	for key, item := range f.store {
		if item.SheetID == sheetID && item.EmployeeID == employeeID {
			delete(f.store, key)
		}
	}
	return nil
}

func (f *fakeItemsRepo) InsertBatch(ctx context.Context, items []salarydata.SalaryItem) error {
	if len(items) == 0 {
		return nil
	}
	f.batchSizes = append(f.batchSizes, len(items))
	for _, item := range items {
		key := itemKey(item.SheetID, item.EmployeeID, item.ItemName)
		if _, exists := f.store[key]; exists {
			return fmt.Errorf("duplicate key value violates unique constraint \"uq_sheet_employee_item\"")
		}
		f.store[key] = item
	}
	return nil
}

func (f *fakeItemsRepo) FindExportRows(ctx context.Context, sheetID uint) ([]salarydata.ExportRow, error) {
	return nil, nil
}

type employeeUpsertCall struct {
	empCode, fullName, status string
}

type fakeEmployeeRepo struct {
	codeMap     map[string]uint
	nextID      uint
	upsertCalls []employeeUpsertCall
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepo) Upsert(ctx context.Context, empCode, fullName, statusName string) (uint, error) {
	f.upsertCalls = append(f.upsertCalls, employeeUpsertCall{empCode, fullName, statusName})
	if id, ok := f.codeMap[empCode]; ok {
		return id, nil
	}
	f.nextID++
	f.codeMap[empCode] = f.nextID
	return f.nextID, nil
}

func (f *fakeEmployeeRepo) FindByCode(ctx context.Context, empCode string) (*employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) ListCodeMap(ctx context.Context) (map[string]uint, error) {
	m := make(map[string]uint, len(f.codeMap))
	for code, id := range f.codeMap {
		m[code] = id
	}
	return m, nil
}

func (f *fakeEmployeeRepo) FindOptions(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

type fakeSheetRepo struct {
	createdWith []string
	sheetID     uint
}

func (f *fakeSheetRepo) WithTx(tx *sql.Tx) sheet.Repository { return f }

func (f *fakeSheetRepo) FindByMonthYear(ctx context.Context, monthYear string) (*sheet.SalarySheet, error) {
	return nil, nil
}

func (f *fakeSheetRepo) FindByID(ctx context.Context, sheetID uint) (*sheet.SalarySheet, error) {
	return nil, nil
}

func (f *fakeSheetRepo) FindOrCreate(ctx context.Context, monthYear string) (uint, error) {
	f.createdWith = append(f.createdWith, monthYear)
	return f.sheetID, nil
}

func (f *fakeSheetRepo) Update(ctx context.Context, s *sheet.SalarySheet) error { return nil }

func (f *fakeSheetRepo) List(ctx context.Context, sheetID *uint, monthYear string) ([]sheet.SalarySheet, error) {
	return nil, nil
}

func (f *fakeSheetRepo) ListMonthYears(ctx context.Context) ([]string, error) { return nil, nil }

type fakeMetaRepo struct {
	items    map[string]string
	loadMaps int
}

func (f *fakeMetaRepo) WithTx(tx *sql.Tx) meta.Repository { return f }

func (f *fakeMetaRepo) List(ctx context.Context) ([]meta.SalaryItemMeta, error) { return nil, nil }

func (f *fakeMetaRepo) LoadMap(ctx context.Context) (map[string]string, error) {
	f.loadMaps++
	m := make(map[string]string, len(f.items))
	for name, group := range f.items {
		m[name] = group
	}
	return m, nil
}

func (f *fakeMetaRepo) Upsert(ctx context.Context, itemName, itemGroup, remark string) error {
	return nil
}

func (f *fakeMetaRepo) DeleteByName(ctx context.Context, itemName string) (int64, error) {
	return 0, nil
}

type fakeOutboxRepo struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutboxRepo) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

type importServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   importer.Service
	items     *fakeItemsRepo
	employees *fakeEmployeeRepo
	sheets    *fakeSheetRepo
	metas     *fakeMetaRepo
	outbox    *fakeOutboxRepo
}

func setupImportServiceTest(t *testing.T, whitelist map[string]string) *importServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	items := newFakeItemsRepo()
	employees := &fakeEmployeeRepo{codeMap: map[string]uint{}}
	sheets := &fakeSheetRepo{sheetID: 7}
	metas := &fakeMetaRepo{items: whitelist}
	outbox := &fakeOutboxRepo{}

	svc := importer.NewService(
		db, items, employees, sheets, metas, meta.NewCache(metas), outbox, nil,
	)

	return &importServiceDeps{
		db: db, sqlMock: sqlMock, service: svc,
		items: items, employees: employees, sheets: sheets, metas: metas, outbox: outbox,
	}
}

func TestImportService_UnknownColumnsAbort(t *testing.T) {
	ctx := context.Background()
	deps := setupImportServiceTest(t, map[string]string{"เงินเดือน": meta.GroupEarnings})
	defer deps.db.Close()

	buf := buildWorkbook(t,
		[]string{"Sheet", "รหัสพนักงาน", "ชื่อ-นามสกุล", "เงินเดือน", "โบนัสพิเศษ"},
		[][]string{{"พ.ย.2568", "E001", "สมชาย ใจดี", "30000", "5000"}},
	)

	_, err := deps.service.Import(ctx, buf)

	httpErr := apperror.ToHTTP(err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, apperror.CodeUnknownItems, httpErr.Code)

	details, ok := httpErr.Details.(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, []string{"โบนัสพิเศษ"}, details["unknown_columns"])
	assert.Equal(t, []string{"เงินเดือน"}, details["allowed_columns"])

	// Nothing written: no transaction, no rows, no events.
	assert.Empty(t, deps.items.store)
	assert.Empty(t, deps.outbox.events)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestImportService_ReplaceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	deps := setupImportServiceTest(t, map[string]string{
		"เงินเดือน":  meta.GroupEarnings,
		"ประกันสังคม": meta.GroupDeductions,
	})
	defer deps.db.Close()

	header := []string{"Sheet", "รหัสพนักงาน", "ชื่อ-นามสกุล", "เงินเดือน", "ประกันสังคม"}
	rows := [][]string{
		{"พ.ย.2568", "E001", "สมชาย ใจดี", "30000", "750"},
		{"พ.ย.2568", "E002", "สมหญิง ดีใจ", "28000.50", "750"},
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	first, err := deps.service.Import(ctx, buildWorkbook(t, header, rows))
	assert.NoError(t, err)

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	second, err := deps.service.Import(ctx, buildWorkbook(t, header, rows))
	assert.NoError(t, err)

	assert.Equal(t, "success", first.Status)
	assert.Equal(t, "November2568", first.Sheet)
	assert.Equal(t, 4, first.RowsInserted)
	assert.Equal(t, first, second)

	// Same final item set, not duplicated rows.
	assert.Len(t, deps.items.store, 4)
	salary := deps.items.store[itemKey(7, deps.employees.codeMap["E001"], "เงินเดือน")]
	assert.Equal(t, meta.GroupEarnings, salary.ItemGroup)
	assert.Equal(t, "30000", salary.Amount.String())
	sso := deps.items.store[itemKey(7, deps.employees.codeMap["E002"], "ประกันสังคม")]
	assert.Equal(t, meta.GroupDeductions, sso.ItemGroup)

	assert.Equal(t, []string{"November2568", "November2568"}, deps.sheets.createdWith)
	assert.Len(t, deps.outbox.events, 2)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestImportService_SkipsBadRowsAndCells(t *testing.T) {
	ctx := context.Background()
	deps := setupImportServiceTest(t, map[string]string{"เงินเดือน": meta.GroupEarnings})
	defer deps.db.Close()

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	buf := buildWorkbook(t,
		[]string{"Sheet", "รหัสพนักงาน", "ชื่อ-นามสกุล", "สถานะคนลาออก", "เงินเดือน"},
		[][]string{
			{"พ.ย.2568", "E001", "สมชาย ใจดี", "", "30000"},
			{"พ.ย.2568", "nan", "ไม่มีตัวตน", "ลาออก", "10000"},
			{"พ.ย.2568", "E002", "สมหญิง ดีใจ", "ลาออก", "N/A"},
		},
	)

	result, err := deps.service.Import(ctx, buf)
	assert.NoError(t, err)

	// The nan row is dropped entirely; the non-numeric cell drops one item.
	assert.Equal(t, 1, result.RowsInserted)
	assert.Len(t, deps.items.store, 1)

	statuses := map[string]string{}
	for _, call := range deps.employees.upsertCalls {
		statuses[call.empCode] = call.status
	}
	assert.Equal(t, employee.DefaultStatus, statuses["E001"])
	assert.Equal(t, "ลาออก", statuses["E002"])
	assert.NotContains(t, statuses, "nan")

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestImportService_FlushesInFixedBatches(t *testing.T) {
	ctx := context.Background()

	// 13 whitelisted columns so one row overflows the batch size of 10.
	whitelist := map[string]string{}
	header := []string{"Sheet", "รหัสพนักงาน", "ชื่อ-นามสกุล"}
	cells := []string{"พ.ย.2568", "E001", "สมชาย ใจดี"}
	for i := 1; i <= 13; i++ {
		col := fmt.Sprintf("รายการ%02d", i)
		whitelist[col] = meta.GroupEarnings
		header = append(header, col)
		cells = append(cells, fmt.Sprintf("%d", i*100))
	}

	deps := setupImportServiceTest(t, whitelist)
	defer deps.db.Close()

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	result, err := deps.service.Import(ctx, buildWorkbook(t, header, [][]string{cells}))
	assert.NoError(t, err)
	assert.Equal(t, 13, result.RowsInserted)

	// One full batch plus the remainder, all landing exactly once.
	assert.Equal(t, []int{10, 3}, deps.items.batchSizes)
	assert.Len(t, deps.items.store, 13)
	for i := 1; i <= 13; i++ {
		col := fmt.Sprintf("รายการ%02d", i)
		item, ok := deps.items.store[itemKey(7, deps.employees.codeMap["E001"], col)]
		assert.True(t, ok, "missing %s", col)
		assert.Equal(t, fmt.Sprintf("%d", i*100), item.Amount.String())
	}

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestImportService_NoDataRows(t *testing.T) {
	ctx := context.Background()
	deps := setupImportServiceTest(t, map[string]string{})
	defer deps.db.Close()

	buf := buildWorkbook(t, []string{"Sheet", "รหัสพนักงาน"}, nil)

	_, err := deps.service.Import(ctx, buf)
	httpErr := apperror.ToHTTP(err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}
