package salarydata_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/nrk16p/api-payslip-v2/internal/employee"
	"github.com/nrk16p/api-payslip-v2/internal/meta"
	"github.com/nrk16p/api-payslip-v2/internal/salarydata"
	salarydataerrors "github.com/nrk16p/api-payslip-v2/internal/salarydata/errors"
	"github.com/nrk16p/api-payslip-v2/internal/sheet"
	sheeterrors "github.com/nrk16p/api-payslip-v2/internal/sheet/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func TestSalaryDataService_Export_Totals(t *testing.T) {
	ctx := context.Background()
	deps := setupSalaryDataTest(t, nil)
	defer deps.db.Close()

	deps.sheets.findByMonthYearFn = func(ctx context.Context, monthYear string) (*sheet.SalarySheet, error) {
		return &sheet.SalarySheet{SheetID: 7, MonthYear: monthYear}, nil
	}
	deps.items.findExportRowsFn = func(ctx context.Context, sheetID uint) ([]salarydata.ExportRow, error) {
		emp := func(item, group string, amount int64) salarydata.ExportRow {
			return salarydata.ExportRow{
				EmpCode:    "E001",
				FullName:   "สมชาย ใจดี",
				StatusName: employee.DefaultStatus,
				ItemGroup:  group,
				ItemName:   item,
				Amount:     decimal.NewFromInt(amount),
			}
		}
		return []salarydata.ExportRow{
			emp("A", meta.GroupEarnings, 100),
			emp("B", meta.GroupEarnings, 50),
			emp("C", meta.GroupDeductions, 30),
		}, nil
	}

	file, err := deps.service.Export(ctx, "November2568")
	assert.NoError(t, err)
	assert.Equal(t, "payroll_November2568.xlsx", file.Filename)

	rows := readWorkbookRows(t, file.Content)
	assert.Len(t, rows, 2)

	header := rows[0]
	assert.Equal(t, []string{
		"รหัสพนักงาน", "ชื่อ - นามสกุล", "สถานะ",
		"A", "B", "C",
		"Total Earnings", "Total Deductions", "Net Pay",
	}, header)

	data := rows[1]
	assert.Equal(t, "E001", data[0])
	assert.Equal(t, "100", data[3])
	assert.Equal(t, "50", data[4])
	assert.Equal(t, "30", data[5])
	assert.Equal(t, "150", data[6])
	assert.Equal(t, "30", data[7])
	assert.Equal(t, "120", data[8])
}

func TestSalaryDataService_Export_FillsMissingCellsWithZero(t *testing.T) {
	ctx := context.Background()
	deps := setupSalaryDataTest(t, nil)
	defer deps.db.Close()

	deps.sheets.findByMonthYearFn = func(ctx context.Context, monthYear string) (*sheet.SalarySheet, error) {
		return &sheet.SalarySheet{SheetID: 7, MonthYear: monthYear}, nil
	}
	deps.items.findExportRowsFn = func(ctx context.Context, sheetID uint) ([]salarydata.ExportRow, error) {
		return []salarydata.ExportRow{
			{EmpCode: "E001", FullName: "A", ItemGroup: meta.GroupEarnings, ItemName: "เงินเดือน", Amount: decimal.NewFromInt(100)},
			{EmpCode: "E002", FullName: "B", ItemGroup: meta.GroupEarnings, ItemName: "โบนัส", Amount: decimal.NewFromInt(40)},
		}, nil
	}

	file, err := deps.service.Export(ctx, "November2568")
	assert.NoError(t, err)

	rows := readWorkbookRows(t, file.Content)
	assert.Len(t, rows, 3)

	// E001 has no โบนัส and E002 has no เงินเดือน; both render as zero.
	assert.Equal(t, "100", rows[1][3])
	assert.Equal(t, "0", rows[1][4])
	assert.Equal(t, "0", rows[2][3])
	assert.Equal(t, "40", rows[2][4])
}

func TestSalaryDataService_Export_NotFound(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown period", func(t *testing.T) {
		deps := setupSalaryDataTest(t, nil)
		defer deps.db.Close()

		_, err := deps.service.Export(ctx, "Nowhere2568")
		assert.ErrorIs(t, err, sheeterrors.ErrSheetNotFound)
	})

	t.Run("period with no items", func(t *testing.T) {
		deps := setupSalaryDataTest(t, nil)
		defer deps.db.Close()

		deps.sheets.findByMonthYearFn = func(ctx context.Context, monthYear string) (*sheet.SalarySheet, error) {
			return &sheet.SalarySheet{SheetID: 7, MonthYear: monthYear}, nil
		}

		_, err := deps.service.Export(ctx, "November2568")
		assert.ErrorIs(t, err, salarydataerrors.ErrNoSalaryData)
	})
}

func readWorkbookRows(t *testing.T, content []byte) [][]string {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(content))
	assert.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Payroll")
	assert.NoError(t, err)
	return rows
}
