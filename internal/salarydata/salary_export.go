package salarydata

import (
	"context"
	"fmt"
	"sort"

	"github.com/nrk16p/api-payslip-v2/internal/meta"
	salarydataerrors "github.com/nrk16p/api-payslip-v2/internal/salarydata/errors"
	sheeterrors "github.com/nrk16p/api-payslip-v2/internal/sheet/errors"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const ExportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportFile struct {
	Filename string
	Content  []byte
}

const (
	colEmpCode  = "รหัสพนักงาน"
	colFullName = "ชื่อ - นามสกุล"
	colStatus   = "สถานะ"

	colTotalEarnings   = "Total Earnings"
	colTotalDeductions = "Total Deductions"
	colNetPay          = "Net Pay"
)

// Export pivots the period's line items into a wide sheet: one row per
// employee, one column per distinct item name (missing combinations fill with
// zero), followed by earnings/deductions subtotals and net pay. A period with
// no data is an error, not an empty file.
func (s *service) Export(ctx context.Context, monthYear string) (ExportFile, error) {
	sh, err := s.sheets.FindByMonthYear(ctx, monthYear)
	if err != nil {
		return ExportFile{}, err
	}
	if sh == nil {
		return ExportFile{}, sheeterrors.ErrSheetNotFound
	}

	rows, err := s.repo.FindExportRows(ctx, sh.SheetID)
	if err != nil {
		return ExportFile{}, err
	}
	if len(rows) == 0 {
		return ExportFile{}, salarydataerrors.ErrNoSalaryData
	}

	pivot := buildPivot(rows)

	content, err := renderWorkbook(pivot)
	if err != nil {
		s.logger.Error("render export workbook failed",
			zap.String("month_year", monthYear),
			zap.Error(err),
		)
		return ExportFile{}, err
	}

	return ExportFile{
		Filename: fmt.Sprintf("payroll_%s.xlsx", monthYear),
		Content:  content,
	}, nil
}

type pivotTable struct {
	headers []string
	rows    [][]any
}

type pivotEmployee struct {
	empCode  string
	fullName string
	status   string
	amounts  map[string]decimal.Decimal
}

func buildPivot(rows []ExportRow) pivotTable {
	itemSet := map[string]bool{}
	earningsCols := map[string]bool{}
	deductionsCols := map[string]bool{}

	byEmployee := map[string]*pivotEmployee{}
	empOrder := []string{}

	for _, row := range rows {
		emp, ok := byEmployee[row.EmpCode]
		if !ok {
			emp = &pivotEmployee{
				empCode:  row.EmpCode,
				fullName: row.FullName,
				status:   row.StatusName,
				amounts:  map[string]decimal.Decimal{},
			}
			byEmployee[row.EmpCode] = emp
			empOrder = append(empOrder, row.EmpCode)
		}

		itemSet[row.ItemName] = true
		switch row.ItemGroup {
		case meta.GroupEarnings:
			earningsCols[row.ItemName] = true
		case meta.GroupDeductions:
			deductionsCols[row.ItemName] = true
		}

		// Sum on collision, matching aggregation semantics of the pivot.
		emp.amounts[row.ItemName] = emp.amounts[row.ItemName].Add(row.Amount)
	}

	itemCols := make([]string, 0, len(itemSet))
	for name := range itemSet {
		itemCols = append(itemCols, name)
	}
	sort.Strings(itemCols)
	sort.Strings(empOrder)

	headers := append([]string{colEmpCode, colFullName, colStatus}, itemCols...)
	headers = append(headers, colTotalEarnings, colTotalDeductions, colNetPay)

	dataRows := make([][]any, 0, len(empOrder))
	for _, code := range empOrder {
		emp := byEmployee[code]

		totalEarnings := decimal.Zero
		totalDeductions := decimal.Zero

		row := make([]any, 0, len(headers))
		row = append(row, emp.empCode, emp.fullName, emp.status)
		for _, item := range itemCols {
			amount := emp.amounts[item]
			row = append(row, amount.InexactFloat64())

			if earningsCols[item] {
				totalEarnings = totalEarnings.Add(amount)
			}
			if deductionsCols[item] {
				totalDeductions = totalDeductions.Add(amount)
			}
		}

		netPay := totalEarnings.Sub(totalDeductions)
		row = append(row,
			totalEarnings.InexactFloat64(),
			totalDeductions.InexactFloat64(),
			netPay.InexactFloat64(),
		)
		dataRows = append(dataRows, row)
	}

	return pivotTable{headers: headers, rows: dataRows}
}

func renderWorkbook(pivot pivotTable) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Payroll"
	f.SetSheetName("Sheet1", sheetName)

	header := make([]any, len(pivot.headers))
	for i, h := range pivot.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, err
	}

	for i, row := range pivot.rows {
		cell := fmt.Sprintf("A%d", i+2)
		rowCopy := row
		if err := f.SetSheetRow(sheetName, cell, &rowCopy); err != nil {
			return nil, err
		}
	}

	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}
	endCol, err := excelize.ColumnNumberToName(len(pivot.headers))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, "A1", endCol+"1", boldStyle); err != nil {
		return nil, err
	}

	// Column widths follow the longest rendered value in each column.
	for i, h := range pivot.headers {
		maxLen := len([]rune(h))
		for _, row := range pivot.rows {
			rendered := fmt.Sprintf("%v", row[i])
			if l := len([]rune(rendered)); l > maxLen {
				maxLen = l
			}
		}

		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, colName, colName, float64(maxLen+5)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
