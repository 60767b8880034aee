package salarydata

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_data_repo.go -destination=mock/salary_data_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindBySheetAndEmployee(ctx context.Context, sheetID, employeeID uint) ([]SalaryItem, error)
	DeleteBySheetAndEmployee(ctx context.Context, sheetID, employeeID uint) error
	InsertBatch(ctx context.Context, items []SalaryItem) error
	FindExportRows(ctx context.Context, sheetID uint) ([]ExportRow, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) FindBySheetAndEmployee(ctx context.Context, sheetID, employeeID uint) ([]SalaryItem, error) {
	var items []SalaryItem
	err := r.db.WithContext(ctx).
		Where("sheet_id = ?", sheetID).
		Where("employee_id = ?", employeeID).
		Find(&items).Error
	return items, err
}

func (r *repository) DeleteBySheetAndEmployee(ctx context.Context, sheetID, employeeID uint) error {
	query := `DELETE FROM salary_items WHERE sheet_id = $1 AND employee_id = $2`

	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, query, sheetID, employeeID)
		return err
	}
	return r.db.WithContext(ctx).Exec(query, sheetID, employeeID).Error
}

// InsertBatch writes one multi-row INSERT per call; the importer flushes in
// fixed-size batches to bound statement size.
func (r *repository) InsertBatch(ctx context.Context, items []SalaryItem) error {
	if len(items) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(items))
	args := make([]any, 0, len(items)*5)
	for i, item := range items {
		base := i * 5
		placeholders = append(placeholders, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5,
		))
		args = append(args, item.SheetID, item.EmployeeID, item.ItemGroup, item.ItemName, item.Amount)
	}

	query := fmt.Sprintf(
		"INSERT INTO salary_items (sheet_id, employee_id, item_group, item_name, amount) VALUES %s",
		strings.Join(placeholders, ", "),
	)

	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, query, args...)
		return err
	}
	return r.db.WithContext(ctx).Exec(query, args...).Error
}

func (r *repository) FindExportRows(ctx context.Context, sheetID uint) ([]ExportRow, error) {
	query := `
SELECT
	employees.emp_code,
	employees.full_name,
	employees.status_name,
	salary_items.item_group,
	salary_items.item_name,
	salary_items.amount
FROM salary_items
JOIN employees ON employees.employee_id = salary_items.employee_id
WHERE salary_items.sheet_id = ?
ORDER BY employees.emp_code ASC, salary_items.item_name ASC
`

	var rows []ExportRow
	err := r.db.WithContext(ctx).Raw(query, sheetID).Scan(&rows).Error
	return rows, err
}
