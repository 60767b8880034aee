package employee

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, empCode, fullName, statusName string) (uint, error)
	FindByCode(ctx context.Context, empCode string) (*Employee, error)
	ListCodeMap(ctx context.Context) (map[string]uint, error)
	FindOptions(ctx context.Context) ([]Employee, error)
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

const upsertQuery = `
INSERT INTO employees (emp_code, full_name, status_name, created_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (emp_code) DO UPDATE
SET full_name = EXCLUDED.full_name, status_name = EXCLUDED.status_name
RETURNING employee_id
`

// Upsert inserts or updates by emp_code and returns the row id, atomically so
// concurrent imports never create a second row for the same code.
func (r *repository) Upsert(ctx context.Context, empCode, fullName, statusName string) (uint, error) {
	var employeeID uint

	if r.tx != nil {
		err := r.tx.QueryRowContext(ctx, upsertQuery, empCode, fullName, statusName).Scan(&employeeID)
		return employeeID, err
	}

	err := r.db.WithContext(ctx).Raw(upsertQuery, empCode, fullName, statusName).Scan(&employeeID).Error
	return employeeID, err
}

// FindByCode returns (nil, nil) when no employee carries the code; data reads
// treat a missing employee as an empty result, not an error.
func (r *repository) FindByCode(ctx context.Context, empCode string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).
		Where("emp_code = ?", empCode).
		First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *repository) ListCodeMap(ctx context.Context) (map[string]uint, error) {
	var emps []Employee
	err := r.db.WithContext(ctx).
		Select("employee_id", "emp_code").
		Find(&emps).Error
	if err != nil {
		return nil, err
	}

	codes := make(map[string]uint, len(emps))
	for _, e := range emps {
		codes[e.EmpCode] = e.EmployeeID
	}
	return codes, nil
}

func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var emps []Employee
	err := r.db.WithContext(ctx).
		Distinct("emp_code", "full_name").
		Where("full_name IS NOT NULL").
		Where("full_name <> ''").
		Order("emp_code ASC").
		Find(&emps).Error
	return emps, err
}
