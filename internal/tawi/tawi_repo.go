package tawi

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=tawi_repo.go -destination=mock/tawi_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByYearAndEmployee(ctx context.Context, year string, employeeID uint) (*Salary50Tawi, error)
	Upsert(ctx context.Context, year string, employeeID uint, urlPDF string) error
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

func (r *repository) FindByYearAndEmployee(ctx context.Context, year string, employeeID uint) (*Salary50Tawi, error) {
	var record Salary50Tawi
	err := r.db.WithContext(ctx).
		Where("year = ?", year).
		Where("employee_id = ?", employeeID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

const upsertTawiQuery = `
INSERT INTO salary_50tawi (year, employee_id, url_pdf, created_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (year, employee_id) DO UPDATE SET url_pdf = EXCLUDED.url_pdf
`

func (r *repository) Upsert(ctx context.Context, year string, employeeID uint, urlPDF string) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, upsertTawiQuery, year, employeeID, urlPDF)
		return err
	}
	return r.db.WithContext(ctx).Exec(upsertTawiQuery, year, employeeID, urlPDF).Error
}
