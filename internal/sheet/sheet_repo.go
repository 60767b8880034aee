package sheet

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=sheet_repo.go -destination=mock/sheet_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByMonthYear(ctx context.Context, monthYear string) (*SalarySheet, error)
	FindByID(ctx context.Context, sheetID uint) (*SalarySheet, error)
	FindOrCreate(ctx context.Context, monthYear string) (uint, error)
	Update(ctx context.Context, s *SalarySheet) error
	List(ctx context.Context, sheetID *uint, monthYear string) ([]SalarySheet, error)
	ListMonthYears(ctx context.Context) ([]string, error)
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

// FindByMonthYear returns (nil, nil) when the period has never been written.
func (r *repository) FindByMonthYear(ctx context.Context, monthYear string) (*SalarySheet, error) {
	var s SalarySheet
	err := r.db.WithContext(ctx).
		Where("month_year = ?", monthYear).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindByID(ctx context.Context, sheetID uint) (*SalarySheet, error) {
	var s SalarySheet
	err := r.db.WithContext(ctx).
		Where("sheet_id = ?", sheetID).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

const findOrCreateQuery = `
INSERT INTO salary_sheets (month_year, created_at)
VALUES ($1, NOW())
ON CONFLICT (month_year) DO UPDATE SET month_year = EXCLUDED.month_year
RETURNING sheet_id
`

// FindOrCreate resolves the period lazily on first upload/upsert. The no-op
// conflict update makes RETURNING yield the id in both branches.
func (r *repository) FindOrCreate(ctx context.Context, monthYear string) (uint, error) {
	var sheetID uint

	if r.tx != nil {
		err := r.tx.QueryRowContext(ctx, findOrCreateQuery, monthYear).Scan(&sheetID)
		return sheetID, err
	}

	err := r.db.WithContext(ctx).Raw(findOrCreateQuery, monthYear).Scan(&sheetID).Error
	return sheetID, err
}

func (r *repository) Update(ctx context.Context, s *SalarySheet) error {
	return r.db.WithContext(ctx).
		Model(&SalarySheet{}).
		Where("sheet_id = ?", s.SheetID).
		Updates(map[string]any{
			"api_active_from": s.APIActiveFrom,
			"api_active_to":   s.APIActiveTo,
			"api_is_active":   s.APIIsActive,
		}).Error
}

func (r *repository) List(ctx context.Context, sheetID *uint, monthYear string) ([]SalarySheet, error) {
	q := r.db.WithContext(ctx).Model(&SalarySheet{})

	if sheetID != nil {
		q = q.Where("sheet_id = ?", *sheetID)
	} else if monthYear != "" {
		q = q.Where("month_year = ?", monthYear)
	}

	var sheets []SalarySheet
	err := q.Order("created_at DESC").Find(&sheets).Error
	return sheets, err
}

func (r *repository) ListMonthYears(ctx context.Context) ([]string, error) {
	var monthYears []string
	err := r.db.WithContext(ctx).
		Model(&SalarySheet{}).
		Distinct("month_year").
		Order("month_year DESC").
		Pluck("month_year", &monthYears).Error
	return monthYears, err
}
