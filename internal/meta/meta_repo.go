package meta

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=meta_repo.go -destination=mock/meta_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	List(ctx context.Context) ([]SalaryItemMeta, error)
	LoadMap(ctx context.Context) (map[string]string, error)
	Upsert(ctx context.Context, itemName, itemGroup, remark string) error
	DeleteByName(ctx context.Context, itemName string) (int64, error)
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

func (r *repository) List(ctx context.Context) ([]SalaryItemMeta, error) {
	var rows []SalaryItemMeta
	err := r.db.WithContext(ctx).
		Order("item_name ASC").
		Find(&rows).Error
	return rows, err
}

// LoadMap reads the whole whitelist as item_name -> item_group.
func (r *repository) LoadMap(ctx context.Context) (map[string]string, error) {
	var rows []SalaryItemMeta
	err := r.db.WithContext(ctx).
		Select("item_name", "item_group").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	m := make(map[string]string, len(rows))
	for _, row := range rows {
		m[row.ItemName] = row.ItemGroup
	}
	return m, nil
}

const upsertMetaQuery = `
INSERT INTO salary_item_meta (item_name, item_group, remark, updated_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (item_name) DO UPDATE
SET item_group = EXCLUDED.item_group, remark = EXCLUDED.remark, updated_at = NOW()
`

func (r *repository) Upsert(ctx context.Context, itemName, itemGroup, remark string) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, upsertMetaQuery, itemName, itemGroup, remark)
		return err
	}
	return r.db.WithContext(ctx).Exec(upsertMetaQuery, itemName, itemGroup, remark).Error
}

func (r *repository) DeleteByName(ctx context.Context, itemName string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("item_name = ?", itemName).
		Delete(&SalaryItemMeta{})
	return res.RowsAffected, res.Error
}
