package app

import (
	"os"

	"github.com/nrk16p/api-payslip-v2/internal/employee"
	"github.com/nrk16p/api-payslip-v2/internal/meta"
	"github.com/nrk16p/api-payslip-v2/internal/salarydata"
	"github.com/nrk16p/api-payslip-v2/internal/shared/connection"
	"github.com/nrk16p/api-payslip-v2/internal/sheet"
	"github.com/nrk16p/api-payslip-v2/internal/tawi"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// The outbox table is written with raw SQL, so it is created the same way.
const createOutboxTable = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id             UUID PRIMARY KEY,
	request_id     TEXT,
	aggregate_type TEXT NOT NULL,
	aggregate_id   TEXT NOT NULL,
	event_type     TEXT NOT NULL,
	topic          TEXT NOT NULL,
	payload        JSONB NOT NULL,
	status         TEXT NOT NULL DEFAULT 'pending',
	retry_count    INT NOT NULL DEFAULT 0,
	error_message  TEXT,
	next_retry_at  TIMESTAMPTZ,
	processed_at   TIMESTAMPTZ,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	if err := migrate(gormDB); err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("infrastructure connections established")

	return registerModules(router, sqlDB, gormDB, redisClient)
}

func migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&employee.Employee{},
		&sheet.SalarySheet{},
		&meta.SalaryItemMeta{},
		&salarydata.SalaryItem{},
		&tawi.Salary50Tawi{},
	); err != nil {
		return err
	}
	return gormDB.Exec(createOutboxTable).Error
}
