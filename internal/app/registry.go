package app

import (
	"database/sql"
	"net/http"

	"github.com/nrk16p/api-payslip-v2/internal/employee"
	"github.com/nrk16p/api-payslip-v2/internal/importer"
	"github.com/nrk16p/api-payslip-v2/internal/messaging/kafka"
	"github.com/nrk16p/api-payslip-v2/internal/meta"
	"github.com/nrk16p/api-payslip-v2/internal/salarydata"
	"github.com/nrk16p/api-payslip-v2/internal/sheet"
	"github.com/nrk16p/api-payslip-v2/internal/tawi"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	sheetRepo := sheet.NewRepository(gormDB)
	metaRepo := meta.NewRepository(gormDB)
	salaryDataRepo := salarydata.NewRepository(gormDB)
	tawiRepo := tawi.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	metaCache := meta.NewCache(metaRepo)

	// --- Services ---
	employeeService := employee.NewService(employeeRepo, rdb)
	sheetService := sheet.NewService(sheetRepo)
	metaService := meta.NewService(metaRepo, metaCache)
	salaryDataService := salarydata.NewService(
		db, salaryDataRepo, employeeRepo, sheetRepo, metaCache, outboxRepo, rdb,
	)
	importService := importer.NewService(
		db, salaryDataRepo, employeeRepo, sheetRepo, metaRepo, metaCache, outboxRepo, rdb,
	)
	tawiService := tawi.NewService(tawiRepo, employeeRepo)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	sheetHandler := sheet.NewHandler(sheetService)
	metaHandler := meta.NewHandler(metaService)
	salaryDataHandler := salarydata.NewHandlerWithRedis(salaryDataService, rdb)
	importHandler := importer.NewHandlerWithRedis(importService, rdb)
	tawiHandler := tawi.NewHandler(tawiService)

	// --- Routes Registration ---
	api := router.Group("")
	{
		employee.RegisterRoutes(api, employeeHandler)
		sheet.RegisterRoutes(api, sheetHandler)
		meta.RegisterRoutes(api, metaHandler)
		salarydata.RegisterRoutes(api, salaryDataHandler, rdb)
		importer.RegisterRoutes(api, importHandler, rdb)
		tawi.RegisterRoutes(api, tawiHandler)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "OK",
			"timezone": "Asia/Bangkok",
		})
	})

	return nil
}
