package salarydata_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nrk16p/api-payslip-v2/internal/salarydata"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	getFn    func(ctx context.Context, monthYear, empCode string) ([]salarydata.SalaryDataResponse, error)
	upsertFn func(ctx context.Context, req salarydata.UpsertSalaryDataRequest) (salarydata.UpsertStatusResponse, error)
	exportFn func(ctx context.Context, monthYear string) (salarydata.ExportFile, error)
}

func (f *fakeService) Get(ctx context.Context, monthYear, empCode string) ([]salarydata.SalaryDataResponse, error) {
	return f.getFn(ctx, monthYear, empCode)
}

func (f *fakeService) Upsert(ctx context.Context, req salarydata.UpsertSalaryDataRequest) (salarydata.UpsertStatusResponse, error) {
	return f.upsertFn(ctx, req)
}

func (f *fakeService) Export(ctx context.Context, monthYear string) (salarydata.ExportFile, error) {
	return f.exportFn(ctx, monthYear)
}

func TestHandler_Get_RequiresParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := salarydata.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/salary_data/data?month-year=November2568", nil)

	h.Get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "month-year and emp_id required")
}

func TestHandler_GetAndUpsert(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getFn: func(ctx context.Context, monthYear, empCode string) ([]salarydata.SalaryDataResponse, error) {
			assert.Equal(t, "November2568", monthYear)
			assert.Equal(t, "E001", empCode)
			return []salarydata.SalaryDataResponse{}, nil
		},
		upsertFn: func(ctx context.Context, req salarydata.UpsertSalaryDataRequest) (salarydata.UpsertStatusResponse, error) {
			assert.Equal(t, "E001", req.EmpID)
			return salarydata.UpsertStatusResponse{Status: "updated"}, nil
		},
	}
	h := salarydata.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/salary_data/data?month-year=November2568&emp_id=E001", nil)
	h.Get(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"ok\":true")

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	body := `{"month-year":"November2568","emp_id":"E001","datalist":{"earnings":{"เงินเดือน":30000}}}`
	c2.Request = httptest.NewRequest(http.MethodPost, "/salary_data/data", strings.NewReader(body))
	c2.Request.Header.Set("Content-Type", "application/json")
	h.Upsert(c2)
	assert.Equal(t, http.StatusCreated, w2.Code)
	assert.Contains(t, w2.Body.String(), "\"status\":\"updated\"")
}

func TestHandler_Export_DownloadHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		exportFn: func(ctx context.Context, monthYear string) (salarydata.ExportFile, error) {
			return salarydata.ExportFile{
				Filename: "payroll_November2568.xlsx",
				Content:  []byte("workbook-bytes"),
			}, nil
		},
	}
	h := salarydata.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/salary_data/export?month-year=November2568", nil)

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, salarydata.ExportContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="payroll_November2568.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "workbook-bytes", w.Body.String())
}
