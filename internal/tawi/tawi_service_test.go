package tawi_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/nrk16p/api-payslip-v2/internal/employee"
	"github.com/nrk16p/api-payslip-v2/internal/tawi"
	tawierrors "github.com/nrk16p/api-payslip-v2/internal/tawi/errors"

	"github.com/stretchr/testify/assert"
)

type fakeTawiRepo struct {
	findFn   func(ctx context.Context, year string, employeeID uint) (*tawi.Salary50Tawi, error)
	upsertFn func(ctx context.Context, year string, employeeID uint, urlPDF string) error
}

func (f *fakeTawiRepo) WithTx(tx *sql.Tx) tawi.Repository { return f }

func (f *fakeTawiRepo) FindByYearAndEmployee(ctx context.Context, year string, employeeID uint) (*tawi.Salary50Tawi, error) {
	if f.findFn != nil {
		return f.findFn(ctx, year, employeeID)
	}
	return nil, nil
}

func (f *fakeTawiRepo) Upsert(ctx context.Context, year string, employeeID uint, urlPDF string) error {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, year, employeeID, urlPDF)
	}
	return nil
}

type fakeEmployeeRepo struct {
	findByCodeFn func(ctx context.Context, empCode string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepo) Upsert(ctx context.Context, empCode, fullName, statusName string) (uint, error) {
	return 0, nil
}

func (f *fakeEmployeeRepo) FindByCode(ctx context.Context, empCode string) (*employee.Employee, error) {
	if f.findByCodeFn != nil {
		return f.findByCodeFn(ctx, empCode)
	}
	return nil, nil
}

func (f *fakeEmployeeRepo) ListCodeMap(ctx context.Context) (map[string]uint, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) FindOptions(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func knownEmployee() *employee.Employee {
	return &employee.Employee{
		EmployeeID: 42,
		EmpCode:    "E001",
		FullName:   "สมชาย ใจดี",
		StatusName: employee.DefaultStatus,
	}
}

func TestTawiService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown employee is empty", func(t *testing.T) {
		svc := tawi.NewService(&fakeTawiRepo{}, &fakeEmployeeRepo{})

		resp, err := svc.Get(ctx, "2568", "E999")
		assert.NoError(t, err)
		assert.Empty(t, resp)
	})

	t.Run("no record is empty", func(t *testing.T) {
		employees := &fakeEmployeeRepo{findByCodeFn: func(ctx context.Context, empCode string) (*employee.Employee, error) {
			return knownEmployee(), nil
		}}
		svc := tawi.NewService(&fakeTawiRepo{}, employees)

		resp, err := svc.Get(ctx, "2568", "E001")
		assert.NoError(t, err)
		assert.Empty(t, resp)
	})

	t.Run("record found", func(t *testing.T) {
		employees := &fakeEmployeeRepo{findByCodeFn: func(ctx context.Context, empCode string) (*employee.Employee, error) {
			return knownEmployee(), nil
		}}
		repo := &fakeTawiRepo{findFn: func(ctx context.Context, year string, employeeID uint) (*tawi.Salary50Tawi, error) {
			assert.Equal(t, uint(42), employeeID)
			return &tawi.Salary50Tawi{Year: year, EmployeeID: employeeID, URLPDF: "https://files.example/50tawi/E001.pdf"}, nil
		}}
		svc := tawi.NewService(repo, employees)

		resp, err := svc.Get(ctx, "2568", "E001")
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "2568", resp[0].Sheet)
		assert.Equal(t, "https://files.example/50tawi/E001.pdf", resp[0].URLPDF)
		assert.Equal(t, "E001", resp[0].EmpCode)
	})
}

func TestTawiService_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown employee is 404", func(t *testing.T) {
		svc := tawi.NewService(&fakeTawiRepo{}, &fakeEmployeeRepo{})

		_, err := svc.Upsert(ctx, tawi.UpsertTawiRequest{
			Year:    "2568",
			EmpCode: "E999",
			URLPDF:  "https://files.example/50tawi/E999.pdf",
		})
		assert.ErrorIs(t, err, tawierrors.ErrEmployeeNotFound)
	})

	t.Run("existing employee gets the record", func(t *testing.T) {
		employees := &fakeEmployeeRepo{findByCodeFn: func(ctx context.Context, empCode string) (*employee.Employee, error) {
			return knownEmployee(), nil
		}}

		var savedURL string
		repo := &fakeTawiRepo{upsertFn: func(ctx context.Context, year string, employeeID uint, urlPDF string) error {
			assert.Equal(t, "2568", year)
			assert.Equal(t, uint(42), employeeID)
			savedURL = urlPDF
			return nil
		}}
		svc := tawi.NewService(repo, employees)

		resp, err := svc.Upsert(ctx, tawi.UpsertTawiRequest{
			Year:    "2568",
			EmpCode: "E001",
			URLPDF:  "https://files.example/50tawi/E001.pdf",
		})
		assert.NoError(t, err)
		assert.Equal(t, "updated", resp.Status)
		assert.Equal(t, "https://files.example/50tawi/E001.pdf", savedURL)
	})
}
