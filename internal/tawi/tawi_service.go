package tawi

import (
	"context"

	"github.com/nrk16p/api-payslip-v2/internal/employee"
	tawierrors "github.com/nrk16p/api-payslip-v2/internal/tawi/errors"

	"go.uber.org/zap"
)

//go:generate mockgen -source=tawi_service.go -destination=mock/tawi_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context, year, empCode string) ([]TawiRecordResponse, error)
	Upsert(ctx context.Context, req UpsertTawiRequest) (UpsertTawiResponse, error)
}

type service struct {
	repo      Repository
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(repo Repository, employees employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("tawi.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("tawi.service")
	}
	return &service{repo: repo, employees: employees, logger: l}
}

func (s *service) Get(ctx context.Context, year, empCode string) ([]TawiRecordResponse, error) {
	emp, err := s.employees.FindByCode(ctx, empCode)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return []TawiRecordResponse{}, nil
	}

	record, err := s.repo.FindByYearAndEmployee(ctx, year, emp.EmployeeID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return []TawiRecordResponse{}, nil
	}

	return []TawiRecordResponse{{
		Sheet:      record.Year,
		URLPDF:     record.URLPDF,
		FullName:   emp.FullName,
		EmpCode:    emp.EmpCode,
		StatusName: emp.StatusName,
	}}, nil
}

func (s *service) Upsert(ctx context.Context, req UpsertTawiRequest) (UpsertTawiResponse, error) {
	emp, err := s.employees.FindByCode(ctx, req.EmpCode)
	if err != nil {
		return UpsertTawiResponse{}, err
	}
	if emp == nil {
		return UpsertTawiResponse{}, tawierrors.ErrEmployeeNotFound
	}

	if err := s.repo.Upsert(ctx, req.Year, emp.EmployeeID, req.URLPDF); err != nil {
		s.logger.Error("upsert 50 tawi record failed",
			zap.String("year", req.Year),
			zap.String("emp_code", req.EmpCode),
			zap.Error(err),
		)
		return UpsertTawiResponse{}, err
	}

	return UpsertTawiResponse{Status: "updated"}, nil
}
