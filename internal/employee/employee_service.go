package employee

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// OptionsCacheKey is the redis key for the distinct employee picker; writers
// that touch employees (import, salary upsert) delete it after commit.
const OptionsCacheKey = "salary:employees:options"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	GetOptions(ctx context.Context) (EmployeeOptionsResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) GetOptions(ctx context.Context) (EmployeeOptionsResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, OptionsCacheKey).Result(); err == nil {
			var resp EmployeeOptionsResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Singleflight so a cold cache loads the list once under load.
	v, err, _ := s.sf.Do(OptionsCacheKey, func() (interface{}, error) {
		emps, err := s.repo.FindOptions(ctx)
		if err != nil {
			s.logger.Error("list employee options failed", zap.Error(err))
			return nil, err
		}

		options := make([]EmployeeOption, 0, len(emps))
		for _, e := range emps {
			options = append(options, EmployeeOption{
				EmpCode:  e.EmpCode,
				FullName: e.FullName,
			})
		}
		resp := EmployeeOptionsResponse{Employees: options}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, OptionsCacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return EmployeeOptionsResponse{}, err
	}

	return v.(EmployeeOptionsResponse), nil
}
