package sheet

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sheeterrors "github.com/nrk16p/api-payslip-v2/internal/sheet/errors"
	"github.com/nrk16p/api-payslip-v2/internal/shared/apperror"
	"github.com/nrk16p/api-payslip-v2/internal/shared/tz"

	"go.uber.org/zap"
)

//go:generate mockgen -source=sheet_service.go -destination=mock/sheet_service_mock.go -package=mock
type Service interface {
	UpdateWindow(ctx context.Context, req UpdateWindowRequest) (WindowResponse, error)
	ListWindows(ctx context.Context, sheetID *uint, monthYear string) ([]WindowStatusResponse, error)
	ListMonthYears(ctx context.Context) (MonthYearsResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("sheet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("sheet.service")
	}
	return &service{repo: repo, logger: l}
}

// UpdateWindow applies partial-update semantics: the flag and the two bounds
// change only when the request carries them. Incoming timestamps are Bangkok
// civil time and are stored as UTC instants.
func (s *service) UpdateWindow(ctx context.Context, req UpdateWindowRequest) (WindowResponse, error) {
	sh, err := s.repo.FindByID(ctx, req.SheetID)
	if err != nil {
		return WindowResponse{}, err
	}
	if sh == nil {
		return WindowResponse{}, sheeterrors.ErrSheetNotFound
	}

	if req.APIIsActive != nil {
		sh.APIIsActive = *req.APIIsActive
	}

	if req.APIActiveFrom != nil {
		from, err := tz.ParseBangkok(*req.APIActiveFrom)
		if err != nil {
			return WindowResponse{}, apperror.New(
				apperror.CodeInvalidInput,
				"invalid api_active_from",
				http.StatusBadRequest,
			).WithDetails(fmt.Sprintf("expected %s: %v", tz.CivilLayout, err))
		}
		sh.APIActiveFrom = &from
	}

	if req.APIActiveTo != nil {
		to, err := tz.ParseBangkok(*req.APIActiveTo)
		if err != nil {
			return WindowResponse{}, apperror.New(
				apperror.CodeInvalidInput,
				"invalid api_active_to",
				http.StatusBadRequest,
			).WithDetails(fmt.Sprintf("expected %s: %v", tz.CivilLayout, err))
		}
		sh.APIActiveTo = &to
	}

	if err := s.repo.Update(ctx, sh); err != nil {
		s.logger.Error("update api window failed",
			zap.Uint("sheet_id", req.SheetID),
			zap.Error(err),
		)
		return WindowResponse{}, err
	}

	s.logger.Info("api window updated",
		zap.Uint("sheet_id", sh.SheetID),
		zap.Bool("api_is_active", sh.APIIsActive),
	)

	return WindowResponse{
		SheetID:          sh.SheetID,
		APIIsActive:      sh.APIIsActive,
		APIActiveFromBKK: formatBangkok(sh.APIActiveFrom),
		APIActiveToBKK:   formatBangkok(sh.APIActiveTo),
	}, nil
}

func (s *service) ListWindows(ctx context.Context, sheetID *uint, monthYear string) ([]WindowStatusResponse, error) {
	sheets, err := s.repo.List(ctx, sheetID, monthYear)
	if err != nil {
		return nil, err
	}

	now := tz.NowUTC()
	resp := make([]WindowStatusResponse, 0, len(sheets))
	for _, sh := range sheets {
		resp = append(resp, WindowStatusResponse{
			SheetID:          sh.SheetID,
			MonthYear:        sh.MonthYear,
			APIIsActive:      sh.APIIsActive,
			APIActiveFromBKK: formatBangkok(sh.APIActiveFrom),
			APIActiveToBKK:   formatBangkok(sh.APIActiveTo),
			IsActiveNow:      sh.APIIsActive && sh.WindowOpenAt(now),
		})
	}
	return resp, nil
}

func (s *service) ListMonthYears(ctx context.Context) (MonthYearsResponse, error) {
	monthYears, err := s.repo.ListMonthYears(ctx)
	if err != nil {
		return MonthYearsResponse{}, err
	}
	if monthYears == nil {
		monthYears = []string{}
	}
	return MonthYearsResponse{MonthYears: monthYears}, nil
}

func formatBangkok(t *time.Time) *string {
	local := tz.ToBangkok(t)
	if local == nil {
		return nil
	}
	v := local.Format(time.RFC3339)
	return &v
}
