package meta

import (
	"context"

	metaerrors "github.com/nrk16p/api-payslip-v2/internal/meta/errors"

	"go.uber.org/zap"
)

//go:generate mockgen -source=meta_service.go -destination=mock/meta_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context) ([]MetaResponse, error)
	Upsert(ctx context.Context, req UpsertMetaRequest) (MetaStatusResponse, error)
	Delete(ctx context.Context, req DeleteMetaRequest) (MetaStatusResponse, error)
}

type service struct {
	repo   Repository
	cache  *Cache
	logger *zap.Logger
}

func NewService(repo Repository, cache *Cache, logger ...*zap.Logger) Service {
	l := zap.L().Named("meta.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("meta.service")
	}
	return &service{repo: repo, cache: cache, logger: l}
}

func (s *service) List(ctx context.Context) ([]MetaResponse, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]MetaResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, MetaResponse{
			MetaID:    row.MetaID,
			ItemName:  row.ItemName,
			ItemGroup: row.ItemGroup,
			Remark:    row.Remark,
			UpdatedAt: row.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
		})
	}
	return resp, nil
}

func (s *service) Upsert(ctx context.Context, req UpsertMetaRequest) (MetaStatusResponse, error) {
	if !ValidGroup(req.ItemGroup) {
		return MetaStatusResponse{}, metaerrors.ErrInvalidGroup
	}

	if err := s.repo.Upsert(ctx, req.ItemName, req.ItemGroup, req.Remark); err != nil {
		s.logger.Error("upsert salary item meta failed",
			zap.String("item_name", req.ItemName),
			zap.Error(err),
		)
		return MetaStatusResponse{}, err
	}

	// Invalidate synchronously so the next read never sees the old group.
	s.cache.Invalidate()

	return MetaStatusResponse{
		Status:    "updated",
		ItemName:  req.ItemName,
		ItemGroup: req.ItemGroup,
	}, nil
}

func (s *service) Delete(ctx context.Context, req DeleteMetaRequest) (MetaStatusResponse, error) {
	affected, err := s.repo.DeleteByName(ctx, req.ItemName)
	if err != nil {
		return MetaStatusResponse{}, err
	}
	if affected == 0 {
		// Nothing changed, so the cached whitelist is still exact.
		return MetaStatusResponse{}, metaerrors.ErrMetaNotFound
	}

	s.cache.Invalidate()

	return MetaStatusResponse{
		Status:   "deleted",
		ItemName: req.ItemName,
	}, nil
}
