package geo

import (
	"context"

	"github.com/souqhub/marketplace/constant"
	"github.com/souqhub/marketplace/model"
	georepo "github.com/souqhub/marketplace/repository/geo"
	"github.com/souqhub/marketplace/utils/errors"
	"github.com/souqhub/marketplace/utils/logger"
	"go.uber.org/zap"
)

type GeoApp interface {
	ListGovernorates(ctx context.Context) ([]model.Governorate, error)
	ListDistricts(ctx context.Context, governorateID uint64) ([]model.District, error)
}

type geoAppImpl struct {
	geoRepo georepo.GeoRepository
}

func NewGeoApp(geoRepo georepo.GeoRepository) GeoApp {
	return &geoAppImpl{geoRepo: geoRepo}
}

func (s *geoAppImpl) ListGovernorates(ctx context.Context) ([]model.Governorate, error) {
	items, err := s.geoRepo.ListGovernorates(ctx)
	if err != nil {
		logger.Error("[ListGovernorates] err geoRepo.ListGovernorates", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}

func (s *geoAppImpl) ListDistricts(ctx context.Context, governorateID uint64) ([]model.District, error) {
	items, err := s.geoRepo.ListDistricts(ctx, governorateID)
	if err != nil {
		logger.Error("[ListDistricts] err geoRepo.ListDistricts", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}
