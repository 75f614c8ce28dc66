package geo

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/souqhub/marketplace/model"
)

type SQL struct {
	conn *sqlx.DB
}

// GeoRepository serves the static governorate/district reference data.
type GeoRepository interface {
	ListGovernorates(ctx context.Context) ([]model.Governorate, error)
	ListDistricts(ctx context.Context, governorateID uint64) ([]model.District, error)
}

func NewGeoRepository(conn *sqlx.DB) GeoRepository {
	return &SQL{conn: conn}
}

func (s *SQL) ListGovernorates(ctx context.Context) ([]model.Governorate, error) {
	items := make([]model.Governorate, 0)
	err := s.conn.SelectContext(ctx, &items, "SELECT id, name_ar, name_en FROM governorate ORDER BY id")
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SQL) ListDistricts(ctx context.Context, governorateID uint64) ([]model.District, error) {
	items := make([]model.District, 0)
	err := s.conn.SelectContext(ctx, &items, "SELECT id, governorate_id, name_ar, name_en FROM district WHERE governorate_id = ? ORDER BY id", governorateID)
	if err != nil {
		return nil, err
	}
	return items, nil
}
