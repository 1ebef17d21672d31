package search

import (
	"context"
	"time"

	"mapa-saude-api/internal/establishment"

	"gorm.io/gorm"
)

const (
	// Hard ceiling on returned rows, not a page size. No pagination token
	// exists in this design.
	maxResults = 50

	// Smaller cap for the dedicated nearby endpoint.
	maxNearbyResults = 20

	// Radius applied when coordinates come without an explicit raio.
	DefaultRadiusKm = 10

	// A store that does not answer within this window fails the search
	// instead of hanging the request.
	queryTimeout = 5 * time.Second
)

type ServiceAPI interface {
	Search(ctx context.Context, f Filters) ([]establishment.Establishment, error)
	SearchNearby(ctx context.Context, lat, lng, raioKm float64) ([]establishment.Establishment, error)
}

type Service struct {
	DB *gorm.DB
}

// Search runs one bounded, deterministic query: base predicate (active only,
// non-negotiable), filter facets, optional proximity rectangle, ordered by
// id, capped at maxResults. Read-only.
func (s *Service) Search(ctx context.Context, f Filters) ([]establishment.Establishment, error) {
	return s.run(ctx, f, maxResults)
}

// SearchNearby serves the dedicated "around me" endpoint: proximity only, no
// other facets, tighter cap.
func (s *Service) SearchNearby(ctx context.Context, lat, lng, raioKm float64) ([]establishment.Establishment, error) {
	f := Filters{Lat: &lat, Lng: &lng, RaioKm: raioKm}
	return s.run(ctx, f, maxNearbyResults)
}

func (s *Service) run(ctx context.Context, f Filters, limit int) ([]establishment.Establishment, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	q := s.DB.WithContext(ctx).
		Model(&establishment.Establishment{}).
		Where("ativo = ?", true)

	q = ApplyFilters(q, f)

	if f.HasCoordinates() {
		// RaioKm is set at the API boundary (explicit value or the 10 km
		// default). An explicit raio <= 0 is honored as a degenerate box.
		q = ApplyBoundingBox(q, BoundingBoxAround(*f.Lat, *f.Lng, f.RaioKm))
	}

	var results []establishment.Establishment
	if err := q.Order("id ASC").Limit(limit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
