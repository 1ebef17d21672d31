package search

import (
	"math"

	"gorm.io/gorm"
)

// One degree of latitude spans roughly 111 km everywhere on the globe.
const kmPerDegreeLat = 111.0

// BoundingBox is a rectangular coordinate range approximating "within R km
// of a point". It is deliberately a superset of the true circle: the corners
// admit points slightly farther than R. Callers tolerate that imprecision in
// exchange for plain BETWEEN predicates with no geospatial extension.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// BoundingBoxAround computes the rectangle of side 2*radiusKm centered on
// (lat, lng). The longitude delta is widened by 1/cos(lat) to correct for
// meridian convergence away from the equator. A radius <= 0 yields a
// degenerate, near-empty box rather than an error.
func BoundingBoxAround(lat, lng, radiusKm float64) BoundingBox {
	degLat := radiusKm / kmPerDegreeLat
	degLng := radiusKm / (kmPerDegreeLat * math.Cos(lat*math.Pi/180))
	return BoundingBox{
		MinLat: lat - degLat,
		MaxLat: lat + degLat,
		MinLng: lng - degLng,
		MaxLng: lng + degLng,
	}
}

// Contains reports whether a stored position falls inside the rectangle.
func (b BoundingBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// ApplyBoundingBox narrows an establishment query to positions inside the
// rectangle. Rows without stored coordinates never match.
func ApplyBoundingBox(q *gorm.DB, b BoundingBox) *gorm.DB {
	return q.Where(
		"(latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?)",
		b.MinLat, b.MaxLat, b.MinLng, b.MaxLng,
	)
}
