package establishment

import (
	"context"

	"mapa-saude-api/internal/doctor"
)

// Geocoder resolves a free-text address into coordinates. Implemented by the
// geocode client; failures are tolerated, the position simply stays unset.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (lat, lng float64, err error)
}

// Roster lists the active doctors of an establishment, for the detail view.
type Roster interface {
	ListActiveByEstablishment(ctx context.Context, estabelecimentoID int) ([]doctor.Doctor, error)
}

type ServiceAPI interface {
	GetDetail(ctx context.Context, id int) (*Detail, error)
	ActiveIDByAdmin(ctx context.Context, adminID int) (int, error)
	ActiveByAdmin(ctx context.Context, adminID int) (*Establishment, error)
	SaveForAdmin(ctx context.Context, adminID int, tipo string, in SaveInput) (*Establishment, error)
	DeactivateByAdmin(ctx context.Context, adminID int) error
	AddReview(ctx context.Context, estabelecimentoID int, in ReviewInput) error
}
