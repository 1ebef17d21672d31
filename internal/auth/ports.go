package auth

import "context"

// Geocoder resolves the establishment address captured at registration.
// Failures are tolerated; the position stays unset.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (lat, lng float64, err error)
}

type ServiceAPI interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, email, senha string) (*User, error)
	GetByID(ctx context.Context, id int) (*User, error)
}
