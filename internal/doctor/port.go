package doctor

import "context"

// EstablishmentDirectory resolves the active establishment managed by an
// administrator. Implemented by the establishment service; kept as a port so
// this package does not depend on it.
type EstablishmentDirectory interface {
	ActiveIDByAdmin(ctx context.Context, adminID int) (int, error)
}

type ServiceAPI interface {
	SearchDoctors(ctx context.Context, f Filters) ([]Doctor, error)
	GetByID(ctx context.Context, id int) (*Doctor, []int, error)
	CreateForEstablishment(ctx context.Context, estabelecimentoID int, in CreateInput) (*Doctor, error)
	UpdateForEstablishment(ctx context.Context, estabelecimentoID, medicoID int, in UpdateInput) (*Doctor, error)
	DeactivateForEstablishment(ctx context.Context, estabelecimentoID, medicoID int) error
}
