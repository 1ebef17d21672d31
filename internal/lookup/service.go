package lookup

import (
	"context"
	"sort"

	"gorm.io/gorm"
)

type ServiceAPI interface {
	DistinctSpecialties(ctx context.Context) ([]string, error)
	DistinctInsurances(ctx context.Context) ([]string, error)
	DistinctTypes(ctx context.Context) ([]string, error)
}

// Service materializes the distinct value sets that populate the filter UI
// controls. Cardinality is small (tens of values), so no pagination.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// DistinctSpecialties flattens the specialty sets of all active doctors,
// de-duplicated and sorted.
func (ls *Service) DistinctSpecialties(ctx context.Context) ([]string, error) {
	var out []string
	err := ls.DB.WithContext(ctx).
		Raw(`SELECT DISTINCT unnest(especialidades) AS especialidade
		     FROM medicos WHERE ativo = TRUE`).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

// DistinctInsurances unions the general insurance lists of active
// establishments with the accepted lists of active doctors.
func (ls *Service) DistinctInsurances(ctx context.Context) ([]string, error) {
	var out []string
	err := ls.DB.WithContext(ctx).
		Raw(`SELECT DISTINCT unnest(convenios_gerais) AS convenio
		     FROM estabelecimentos WHERE ativo = TRUE
		     UNION
		     SELECT DISTINCT unnest(convenios_aceitos) AS convenio
		     FROM medicos WHERE ativo = TRUE`).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

// DistinctTypes returns the type tags present among active establishments,
// in natural distinct order.
func (ls *Service) DistinctTypes(ctx context.Context) ([]string, error) {
	var out []string
	err := ls.DB.WithContext(ctx).
		Raw(`SELECT DISTINCT tipo FROM estabelecimentos WHERE ativo = TRUE`).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
