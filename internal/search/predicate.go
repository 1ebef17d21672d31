package search

import (
	"strings"

	"mapa-saude-api/internal/establishment"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Establishments matching on insurance may match through either surface: the
// establishment's own general list, or any active linked doctor's accepted
// list.
const doctorInsuranceSubquery = `SELECT me.estabelecimento_id
	FROM medico_estabelecimentos me
	JOIN medicos m ON m.id = me.medico_id
	WHERE m.ativo = TRUE AND m.convenios_aceitos && ?::text[]`

const doctorSpecialtySubquery = `SELECT me.estabelecimento_id
	FROM medico_estabelecimentos me
	JOIN medicos m ON m.id = me.medico_id
	WHERE m.ativo = TRUE AND ? = ANY(m.especialidades)`

// ApplyFilters composes the filter facets onto an establishment query.
// Facets AND together; values inside one facet OR together. Malformed facet
// values never error, they just contribute no restriction.
func ApplyFilters(q *gorm.DB, f Filters) *gorm.DB {
	if tipos := knownTipos(f.Tipos); len(tipos) > 0 {
		q = q.Where("tipo IN ?", tipos)
	}

	if term := strings.TrimSpace(f.Search); term != "" {
		pat := "%" + term + "%"
		q = q.Where("(nome ILIKE ? OR endereco_completo ILIKE ? OR descricao ILIKE ?)", pat, pat, pat)
	}

	if len(f.Convenios) > 0 {
		q = q.Where(
			"(convenios_gerais && ?::text[] OR id IN ("+doctorInsuranceSubquery+"))",
			pq.Array(f.Convenios),
			pq.Array(f.Convenios),
		)
	}

	if esp := strings.TrimSpace(f.Especialidade); esp != "" {
		q = q.Where("id IN ("+doctorSpecialtySubquery+")", esp)
	}

	return q
}

// knownTipos silently drops unrecognized type tags instead of erroring.
func knownTipos(tipos []string) []string {
	out := make([]string, 0, len(tipos))
	for _, t := range tipos {
		if establishment.ValidTipo(t) {
			out = append(out, t)
		}
	}
	return out
}
