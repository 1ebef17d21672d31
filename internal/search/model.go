package search

// Filters is the normalized internal representation of a search request.
// All textual values are already trimmed and multi-value facets are
// de-duplicated; blank facets mean "no restriction from this facet".
type Filters struct {
	Search        string
	Especialidade string
	Convenios     []string
	Tipos         []string
	Lat           *float64
	Lng           *float64
	RaioKm        float64
}

// HasCoordinates reports whether proximity filtering applies. Both
// coordinates must be supplied together; one alone restricts nothing.
func (f Filters) HasCoordinates() bool {
	return f.Lat != nil && f.Lng != nil
}
