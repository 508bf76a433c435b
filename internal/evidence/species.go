package evidence

import (
	"errors"
	"fmt"
)

// ErrUnknownSpecies is returned for species outside the taxonomy table.
var ErrUnknownSpecies = errors.New("unknown species")

var taxonomy = map[string]int{
	"Homo sapiens":      9606,
	"Mus musculus":      10090,
	"Rattus norvegicus": 10116,
}

// ModelOrganisms are the species a run can be restricted to, in report order.
var ModelOrganisms = []string{"Homo sapiens", "Mus musculus", "Rattus norvegicus"}

// TaxonomyID maps a species name to its NCBI taxonomy id.
func TaxonomyID(species string) (int, error) {
	id, ok := taxonomy[species]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSpecies, species)
	}
	return id, nil
}
