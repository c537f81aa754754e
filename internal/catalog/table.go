package catalog

import (
	"github.com/rotisserie/eris"

	"github.com/genomebank/taxofetch/internal/model"
	"github.com/genomebank/taxofetch/internal/taxon"
)

// ErrEmptyCatalog is returned when a required catalog has zero records.
// The caller decides whether to abort or continue source-degraded.
var ErrEmptyCatalog = eris.New("catalog: no records")

// Table is the in-memory form of one assembly summary catalog. It is built
// once and read-only afterwards; lookups are keyed on case-folded names so
// matching is insensitive to catalog and input casing.
type Table struct {
	source    model.SourceDB
	records   []model.AssemblyRecord
	bySpecies map[string][]int
	byGenus   map[string][]int
}

// NewTable indexes records into a lookup table. Returns ErrEmptyCatalog when
// records is empty.
func NewTable(source model.SourceDB, records []model.AssemblyRecord) (*Table, error) {
	if len(records) == 0 {
		return nil, eris.Wrapf(ErrEmptyCatalog, "%s", source)
	}
	t := &Table{
		source:    source,
		records:   records,
		bySpecies: make(map[string][]int),
		byGenus:   make(map[string][]int),
	}
	for i, rec := range records {
		sk := taxon.SpeciesKey(rec.Genus, rec.SpeciesEpithet)
		gk := taxon.Fold(rec.Genus)
		t.bySpecies[sk] = append(t.bySpecies[sk], i)
		t.byGenus[gk] = append(t.byGenus[gk], i)
	}
	return t, nil
}

// EmptyTable returns a table with no records for use in source-degraded runs.
func EmptyTable(source model.SourceDB) *Table {
	return &Table{
		source:    source,
		bySpecies: map[string][]int{},
		byGenus:   map[string][]int{},
	}
}

// Source returns which catalog this table was loaded from.
func (t *Table) Source() model.SourceDB { return t.source }

// Len returns the number of records in the table.
func (t *Table) Len() int { return len(t.records) }

// LookupSpecies returns all records whose genus and species epithet match,
// case-insensitively. Subspecies and strain qualifiers play no part.
func (t *Table) LookupSpecies(genus, epithet string) []model.AssemblyRecord {
	return t.collect(t.bySpecies[taxon.SpeciesKey(genus, epithet)])
}

// LookupGenus returns all records sharing the genus, any species.
func (t *Table) LookupGenus(genus string) []model.AssemblyRecord {
	return t.collect(t.byGenus[taxon.Fold(genus)])
}

func (t *Table) collect(idx []int) []model.AssemblyRecord {
	if len(idx) == 0 {
		return nil
	}
	out := make([]model.AssemblyRecord, len(idx))
	for i, j := range idx {
		out[i] = t.records[j]
	}
	return out
}
