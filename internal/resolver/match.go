// Package resolver decides which assembly, if any, answers each target
// species: exact organism match first, genus-level fallback second.
package resolver

import (
	"github.com/genomebank/taxofetch/internal/catalog"
	"github.com/genomebank/taxofetch/internal/model"
)

// Match resolves one target against one catalog table. When candidates
// exist, the single best record per the ranking policy is returned; callers
// never see the raw candidate set.
func Match(target model.TargetSpecies, table *catalog.Table) model.MatchResult {
	result := model.MatchResult{
		Target: target,
		Source: table.Source(),
	}

	if candidates := table.LookupSpecies(target.Genus, target.SpeciesEpithet); len(candidates) > 0 {
		best := Rank(candidates)
		result.Type = model.MatchExact
		result.Record = &best
		return result
	}

	if candidates := table.LookupGenus(target.Genus); len(candidates) > 0 {
		best := Rank(candidates)
		result.Type = model.MatchGenusFallback
		result.Record = &best
		return result
	}

	result.Type = model.MatchNotFound
	result.Source = ""
	return result
}
