package resolver

import "github.com/genomebank/taxofetch/internal/model"

// Rank selects the single best record from a non-empty candidate set.
// The ordering is a total order, so the choice is deterministic for a fixed
// catalog: assembly level first, then curation category, then most recent
// submission date, then lexicographically greatest accession. Accessions
// are unique within a catalog, so no two distinct candidates compare equal.
// Changing this order changes report output and is a compatibility break.
func Rank(candidates []model.AssemblyRecord) model.AssemblyRecord {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if Better(c, best) {
			best = c
		}
	}
	return best
}

// Better reports whether a outranks b under the ranking policy.
func Better(a, b model.AssemblyRecord) bool {
	if a.Level != b.Level {
		return a.Level > b.Level
	}
	if a.Category != b.Category {
		return a.Category > b.Category
	}
	if !a.SubmissionDate.Equal(b.SubmissionDate) {
		return a.SubmissionDate.After(b.SubmissionDate)
	}
	return a.Accession > b.Accession
}
