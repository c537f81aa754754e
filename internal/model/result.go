package model

import "github.com/rotisserie/eris"

// TargetSpecies is one input line after name parsing.
type TargetSpecies struct {
	RawName        string `json:"raw_name"`
	Genus          string `json:"genus"`
	SpeciesEpithet string `json:"species_epithet,omitempty"`
}

// MatchType classifies how a target was resolved against a catalog.
type MatchType string

const (
	MatchExact         MatchType = "EXACT"
	MatchGenusFallback MatchType = "GENUS_FALLBACK"
	MatchNotFound      MatchType = "NOT_FOUND"
)

// Found reports whether the match carries a record.
func (m MatchType) Found() bool {
	return m == MatchExact || m == MatchGenusFallback
}

// MatchResult is the outcome of resolving one target against one catalog.
// Record is non-nil exactly when Type is not MatchNotFound.
type MatchResult struct {
	Target TargetSpecies   `json:"target"`
	Record *AssemblyRecord `json:"record,omitempty"`
	Type   MatchType       `json:"match_type"`
	Source SourceDB        `json:"source_db,omitempty"`
	Reason string          `json:"reason,omitempty"`
}

// MergedResult is one row of the final report, after cross-database merging.
type MergedResult struct {
	Target TargetSpecies   `json:"target"`
	Record *AssemblyRecord `json:"chosen_record,omitempty"`
	Type   MatchType       `json:"match_type"`
	Source SourceDB        `json:"source_db,omitempty"`
	Reason string          `json:"reason,omitempty"`
}

// SourceScope selects which catalogs participate in a run.
type SourceScope string

const (
	ScopeRefSeqOnly  SourceScope = "refseq"
	ScopeGenBankOnly SourceScope = "genbank"
	ScopeBoth        SourceScope = "both"
)

// ParseSourceScope converts the CLI -s value into a SourceScope.
func ParseSourceScope(s string) (SourceScope, error) {
	switch SourceScope(s) {
	case ScopeRefSeqOnly, ScopeGenBankOnly, ScopeBoth:
		return SourceScope(s), nil
	default:
		return "", eris.Errorf("unknown source %q (valid: refseq, genbank, both)", s)
	}
}

// WantsRefSeq reports whether the scope includes the RefSeq catalog.
func (s SourceScope) WantsRefSeq() bool { return s == ScopeRefSeqOnly || s == ScopeBoth }

// WantsGenBank reports whether the scope includes the GenBank catalog.
func (s SourceScope) WantsGenBank() bool { return s == ScopeGenBankOnly || s == ScopeBoth }
