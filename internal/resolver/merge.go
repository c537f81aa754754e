package resolver

import "github.com/genomebank/taxofetch/internal/model"

// Merge combines one target's RefSeq and GenBank match results according to
// the requested scope.
//
// Under ScopeBoth, an exact match from either database beats a genus
// fallback from the other: exactness dominates source preference. Between
// equal match types RefSeq wins, as the curated catalog. When both sides
// offer only genus fallbacks, preferQuality re-ranks the two fallback
// records by assembly quality instead of defaulting to RefSeq.
func Merge(refseq, genbank model.MatchResult, scope model.SourceScope, preferQuality bool) model.MergedResult {
	switch scope {
	case model.ScopeRefSeqOnly:
		return merged(refseq)
	case model.ScopeGenBankOnly:
		return merged(genbank)
	}

	switch {
	case refseq.Type == model.MatchExact:
		return merged(refseq)
	case genbank.Type == model.MatchExact:
		return merged(genbank)
	case refseq.Type == model.MatchGenusFallback && genbank.Type == model.MatchGenusFallback:
		if preferQuality && Better(*genbank.Record, *refseq.Record) {
			return merged(genbank)
		}
		return merged(refseq)
	case refseq.Type == model.MatchGenusFallback:
		return merged(refseq)
	case genbank.Type == model.MatchGenusFallback:
		return merged(genbank)
	}

	out := merged(refseq)
	if out.Reason == "" {
		out.Reason = genbank.Reason
	}
	return out
}

func merged(m model.MatchResult) model.MergedResult {
	return model.MergedResult{
		Target: m.Target,
		Record: m.Record,
		Type:   m.Type,
		Source: m.Source,
		Reason: m.Reason,
	}
}
