// Package taxon parses free-text scientific names and taxonomic group aliases.
package taxon

import (
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/genomebank/taxofetch/internal/model"
)

var (
	// ErrEmptyName is returned when the raw name contains no tokens.
	ErrEmptyName = eris.New("taxon: empty species name")
	// ErrNoGenus is returned when the first token has no alphabetic genus.
	ErrNoGenus = eris.New("taxon: name has no alphabetic genus token")
)

// IsParseError reports whether err is a name-parse failure. Parse failures
// are per-target: callers record the target as NOT_FOUND and continue.
func IsParseError(err error) bool {
	return eris.Is(err, ErrEmptyName) || eris.Is(err, ErrNoGenus)
}

var (
	titler = cases.Title(language.Und)
	folder = cases.Fold()
)

// ParseTarget splits a raw scientific name into genus and species epithet.
// The first whitespace token is the genus, the second the epithet; trailing
// subspecies or strain qualifiers are ignored for matching. The genus is
// title-cased and the epithet lowercased so downstream lookups are
// case-insensitive.
func ParseTarget(raw string) (model.TargetSpecies, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return model.TargetSpecies{RawName: raw}, ErrEmptyName
	}

	genus := fields[0]
	if !alphabetic(genus) {
		return model.TargetSpecies{RawName: raw}, ErrNoGenus
	}

	t := model.TargetSpecies{
		RawName: strings.TrimSpace(raw),
		Genus:   titler.String(genus),
	}
	if len(fields) > 1 {
		t.SpeciesEpithet = strings.ToLower(fields[1])
	}
	return t, nil
}

// Fold returns the case-folded form of s used as a lookup key.
func Fold(s string) string {
	return folder.String(s)
}

// SpeciesKey builds the folded "genus epithet" lookup key.
func SpeciesKey(genus, epithet string) string {
	return Fold(genus) + " " + Fold(epithet)
}

func alphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}
