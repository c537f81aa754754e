package taxon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantGenus   string
		wantEpithet string
	}{
		{"binomial", "Arabidopsis thaliana", "Arabidopsis", "thaliana"},
		{"genus only", "Amaranthus", "Amaranthus", ""},
		{"strain qualifier ignored", "Oryza sativa Japonica Group", "Oryza", "sativa"},
		{"extra whitespace", "  Zea   mays  ", "Zea", "mays"},
		{"lowercase input normalized", "zea mays", "Zea", "mays"},
		{"uppercase epithet lowered", "Zea MAYS", "Zea", "mays"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTarget(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantGenus, got.Genus)
			assert.Equal(t, tt.wantEpithet, got.SpeciesEpithet)
		})
	}
}

func TestParseTarget_Errors(t *testing.T) {
	_, err := ParseTarget("")
	require.Error(t, err)
	assert.True(t, IsParseError(err))

	_, err = ParseTarget("   \t ")
	require.Error(t, err)
	assert.True(t, IsParseError(err))

	_, err = ParseTarget("123 thaliana")
	require.Error(t, err)
	assert.True(t, IsParseError(err))
}

func TestFoldAndSpeciesKey(t *testing.T) {
	assert.Equal(t, Fold("Arabidopsis"), Fold("ARABIDOPSIS"))
	assert.Equal(t, SpeciesKey("Zea", "Mays"), SpeciesKey("zea", "mays"))
	assert.NotEqual(t, SpeciesKey("Zea", "mays"), SpeciesKey("Zea", "diploperennis"))
}

func TestCanonicalGroup(t *testing.T) {
	tests := []struct {
		in        string
		want      string
		wantKnown bool
	}{
		{"plant", "plant", true},
		{"Weeds", "plant", true},
		{"insects", "invertebrate", true},
		{"mammals", "vertebrate_mammalian", true},
		{"virus", "viral", true},
		{"archaea", "archaea", false}, // passes through untouched
	}

	for _, tt := range tests {
		got, known := CanonicalGroup(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantKnown, known, tt.in)
	}
}

func TestGroups_SortedUnique(t *testing.T) {
	groups := Groups()
	require.NotEmpty(t, groups)
	for i := 1; i < len(groups); i++ {
		assert.Less(t, groups[i-1][0], groups[i][0])
	}
}
