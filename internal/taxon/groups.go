package taxon

import (
	"sort"
	"strings"
)

// groupAliases maps user-facing group names to the directory names used under
// https://ftp.ncbi.nlm.nih.gov/genomes/{refseq,genbank}/.
var groupAliases = map[string]string{
	"plant":        "plant",
	"plants":       "plant",
	"weed":         "plant",
	"weeds":        "plant",
	"invertebrate": "invertebrate",
	"insect":       "invertebrate",
	"insects":      "invertebrate",
	"vertebrate":   "vertebrate_other",
	"mammal":       "vertebrate_mammalian",
	"mammals":      "vertebrate_mammalian",
	"fungi":        "fungi",
	"bacteria":     "bacteria",
	"virus":        "viral",
	"viral":        "viral",
	"protozoa":     "protozoa",
}

// CanonicalGroup resolves a user-supplied taxonomic group to its NCBI
// directory name. Unknown values pass through unchanged so new NCBI groups
// work without a code change; known reports whether an alias matched.
func CanonicalGroup(name string) (group string, known bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if g, ok := groupAliases[key]; ok {
		return g, true
	}
	return key, false
}

// Groups returns the known aliases sorted by alias name, as "alias\tgroup"
// pairs for display.
func Groups() [][2]string {
	out := make([][2]string, 0, len(groupAliases))
	for alias, group := range groupAliases {
		out = append(out, [2]string{alias, group})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
