// Package catalog loads NCBI assembly summary files into in-memory tables.
package catalog

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/genomebank/taxofetch/internal/model"
)

// Column names from the assembly_summary.txt header line.
const (
	colAccession = "assembly_accession"
	colCategory  = "refseq_category"
	colOrganism  = "organism_name"
	colLevel     = "assembly_level"
	colRelDate   = "seq_rel_date"
	colFTPPath   = "ftp_path"
)

// dateLayout is the seq_rel_date format used by NCBI.
const dateLayout = "2006/01/02"

// ParseSummary reads an assembly_summary.txt stream and returns its records
// tagged with the given source. The format is tab-separated with no quoting;
// the first line is a `##` comment and the second a `# `-prefixed header
// naming the columns. Rows missing an accession or an organism name with an
// alphabetic genus are skipped with a warning rather than failing the load.
func ParseSummary(r io.Reader, source model.SourceDB) ([]model.AssemblyRecord, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var (
		cols    map[string]int
		records []model.AssemblyRecord
		skipped int
		lineNo  int
	)

	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			// The header is itself a comment line: "# assembly_accession\t...".
			if cols == nil && strings.Contains(line, colAccession) {
				cols = headerIndex(line)
			}
			continue
		}

		if cols == nil {
			return nil, eris.Errorf("catalog: %s summary has data before header at line %d", source, lineNo)
		}

		fields := strings.Split(line, "\t")
		rec, ok := parseRow(fields, cols, source)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrapf(err, "catalog: read %s summary", source)
	}
	if cols == nil {
		return nil, eris.Errorf("catalog: %s summary has no header line", source)
	}

	if skipped > 0 {
		zap.L().Warn("catalog: skipped malformed summary rows",
			zap.String("source", string(source)),
			zap.Int("skipped", skipped),
		)
	}

	return records, nil
}

// headerIndex maps column names to their positions in the header line.
func headerIndex(line string) map[string]int {
	line = strings.TrimPrefix(line, "#")
	line = strings.TrimPrefix(line, " ")
	idx := make(map[string]int)
	for i, name := range strings.Split(line, "\t") {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

func parseRow(fields []string, cols map[string]int, source model.SourceDB) (model.AssemblyRecord, bool) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	accession := get(colAccession)
	organism := get(colOrganism)
	if accession == "" || organism == "" {
		return model.AssemblyRecord{}, false
	}

	nameFields := strings.Fields(organism)
	genus := nameFields[0]
	if !isAlpha(genus) {
		return model.AssemblyRecord{}, false
	}
	var epithet string
	if len(nameFields) > 1 {
		epithet = strings.ToLower(nameFields[1])
	}

	rec := model.AssemblyRecord{
		OrganismName:   organism,
		Genus:          genus,
		SpeciesEpithet: epithet,
		Accession:      accession,
		Level:          model.ParseAssemblyLevel(get(colLevel)),
		Category:       model.ParseRefSeqCategory(get(colCategory)),
		FTPPath:        get(colFTPPath),
		Source:         source,
	}

	// A missing or malformed release date ranks lowest, not fatal.
	if d := get(colRelDate); d != "" {
		if t, err := time.Parse(dateLayout, d); err == nil {
			rec.SubmissionDate = t
		}
	}

	return rec, true
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return s != ""
}
