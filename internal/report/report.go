// Package report renders resolution results as audit reports, download
// scripts, and machine-readable run manifests.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/genomebank/taxofetch/internal/model"
)

// Columns of the audit report, in output order.
var header = []string{"Target_Species", "Status", "Source", "Accession", "Level", "URL"}

// Status renders the report status cell for one result.
func Status(res model.MergedResult) string {
	switch res.Type {
	case model.MatchExact:
		return "FOUND"
	case model.MatchGenusFallback:
		return fmt.Sprintf("FALLBACK (%s)", res.Record.OrganismName)
	default:
		if res.Reason != "" {
			return fmt.Sprintf("NOT_FOUND (%s)", res.Reason)
		}
		return "NOT_FOUND"
	}
}

// row flattens one result into report cells. NOT_FOUND rows keep their
// place in the report with placeholder cells.
func row(res model.MergedResult) []string {
	name := res.Target.RawName
	if name == "" {
		name = "-"
	}
	if res.Record == nil {
		return []string{name, Status(res), "-", "-", "-", "N/A"}
	}
	return []string{
		name,
		Status(res),
		string(res.Source),
		res.Record.Accession,
		res.Record.Level.String(),
		res.Record.FTPPath,
	}
}

// WriteTSV writes the tab-separated audit report. Row order follows result
// order, which the resolver guarantees matches input order.
func WriteTSV(w io.Writer, results []model.MergedResult) error {
	if _, err := fmt.Fprintln(w, strings.Join(header, "\t")); err != nil {
		return eris.Wrap(err, "report: write header")
	}
	for _, res := range results {
		if _, err := fmt.Fprintln(w, strings.Join(row(res), "\t")); err != nil {
			return eris.Wrap(err, "report: write row")
		}
	}
	return nil
}
