package report

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/genomebank/taxofetch/internal/model"
)

// WriteXLSX writes the audit report as a single-sheet XLSX workbook with the
// same rows as WriteTSV.
func WriteXLSX(path string, results []model.MergedResult) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("download_report")
	if err != nil {
		return eris.Wrap(err, "report: add sheet")
	}

	hr := sheet.AddRow()
	for _, col := range header {
		hr.AddCell().Value = col
	}

	for _, res := range results {
		r := sheet.AddRow()
		for _, cell := range row(res) {
			r.AddCell().Value = cell
		}
	}

	return eris.Wrapf(f.Save(path), "report: save xlsx %s", path)
}
