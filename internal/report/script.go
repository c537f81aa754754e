package report

import (
	"fmt"
	"io"
	"path"

	"github.com/rotisserie/eris"

	"github.com/genomebank/taxofetch/internal/model"
)

// WriteScript emits a bash script that downloads the genomic FASTA for every
// resolved result into outdir. NOT_FOUND rows produce no script lines.
// Genome files live under the assembly's FTP directory as
// {basename}_genomic.fna.gz, where basename is the last path element.
func WriteScript(w io.Writer, results []model.MergedResult, outdir string) error {
	write := func(format string, args ...any) error {
		_, err := fmt.Fprintf(w, format, args...)
		return eris.Wrap(err, "report: write script")
	}

	if err := write("#!/bin/bash\n"); err != nil {
		return err
	}
	if err := write("mkdir -p %s\n", outdir); err != nil {
		return err
	}

	for _, res := range results {
		if res.Record == nil || res.Record.FTPPath == "" {
			continue
		}
		base := path.Base(res.Record.FTPPath)
		url := fmt.Sprintf("%s/%s_genomic.fna.gz", res.Record.FTPPath, base)
		if err := write("echo 'Downloading %s from %s...'\n", res.Target.RawName, res.Source); err != nil {
			return err
		}
		if err := write("wget -q --show-progress -O %s/%s.fna.gz %s\n", outdir, res.Record.Accession, url); err != nil {
			return err
		}
	}
	return nil
}
