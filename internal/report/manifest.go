package report

import (
	"io"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/genomebank/taxofetch/internal/model"
)

// Manifest is the machine-readable summary of one resolution run, for
// pipeline tooling that consumes taxofetch output.
type Manifest struct {
	RunID      string            `yaml:"run_id"`
	Group      string            `yaml:"group"`
	Scope      model.SourceScope `yaml:"scope"`
	Targets    int               `yaml:"targets"`
	Exact      int               `yaml:"exact"`
	Fallback   int               `yaml:"fallback"`
	NotFound   int               `yaml:"not_found"`
	RefSeqSize int               `yaml:"refseq_catalog_records"`
	GenBankSz  int               `yaml:"genbank_catalog_records"`
	ReportPath string            `yaml:"report_path"`
	ScriptPath string            `yaml:"script_path"`
	CreatedAt  time.Time         `yaml:"created_at"`
}

// WriteManifest encodes the manifest as YAML.
func WriteManifest(w io.Writer, m Manifest) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close() //nolint:errcheck
	return eris.Wrap(enc.Encode(m), "report: write manifest")
}
