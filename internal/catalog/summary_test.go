package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genomebank/taxofetch/internal/model"
)

// summaryFixture mirrors the assembly_summary.txt layout: a ## comment line,
// a # header line, then tab-separated rows. Only the columns the parser
// reads are populated meaningfully.
const summaryFixture = `## See https://www.ncbi.nlm.nih.gov/assembly/help/ for assembly_summary.txt format
# assembly_accession	bioproject	biosample	wgs_master	refseq_category	taxid	species_taxid	organism_name	infraspecific_name	isolate	version_status	assembly_level	release_type	genome_rep	seq_rel_date	asm_name	submitter	gbrs_paired_asm	paired_asm_comp	ftp_path	excluded_from_refseq	relation_to_type_material
GCF_000001735.4	PRJNA10719	SAMN03081427		reference genome	3702	3702	Arabidopsis thaliana			latest	Chromosome	Major	Full	2018/03/15	TAIR10.1	TAIR	GCA_000001735.2	identical	https://ftp.ncbi.nlm.nih.gov/genomes/all/GCF/000/001/735/GCF_000001735.4_TAIR10.1
GCF_000004255.2	PRJNA41137	SAMN02981245		representative genome	59689	59689	Arabidopsis lyrata subsp. lyrata			latest	Scaffold	Major	Full	2011/05/13	v.1.0	JGI	GCA_000004255.1	identical	https://ftp.ncbi.nlm.nih.gov/genomes/all/GCF/000/004/255/GCF_000004255.2_v.1.0
	PRJNA999	SAMN999		na	1	1	Missing accession			latest	Contig	Major	Full	2020/01/01	x	y	z	w	u
GCF_000000001.1	PRJNA998	SAMN998		na	2	2	123badgenus name			latest	Contig	Major	Full	2020/01/01	x	y	z	w	u
GCF_000005840.2	PRJNA57779	SAMN02604091		reference genome	511145	562	Escherichia coli str. K-12 substr. MG1655			latest	Complete Genome	Major	Full	2013/09/26	ASM584v2	Univ. of Wisconsin	GCA_000005845.2	identical	https://ftp.ncbi.nlm.nih.gov/genomes/all/GCF/000/005/840/GCF_000005840.2_ASM584v2
`

func TestParseSummary(t *testing.T) {
	records, err := ParseSummary(strings.NewReader(summaryFixture), model.RefSeq)
	require.NoError(t, err)
	// Two malformed rows (missing accession, non-alphabetic genus) skipped.
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, "GCF_000001735.4", first.Accession)
	assert.Equal(t, "Arabidopsis thaliana", first.OrganismName)
	assert.Equal(t, "Arabidopsis", first.Genus)
	assert.Equal(t, "thaliana", first.SpeciesEpithet)
	assert.Equal(t, model.LevelChromosome, first.Level)
	assert.Equal(t, model.CategoryReference, first.Category)
	assert.Equal(t, model.RefSeq, first.Source)
	assert.Equal(t, 2018, first.SubmissionDate.Year())
	assert.Contains(t, first.FTPPath, "GCF_000001735.4")

	// Subspecies tokens beyond the epithet are dropped from the derived key.
	second := records[1]
	assert.Equal(t, "Arabidopsis", second.Genus)
	assert.Equal(t, "lyrata", second.SpeciesEpithet)

	ecoli := records[2]
	assert.Equal(t, model.LevelCompleteGenome, ecoli.Level)
	assert.Equal(t, "coli", ecoli.SpeciesEpithet)
}

func TestParseSummary_NoHeader(t *testing.T) {
	_, err := ParseSummary(strings.NewReader("GCF_1\tfoo\n"), model.RefSeq)
	require.Error(t, err)

	_, err = ParseSummary(strings.NewReader("## just a comment\n"), model.RefSeq)
	require.Error(t, err)
}

func TestParseSummary_BadDateNotFatal(t *testing.T) {
	fixture := "# assembly_accession\trefseq_category\torganism_name\tassembly_level\tseq_rel_date\tftp_path\n" +
		"GCF_1.1\tna\tZea mays\tContig\tnot-a-date\thttps://example.org/x\n"
	records, err := ParseSummary(strings.NewReader(fixture), model.RefSeq)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].SubmissionDate.IsZero())
}

func TestNewTable_Lookups(t *testing.T) {
	records, err := ParseSummary(strings.NewReader(summaryFixture), model.RefSeq)
	require.NoError(t, err)
	tbl, err := NewTable(model.RefSeq, records)
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, model.RefSeq, tbl.Source())

	exact := tbl.LookupSpecies("arabidopsis", "THALIANA")
	require.Len(t, exact, 1)
	assert.Equal(t, "GCF_000001735.4", exact[0].Accession)

	genus := tbl.LookupGenus("Arabidopsis")
	assert.Len(t, genus, 2)

	assert.Empty(t, tbl.LookupSpecies("Zzyx", "nonexistus"))
	assert.Empty(t, tbl.LookupGenus("Zzyx"))
}

func TestNewTable_Empty(t *testing.T) {
	_, err := NewTable(model.RefSeq, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	tbl := EmptyTable(model.GenBank)
	assert.Equal(t, 0, tbl.Len())
	assert.Empty(t, tbl.LookupGenus("Arabidopsis"))
}
