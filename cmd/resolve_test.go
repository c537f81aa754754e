package main

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genomebank/taxofetch/internal/catalog"
	"github.com/genomebank/taxofetch/internal/fetcher"
	"github.com/genomebank/taxofetch/internal/model"
	"github.com/genomebank/taxofetch/internal/resolver"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

func sampleResults() []model.MergedResult {
	rec := &model.AssemblyRecord{
		OrganismName: "Arabidopsis thaliana",
		Accession:    "GCF_000001735.4",
		Level:        model.LevelChromosome,
		Category:     model.CategoryReference,
		FTPPath:      "https://ftp.ncbi.nlm.nih.gov/genomes/all/GCF_000001735.4_TAIR10.1",
		Source:       model.RefSeq,
	}
	return []model.MergedResult{
		{
			Target: model.TargetSpecies{RawName: "Arabidopsis thaliana"},
			Record: rec,
			Type:   model.MatchExact,
			Source: model.RefSeq,
		},
		{
			Target: model.TargetSpecies{RawName: "Zzyx nonexistus"},
			Type:   model.MatchNotFound,
		},
	}
}

func TestWriteReport_TSV(t *testing.T) {
	chdirTemp(t)
	oldFormat := resolveFormat
	defer func() { resolveFormat = oldFormat }()
	resolveFormat = "tsv"

	path, err := writeReport("plant", sampleResults())
	require.NoError(t, err)
	assert.Equal(t, "download_report_plant.log", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Target_Species\t"))
}

func TestWriteReport_UnknownFormat(t *testing.T) {
	oldFormat := resolveFormat
	defer func() { resolveFormat = oldFormat }()
	resolveFormat = "pdf"

	_, err := writeReport("plant", sampleResults())
	require.Error(t, err)
}

func TestWriteScript(t *testing.T) {
	chdirTemp(t)

	path, err := writeScript("plant", "plant_genomes", sampleResults())
	require.NoError(t, err)
	assert.Equal(t, "run_downloads_plant.sh", path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mkdir -p plant_genomes")
	assert.NotContains(t, string(data), "Zzyx")
}

// fixtureFetcher serves canned summary files keyed by URL.
type fixtureFetcher struct {
	bodies map[string]string
}

func (f *fixtureFetcher) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	body, ok := f.bodies[url]
	if !ok {
		return nil, fetcher.ErrNotFound
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func (f *fixtureFetcher) DownloadToFile(ctx context.Context, url string, path string) (int64, error) {
	rc, err := f.Download(ctx, url)
	if err != nil {
		return 0, err
	}
	defer rc.Close()
	out, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer out.Close()
	return io.Copy(out, rc)
}

func (f *fixtureFetcher) HeadETag(ctx context.Context, url string) (string, error) {
	return "", nil
}

func (f *fixtureFetcher) DownloadIfChanged(ctx context.Context, url string, etag string) (io.ReadCloser, string, bool, error) {
	rc, err := f.Download(ctx, url)
	if err != nil {
		return nil, "", false, err
	}
	return rc, "", true, nil
}

// End to end over fixture catalogs: targets file in, report and script out.
func TestResolvePipeline(t *testing.T) {
	chdirTemp(t)
	ctx := context.Background()

	refseqSummary := "# assembly_accession\trefseq_category\torganism_name\tassembly_level\tseq_rel_date\tftp_path\n" +
		"GCF_000001735.4\treference genome\tArabidopsis thaliana\tChromosome\t2018/03/15\thttps://ftp.ncbi.nlm.nih.gov/genomes/all/GCF_000001735.4_TAIR10.1\n" +
		"GCF_000000010.1\treference genome\tAmaranthus hypochondriacus\tComplete Genome\t2019/02/01\thttps://ftp.ncbi.nlm.nih.gov/genomes/all/GCF_000000010.1_AHP1\n"
	genbankSummary := "# assembly_accession\trefseq_category\torganism_name\tassembly_level\tseq_rel_date\tftp_path\n" +
		"GCA_000005005.6\tna\tZea mays\tChromosome\t2020/01/01\thttps://ftp.ncbi.nlm.nih.gov/genomes/all/GCA_000005005.6_B73\n"

	loader := &catalog.Loader{
		Fetcher: &fixtureFetcher{bodies: map[string]string{
			"https://example.org/genomes/refseq/plant/assembly_summary.txt":  refseqSummary,
			"https://example.org/genomes/genbank/plant/assembly_summary.txt": genbankSummary,
		}},
		CacheDir: t.TempDir(),
		BaseURL:  "https://example.org/genomes",
	}

	tables, err := loader.Load(ctx, "plant", model.ScopeBoth, false)
	require.NoError(t, err)

	input := writeTempFile(t, "Arabidopsis thaliana\nAmaranthus palmeri\nZea mays\nZzyx nonexistus\n")
	targets, err := readTargets(input)
	require.NoError(t, err)

	r := resolver.New(tables, resolver.Options{Scope: model.ScopeBoth})
	results, err := r.Resolve(ctx, targets)
	require.NoError(t, err)

	exact, fallback, notFound := resolver.Tally(results)
	assert.Equal(t, 2, exact)
	assert.Equal(t, 1, fallback)
	assert.Equal(t, 1, notFound)

	oldFormat := resolveFormat
	defer func() { resolveFormat = oldFormat }()
	resolveFormat = "tsv"

	reportPath, err := writeReport("plant", results)
	require.NoError(t, err)
	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	report := string(data)
	assert.Contains(t, report, "FOUND\tREFSEQ\tGCF_000001735.4")
	assert.Contains(t, report, "FALLBACK (Amaranthus hypochondriacus)")
	assert.Contains(t, report, "FOUND\tGENBANK\tGCA_000005005.6")
	assert.Contains(t, report, "Zzyx nonexistus\tNOT_FOUND")

	scriptPath, err := writeScript("plant", "plant_genomes", results)
	require.NoError(t, err)
	data, err = os.ReadFile(scriptPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "GCA_000005005.6_B73_genomic.fna.gz")
	assert.NotContains(t, string(data), "Zzyx")
}
