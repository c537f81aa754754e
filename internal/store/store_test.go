package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genomebank/taxofetch/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, st.Migrate(context.Background()))
	t.Cleanup(func() { st.Close() })
	return st
}

func TestCatalogFiles_CRUD(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	cf := CatalogFile{
		Group:       "plant",
		Source:      model.RefSeq,
		URL:         "https://ftp.ncbi.nlm.nih.gov/genomes/refseq/plant/assembly_summary.txt",
		ETag:        `"abc123"`,
		LocalPath:   "/tmp/summary_plant_refseq.txt",
		RecordCount: 1500,
		FetchedAt:   time.Now().UTC(),
	}
	require.NoError(t, st.UpsertCatalogFile(ctx, cf))

	got, err := st.GetCatalogFile(ctx, "plant", model.RefSeq)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, cf.ETag, got.ETag)
	assert.Equal(t, cf.RecordCount, got.RecordCount)
	assert.Equal(t, model.RefSeq, got.Source)

	// Upsert replaces.
	cf.ETag = `"def456"`
	cf.RecordCount = 1600
	require.NoError(t, st.UpsertCatalogFile(ctx, cf))
	got, err = st.GetCatalogFile(ctx, "plant", model.RefSeq)
	require.NoError(t, err)
	assert.Equal(t, `"def456"`, got.ETag)
	assert.Equal(t, 1600, got.RecordCount)

	// Missing entry is nil, not an error.
	got, err = st.GetCatalogFile(ctx, "fungi", model.RefSeq)
	require.NoError(t, err)
	assert.Nil(t, got)

	// List covers both sources.
	cf.Source = model.GenBank
	require.NoError(t, st.UpsertCatalogFile(ctx, cf))
	files, err := st.ListCatalogFiles(ctx)
	require.NoError(t, err)
	assert.Len(t, files, 2)

	// Delete one source, then the rest of the group.
	n, err := st.DeleteCatalogFiles(ctx, "plant", model.GenBank)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = st.DeleteCatalogFiles(ctx, "plant", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	files, err = st.ListCatalogFiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestRuns(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	run, err := st.RecordRun(ctx, Run{
		Group:    "plant",
		Scope:    model.ScopeBoth,
		Targets:  10,
		Exact:    6,
		Fallback: 3,
		NotFound: 1,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.False(t, run.CreatedAt.IsZero())

	_, err = st.RecordRun(ctx, Run{Group: "fungi", Scope: model.ScopeRefSeqOnly, Targets: 2, Exact: 2})
	require.NoError(t, err)

	runs, err := st.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	// Newest first.
	assert.Equal(t, "fungi", runs[0].Group)
	assert.Equal(t, model.ScopeBoth, runs[1].Scope)
	assert.Equal(t, 3, runs[1].Fallback)

	runs, err = st.ListRuns(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
