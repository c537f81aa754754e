package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/genomebank/taxofetch/internal/fetcher"
	"github.com/genomebank/taxofetch/internal/model"
	"github.com/genomebank/taxofetch/internal/store"
)

// DefaultBaseURL is the root of NCBI's per-group genome catalogs.
const DefaultBaseURL = "https://ftp.ncbi.nlm.nih.gov/genomes"

// SyncStore is the subset of the metadata store the loader needs. A nil
// SyncStore disables ETag bookkeeping and every load is a full download.
type SyncStore interface {
	GetCatalogFile(ctx context.Context, group string, source model.SourceDB) (*store.CatalogFile, error)
	UpsertCatalogFile(ctx context.Context, cf store.CatalogFile) error
	DeleteCatalogFiles(ctx context.Context, group string, source model.SourceDB) (int64, error)
}

// Loader materializes catalog tables from NCBI, caching summary files on
// disk between runs.
type Loader struct {
	Fetcher  fetcher.Fetcher
	Store    SyncStore
	CacheDir string
	BaseURL  string
}

// Pair holds the catalog tables for one run. Tables outside the requested
// scope, or degraded sources, are empty rather than nil.
type Pair struct {
	RefSeq  *Table
	GenBank *Table
}

// SummaryURL returns the catalog URL for a group and source.
func (l *Loader) SummaryURL(group string, source model.SourceDB) string {
	base := l.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return fmt.Sprintf("%s/%s/%s/assembly_summary.txt", base, source.Dir(), group)
}

// CachePath returns the local cache file for a group and source.
func (l *Loader) CachePath(group string, source model.SourceDB) string {
	return filepath.Join(l.CacheDir, fmt.Sprintf("summary_%s_%s.txt", group, source.Dir()))
}

// Load fetches and parses the catalogs the scope requires, both sources
// concurrently. Under ScopeBoth a source whose summary file is absent
// upstream degrades to an empty table with a warning; under a single-source
// scope that absence is an error. A catalog that downloads but parses to
// zero records surfaces ErrEmptyCatalog either way.
func (l *Loader) Load(ctx context.Context, group string, scope model.SourceScope, clean bool) (*Pair, error) {
	pair := &Pair{
		RefSeq:  EmptyTable(model.RefSeq),
		GenBank: EmptyTable(model.GenBank),
	}

	required := scope != model.ScopeBoth

	g, gctx := errgroup.WithContext(ctx)
	if scope.WantsRefSeq() {
		g.Go(func() error {
			t, err := l.loadOne(gctx, group, model.RefSeq, clean, required)
			if err != nil {
				return err
			}
			pair.RefSeq = t
			return nil
		})
	}
	if scope.WantsGenBank() {
		g.Go(func() error {
			t, err := l.loadOne(gctx, group, model.GenBank, clean, required)
			if err != nil {
				return err
			}
			pair.GenBank = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if pair.RefSeq.Len() == 0 && pair.GenBank.Len() == 0 {
		return nil, eris.Wrapf(ErrEmptyCatalog, "no assemblies for group %q in scope %s", group, scope)
	}

	return pair, nil
}

func (l *Loader) loadOne(ctx context.Context, group string, source model.SourceDB, clean, required bool) (*Table, error) {
	path := l.CachePath(group, source)

	if clean {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, eris.Wrapf(err, "catalog: remove cached %s", path)
		}
		if l.Store != nil {
			if _, err := l.Store.DeleteCatalogFiles(ctx, group, source); err != nil {
				return nil, err
			}
		}
	}

	if err := l.refresh(ctx, group, source, path); err != nil {
		if eris.Is(err, fetcher.ErrNotFound) && !required {
			zap.L().Warn("catalog: summary missing upstream, continuing without source",
				zap.String("group", group),
				zap.String("source", string(source)),
			)
			return EmptyTable(source), nil
		}
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: open cached %s", path)
	}
	defer f.Close() //nolint:errcheck

	records, err := ParseSummary(f, source)
	if err != nil {
		return nil, err
	}

	table, err := NewTable(source, records)
	if err != nil {
		if required {
			return nil, err
		}
		zap.L().Warn("catalog: empty after parse, continuing without source",
			zap.String("group", group),
			zap.String("source", string(source)),
		)
		return EmptyTable(source), nil
	}

	if l.Store != nil {
		if cf, err := l.Store.GetCatalogFile(ctx, group, source); err == nil && cf != nil {
			cf.RecordCount = table.Len()
			if err := l.Store.UpsertCatalogFile(ctx, *cf); err != nil {
				zap.L().Warn("catalog: record count update failed", zap.Error(err))
			}
		}
	}

	zap.L().Info("catalog loaded",
		zap.String("group", group),
		zap.String("source", string(source)),
		zap.Int("records", table.Len()),
	)

	return table, nil
}

// refresh ensures the cache file at path is current, downloading when absent
// or when the remote ETag no longer matches the stored one.
func (l *Loader) refresh(ctx context.Context, group string, source model.SourceDB, path string) error {
	url := l.SummaryURL(group, source)

	var cached *store.CatalogFile
	if l.Store != nil {
		var err error
		cached, err = l.Store.GetCatalogFile(ctx, group, source)
		if err != nil {
			return err
		}
	}

	if _, err := os.Stat(path); err == nil && cached != nil && cached.ETag != "" {
		body, etag, changed, err := l.Fetcher.DownloadIfChanged(ctx, url, cached.ETag)
		if err != nil {
			return err
		}
		if !changed {
			zap.L().Debug("catalog cache current",
				zap.String("group", group),
				zap.String("source", string(source)),
			)
			return nil
		}
		defer body.Close() //nolint:errcheck
		if err := writeFile(path, body); err != nil {
			return err
		}
		return l.remember(ctx, group, source, url, etag, path)
	}

	zap.L().Info("downloading catalog",
		zap.String("group", group),
		zap.String("source", string(source)),
		zap.String("url", url),
	)
	if err := os.MkdirAll(l.CacheDir, 0o755); err != nil {
		return eris.Wrap(err, "catalog: create cache dir")
	}
	if _, err := l.Fetcher.DownloadToFile(ctx, url, path); err != nil {
		return err
	}

	etag, err := l.Fetcher.HeadETag(ctx, url)
	if err != nil {
		zap.L().Debug("catalog: etag probe failed", zap.Error(err))
		etag = ""
	}
	return l.remember(ctx, group, source, url, etag, path)
}

func (l *Loader) remember(ctx context.Context, group string, source model.SourceDB, url, etag, path string) error {
	if l.Store == nil {
		return nil
	}
	return l.Store.UpsertCatalogFile(ctx, store.CatalogFile{
		Group:     group,
		Source:    source,
		URL:       url,
		ETag:      etag,
		LocalPath: path,
		FetchedAt: time.Now().UTC(),
	})
}

func writeFile(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "catalog: create cache file")
	}
	defer f.Close() //nolint:errcheck
	if _, err := io.Copy(f, r); err != nil {
		return eris.Wrap(err, "catalog: write cache file")
	}
	return nil
}
