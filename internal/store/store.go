// Package store persists catalog sync metadata and resolution run history
// in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/genomebank/taxofetch/internal/model"
)

// CatalogFile records one cached assembly summary download.
type CatalogFile struct {
	Group       string         `json:"group"`
	Source      model.SourceDB `json:"source"`
	URL         string         `json:"url"`
	ETag        string         `json:"etag,omitempty"`
	LocalPath   string         `json:"local_path"`
	RecordCount int            `json:"record_count"`
	FetchedAt   time.Time      `json:"fetched_at"`
}

// Run summarizes one resolution run for the audit history.
type Run struct {
	ID        string            `json:"id"`
	Group     string            `json:"group"`
	Scope     model.SourceScope `json:"scope"`
	Targets   int               `json:"targets"`
	Exact     int               `json:"exact"`
	Fallback  int               `json:"fallback"`
	NotFound  int               `json:"not_found"`
	CreatedAt time.Time         `json:"created_at"`
}

// Store wraps the SQLite database holding sync metadata.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the metadata database at the given path
// and configures WAL mode.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "store: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "store: exec %s", pragma)
		}
	}
	return &Store{db: db}, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS catalog_files (
	grp          TEXT NOT NULL,
	source       TEXT NOT NULL,
	url          TEXT NOT NULL,
	etag         TEXT NOT NULL DEFAULT '',
	local_path   TEXT NOT NULL,
	record_count INTEGER NOT NULL DEFAULT 0,
	fetched_at   DATETIME NOT NULL,
	PRIMARY KEY (grp, source)
);

CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	grp        TEXT NOT NULL,
	scope      TEXT NOT NULL,
	targets    INTEGER NOT NULL,
	exact      INTEGER NOT NULL,
	fallback   INTEGER NOT NULL,
	not_found  INTEGER NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_grp ON runs(grp);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Migrate creates the schema if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "store: migrate")
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertCatalogFile records a catalog download, replacing any previous entry
// for the same group and source.
func (s *Store) UpsertCatalogFile(ctx context.Context, cf CatalogFile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO catalog_files (grp, source, url, etag, local_path, record_count, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (grp, source) DO UPDATE SET
			url = excluded.url,
			etag = excluded.etag,
			local_path = excluded.local_path,
			record_count = excluded.record_count,
			fetched_at = excluded.fetched_at`,
		cf.Group, string(cf.Source), cf.URL, cf.ETag, cf.LocalPath, cf.RecordCount, cf.FetchedAt.UTC(),
	)
	return eris.Wrapf(err, "store: upsert catalog file %s/%s", cf.Group, cf.Source)
}

// GetCatalogFile returns the cached entry for (group, source), or nil when
// none is recorded.
func (s *Store) GetCatalogFile(ctx context.Context, group string, source model.SourceDB) (*CatalogFile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT grp, source, url, etag, local_path, record_count, fetched_at
		FROM catalog_files WHERE grp = ? AND source = ?`,
		group, string(source),
	)
	var cf CatalogFile
	var src string
	err := row.Scan(&cf.Group, &src, &cf.URL, &cf.ETag, &cf.LocalPath, &cf.RecordCount, &cf.FetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "store: get catalog file %s/%s", group, source)
	}
	cf.Source = model.SourceDB(src)
	return &cf, nil
}

// DeleteCatalogFiles removes cache entries for a group. An empty source
// removes both sources. Returns the number of entries removed.
func (s *Store) DeleteCatalogFiles(ctx context.Context, group string, source model.SourceDB) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if source == "" {
		res, err = s.db.ExecContext(ctx, `DELETE FROM catalog_files WHERE grp = ?`, group)
	} else {
		res, err = s.db.ExecContext(ctx, `DELETE FROM catalog_files WHERE grp = ? AND source = ?`, group, string(source))
	}
	if err != nil {
		return 0, eris.Wrapf(err, "store: delete catalog files %s", group)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, eris.Wrap(err, "store: rows affected")
	}
	return n, nil
}

// ListCatalogFiles returns all cached catalog entries ordered by group then
// source.
func (s *Store) ListCatalogFiles(ctx context.Context) ([]CatalogFile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT grp, source, url, etag, local_path, record_count, fetched_at
		FROM catalog_files ORDER BY grp, source`)
	if err != nil {
		return nil, eris.Wrap(err, "store: list catalog files")
	}
	defer rows.Close()

	var out []CatalogFile
	for rows.Next() {
		var cf CatalogFile
		var src string
		if err := rows.Scan(&cf.Group, &src, &cf.URL, &cf.ETag, &cf.LocalPath, &cf.RecordCount, &cf.FetchedAt); err != nil {
			return nil, eris.Wrap(err, "store: scan catalog file")
		}
		cf.Source = model.SourceDB(src)
		out = append(out, cf)
	}
	return out, eris.Wrap(rows.Err(), "store: iterate catalog files")
}

// RecordRun appends one resolution run to the audit history and returns it
// with its generated ID.
func (s *Store) RecordRun(ctx context.Context, run Run) (*Run, error) {
	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, grp, scope, targets, exact, fallback, not_found, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Group, string(run.Scope), run.Targets, run.Exact, run.Fallback, run.NotFound, run.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "store: record run")
	}
	return &run, nil
}

// ListRuns returns up to limit recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, grp, scope, targets, exact, fallback, not_found, created_at
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "store: list runs")
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var scope string
		if err := rows.Scan(&r.ID, &r.Group, &scope, &r.Targets, &r.Exact, &r.Fallback, &r.NotFound, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "store: scan run")
		}
		r.Scope = model.SourceScope(scope)
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "store: iterate runs")
}
