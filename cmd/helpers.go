package main

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/genomebank/taxofetch/internal/fetcher"
	"github.com/genomebank/taxofetch/internal/store"
)

// newFetcher builds the download layer for the configured protocol.
func newFetcher() (fetcher.Fetcher, error) {
	switch cfg.Fetch.Protocol {
	case "", "https", "http":
		return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			UserAgent:    cfg.Fetch.UserAgent,
			Timeout:      time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
			MaxRetries:   cfg.Fetch.MaxRetries,
			RateLimiters: fetcher.DefaultRateLimiters(),
		}), nil
	case "ftp":
		return fetcher.NewFTPFetcher(fetcher.FTPOptions{
			Timeout: time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		}), nil
	default:
		return nil, eris.Errorf("unknown fetch protocol %q (valid: https, ftp)", cfg.Fetch.Protocol)
	}
}

// catalogBaseURL aligns the catalog base URL with the configured protocol,
// so fetch.protocol=ftp works without a hand-edited catalog.base_url.
func catalogBaseURL() string {
	base := cfg.Catalog.BaseURL
	if cfg.Fetch.Protocol == "ftp" && strings.HasPrefix(base, "https://") {
		return "ftp://" + strings.TrimPrefix(base, "https://")
	}
	return base
}

// openStore opens (and migrates) the sync-metadata database.
func openStore(ctx context.Context) (*store.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
		return nil, eris.Wrap(err, "create store dir")
	}
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

// readTargets reads one raw species name per line, skipping blank lines and
// `#` comments.
func readTargets(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open input file %s", path)
	}
	defer f.Close() //nolint:errcheck

	var targets []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		targets = append(targets, line)
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrapf(err, "read input file %s", path)
	}
	return targets, nil
}
