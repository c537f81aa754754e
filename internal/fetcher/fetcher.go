// Package fetcher downloads NCBI assembly summary files over HTTPS and FTP.
package fetcher

import (
	"context"
	"io"

	"github.com/rotisserie/eris"
)

// ErrNotFound is returned when the remote reports the file does not exist.
// GenBank lacks summary files for some taxonomic groups, so callers may
// treat this as a degraded-but-continuable condition.
var ErrNotFound = eris.New("fetcher: remote file not found")

// Fetcher defines the interface for downloading remote catalog data.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)

	// DownloadToFile fetches the URL and writes it to the given path. Returns bytes written.
	DownloadToFile(ctx context.Context, url string, path string) (int64, error)

	// HeadETag performs a HEAD request and returns the ETag header value.
	HeadETag(ctx context.Context, url string) (string, error)

	// DownloadIfChanged fetches the URL only if the ETag has changed.
	// Returns (body, newETag, changed, error). If not changed, body is nil and changed is false.
	DownloadIfChanged(ctx context.Context, url string, etag string) (io.ReadCloser, string, bool, error)
}
