// Package fetcher retrieves datasets from local paths, HTTP(S) URLs, and FTP
// URLs behind one interface.
package fetcher

import (
	"context"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/rotisserie/eris"
)

// Fetcher downloads remote data.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}

// Options configures dataset retrieval.
type Options struct {
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	RatePerSec float64
}

// Remote reports whether ref resolves over the network rather than to a
// local file.
func Remote(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", "ftp":
		return true
	}
	return false
}

// Open resolves a dataset reference: plain paths and file:// URLs open the
// local file, http(s):// and ftp:// dispatch to the matching fetcher.
func Open(ctx context.Context, ref string, opts Options) (io.ReadCloser, error) {
	u, err := url.Parse(ref)
	if err != nil || u.Scheme == "" {
		f, err := os.Open(ref)
		if err != nil {
			return nil, eris.Wrapf(err, "fetcher: open %s", ref)
		}
		return f, nil
	}

	switch u.Scheme {
	case "file":
		f, err := os.Open(u.Path)
		if err != nil {
			return nil, eris.Wrapf(err, "fetcher: open %s", u.Path)
		}
		return f, nil
	case "http", "https":
		return NewHTTPFetcher(opts).Download(ctx, ref)
	case "ftp":
		return NewFTPFetcher(FTPOptions{Timeout: opts.Timeout}).Download(ctx, ref)
	default:
		return nil, eris.Errorf("fetcher: unsupported scheme %q", u.Scheme)
	}
}
