package asset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/philipparndt/goobj/internal/logging"
	"golang.org/x/sync/errgroup"
)

// HTTPError is returned for a response with a non-2xx status
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.URL, e.StatusCode)
}

// Fetcher downloads asset files over HTTP
type Fetcher struct {
	Client *http.Client
	Log    *slog.Logger
}

// NewFetcher creates a fetcher using client, or http.DefaultClient if nil
func NewFetcher(client *http.Client, log *slog.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Fetcher{Client: client, Log: log}
}

// Get downloads a single URL
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{URL: url, StatusCode: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

// Fetch downloads all entries concurrently and returns them in entry order.
// The first failure cancels the remaining downloads.
func (f *Fetcher) Fetch(ctx context.Context, entries []Entry) ([]File, error) {
	files := make([]File, len(entries))
	g, ctx := errgroup.WithContext(ctx)

	for i, e := range entries {
		g.Go(func() error {
			data, err := f.Get(ctx, e.URL)
			if err != nil {
				f.Log.Error("download failed", "file", e.Name, "url", e.URL, "err", err)
				return fmt.Errorf("failed to download %s: %w", e.Name, err)
			}
			f.Log.Debug("downloaded", "file", e.Name, "bytes", len(data))
			files[i] = File{Name: e.Name, Data: data}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// FetchManifest downloads and decodes the manifest at url, then downloads
// the files of its OBJ format.
func (f *Fetcher) FetchManifest(ctx context.Context, url string) (*Manifest, []File, error) {
	data, err := f.Get(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to request asset: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, nil, err
	}
	entries, err := m.ObjEntries()
	if err != nil {
		return m, nil, err
	}
	f.Log.Info("downloading data files", "asset", m.Attribution(), "files", len(entries))

	files, err := f.Fetch(ctx, entries)
	if err != nil {
		return m, nil, err
	}
	return m, files, nil
}
