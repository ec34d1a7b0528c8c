package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/pdftranslate/internal"
	"codeberg.org/snonux/pdftranslate/internal/domain"
)

// HTTPDoer is the subset of *http.Client the fetcher needs
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures download behavior
type Options struct {
	TempDir      string // Directory for downloaded files (default: os.TempDir)
	MaxSizeBytes int64  // Maximum document size (0 = no limit)
	UserAgent    string
}

// DefaultOptions returns the default download options
func DefaultOptions() *Options {
	return &Options{
		UserAgent: "pdftranslate/" + internal.Version,
	}
}

// Fetcher downloads documents over HTTP
type Fetcher struct {
	client  HTTPDoer
	options *Options
}

// NewFetcher creates a new fetcher. A nil client uses http.DefaultClient.
func NewFetcher(client HTTPDoer, options *Options) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if options == nil {
		options = DefaultOptions()
	}
	return &Fetcher{
		client:  client,
		options: options,
	}
}

// Fetch downloads rawURL into a uniquely named temporary PDF file and
// returns its path. The caller owns the file.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", domain.NewNetworkError(rawURL, 0, "invalid request", err)
	}
	if f.options.UserAgent != "" {
		req.Header.Set("User-Agent", f.options.UserAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", domain.NewNetworkError(rawURL, 0, fmt.Sprintf("GET %s failed", rawURL), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", domain.NewNetworkError(rawURL, resp.StatusCode,
			fmt.Sprintf("GET %s returned %s", rawURL, resp.Status), nil)
	}

	pattern := "pdftranslate-" + internal.SanitizeFilename(baseName(rawURL)) + "-*.pdf"
	file, err := os.CreateTemp(f.options.TempDir, pattern)
	if err != nil {
		return "", domain.NewIOError(f.options.TempDir, "failed to create temporary file", err)
	}
	defer file.Close()

	// Copy with size limit if specified
	var reader io.Reader = resp.Body
	if f.options.MaxSizeBytes > 0 {
		reader = io.LimitReader(resp.Body, f.options.MaxSizeBytes+1)
	}

	written, err := io.Copy(file, reader)
	if err != nil {
		os.Remove(file.Name()) // Clean up on error
		return "", domain.NewNetworkError(rawURL, resp.StatusCode, "failed to read response body", err)
	}

	if f.options.MaxSizeBytes > 0 && written > f.options.MaxSizeBytes {
		os.Remove(file.Name())
		return "", domain.NewNetworkError(rawURL, resp.StatusCode,
			fmt.Sprintf("document exceeds maximum size of %d bytes", f.options.MaxSizeBytes), nil)
	}

	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", domain.NewIOError(file.Name(), "failed to close temporary file", err)
	}

	return file.Name(), nil
}

// Resolve returns a local path for source, downloading it first when it
// is an http(s) URL. Local paths and file:// URLs must exist.
func (f *Fetcher) Resolve(ctx context.Context, source string) (path string, downloaded bool, err error) {
	if IsRemote(source) {
		local, err := f.Fetch(ctx, source)
		if err != nil {
			return "", false, err
		}
		return local, true, nil
	}

	path = source
	if strings.HasPrefix(source, "file://") {
		u, err := url.Parse(source)
		if err != nil {
			return "", false, domain.NewDocumentError(source, "invalid file URL", err)
		}
		path = u.Path
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", false, domain.NewDocumentError(path, "cannot access document", err)
	}
	if info.IsDir() {
		return "", false, domain.NewDocumentError(path, "path is a directory, not a file", nil)
	}

	return path, false, nil
}

// IsRemote reports whether source is an http or https URL
func IsRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// baseName returns the document name from a URL without its extension
func baseName(rawURL string) string {
	name := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		name = u.Path
	}
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if name == "" || name == "." || name == "/" {
		return "document"
	}
	if len(name) > 40 {
		name = name[:40]
	}
	return name
}
