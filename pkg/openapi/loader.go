package openapi

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches a document from a Source. The catalog normally reads its
// embedded description through an fs.FS source; file and URL sources exist
// for tooling that points at an external copy.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures source resolution. HTTP loading stays off unless a
// client is supplied or the fallback is enabled, so the default build never
// reaches the network.
type LoaderOptions struct {
	// FileSystem backs fs sources; nil leaves only the OS filesystem.
	FileSystem fs.FS

	// HTTPClient fetches URL sources when set.
	HTTPClient *http.Client

	// AllowHTTPFallback permits URL sources via http.DefaultClient when no
	// client was supplied.
	AllowHTTPFallback bool

	// RequestTimeout bounds fallback fetches; zero means no limit.
	RequestTimeout time.Duration
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem backs fs sources with the given filesystem, typically
// EmbeddedFS.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient enables URL sources using the supplied client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables URL sources via http.DefaultClient, bounded by
// timeout when nonzero.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// NewLoaderOptions folds a set of options into a configuration value.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}
