// Package source opens trade documents from local files or S3.
// It is read-only: documents are fetched for one analysis run and never stored.
package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Loader opens the trade document named by uri.
type Loader interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

// Router dispatches to a loader by URI scheme. URIs without a scheme are
// local paths.
type Router struct {
	loaders map[string]Loader
	log     zerolog.Logger
}

// NewRouter creates a router that serves local paths with files.
func NewRouter(files Loader, log zerolog.Logger) *Router {
	r := &Router{
		loaders: make(map[string]Loader),
		log:     log.With().Str("client", "source").Logger(),
	}
	r.Register("file", files)
	return r
}

// Register serves scheme with loader, replacing any previous loader.
func (r *Router) Register(scheme string, loader Loader) {
	r.loaders[strings.ToLower(scheme)] = loader
}

// Open implements Loader.
func (r *Router) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	scheme := schemeOf(uri)
	loader, ok := r.loaders[scheme]
	if !ok {
		return nil, fmt.Errorf("unsupported document source %q", scheme)
	}

	r.log.Debug().Str("scheme", scheme).Str("uri", uri).Msg("Opening trade document")
	return loader.Open(ctx, uri)
}

// schemeOf returns the lower-cased URI scheme, or "file" when there is none.
// Single-letter schemes are treated as Windows drive letters.
func schemeOf(uri string) string {
	i := strings.Index(uri, "://")
	if i <= 1 {
		return "file"
	}
	return strings.ToLower(uri[:i])
}
