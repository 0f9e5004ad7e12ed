// Package pipeline provides the conversion pipeline shared by the command
// and the HTTP server.
//
// # Architecture
//
// A conversion runs in two stages:
//
//  1. Load: decode the movie document and scan its record stream into a
//     dictionary and timelines (see package movie)
//  2. Export: build the SVG document in the requested mode (see package
//     export)
//
// The character graph reuses the load stage and renders the reference graph
// instead (see package depgraph).
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Convert(ctx, input, pipeline.Options{Mode: "js"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Document)
//
// Run individual stages:
//
//	m, err := pipeline.Load(ctx, input, logger)
//	doc, stats, err := pipeline.Export(ctx, m, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hotelzululima/flashback/pkg/cache"
	"github.com/hotelzululima/flashback/pkg/errors"
	"github.com/hotelzululima/flashback/pkg/export"
	"github.com/hotelzululima/flashback/pkg/movie"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultMode is the output mode used when none is given.
const DefaultMode = errors.ModeSVG

// DefaultGraphFormat is the graph format used when none is given.
const DefaultGraphFormat = "svg"

// =============================================================================
// Options
// =============================================================================

// Options configures a conversion.
type Options struct {
	// Mode is "svg" for declarative animation or "js" for runtime replay.
	Mode string `json:"mode,omitempty"`

	// Refresh bypasses cached documents and overwrites them.
	Refresh bool `json:"refresh,omitempty"`

	// TTL overrides the cache lifetime of the document.
	TTL time.Duration `json:"-"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the mode and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateMode(o.Mode); err != nil {
		return err
	}
	o.Mode = strings.ToLower(o.Mode)
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if o.TTL == 0 {
		o.TTL = cache.TTLDocument
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// UseJS reports whether the options select runtime replay.
func (o *Options) UseJS() bool {
	return o.Mode == errors.ModeJS
}

// ExportConfig returns the export configuration for the options.
func (o *Options) ExportConfig() export.Config {
	return export.Config{UseJS: o.UseJS()}
}

// GraphOptions configures a character graph rendering.
type GraphOptions struct {
	// Format is "svg" or "dot".
	Format string `json:"format,omitempty"`

	// Detailed adds kind and metadata lines to node labels.
	Detailed bool `json:"detailed,omitempty"`

	Refresh bool        `json:"refresh,omitempty"`
	Logger  *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks the format and applies defaults.
func (o *GraphOptions) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = DefaultGraphFormat
	}
	if err := errors.ValidateGraphFormat(o.Format); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a conversion.
type Result struct {
	// Document is the serialized SVG document.
	Document []byte

	// Movie is the scanned movie. It is nil when the document came from the
	// cache.
	Movie *movie.Movie

	// Export counts what the export produced. It is zero on a cache hit.
	Export export.Stats

	// Stats contains timing information.
	Stats Stats

	// CacheHit reports whether the document came from the cache.
	CacheHit bool
}

// Stats contains pipeline timings.
type Stats struct {
	LoadTime   time.Duration
	ExportTime time.Duration
}
