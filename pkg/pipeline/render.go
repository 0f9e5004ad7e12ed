package pipeline

import (
	"context"
	"time"

	"github.com/hotelzululima/flashback/pkg/depgraph"
	"github.com/hotelzululima/flashback/pkg/export"
	"github.com/hotelzululima/flashback/pkg/movie"
	"github.com/hotelzululima/flashback/pkg/observability"
)

// Export builds and serializes the document for m.
func Export(ctx context.Context, m *movie.Movie, opts Options) (data []byte, stats export.Stats, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, stats, err
	}

	hooks := observability.Pipeline()
	hooks.OnExportStart(ctx, opts.Mode)
	start := time.Now()
	defer func() {
		hooks.OnExportComplete(ctx, opts.Mode, len(data), time.Since(start), err)
	}()

	doc, err := export.Export(m, opts.ExportConfig(), opts.Logger)
	if err != nil {
		return nil, stats, err
	}
	return doc.Bytes(), doc.Stats, nil
}

// RenderGraph renders the character reference graph of m.
func RenderGraph(ctx context.Context, m *movie.Movie, opts GraphOptions) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	g := depgraph.Build(m)
	if d := g.Dangling(); len(d) > 0 {
		opts.Logger.Warn("undefined characters referenced", "nodes", d)
	}
	dot := depgraph.ToDOT(g, depgraph.Options{Detailed: opts.Detailed})
	if opts.Format == "dot" {
		return []byte(dot), nil
	}
	return depgraph.RenderSVG(ctx, dot)
}
