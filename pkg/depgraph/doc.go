// Package depgraph draws which characters of a movie reference which.
//
// # Overview
//
// [Build] walks a scanned movie and records an edge for every reference a
// document export will resolve: the movie and each sprite to the characters
// their timelines place, and each shape to the bitmaps its fills use.
// Dangling references show up as nodes marked unknown, which makes the graph
// a quick way to see why an export fails with UNDEFINED_CHARACTER.
//
// # Usage
//
//	g := depgraph.Build(m)
//	dot := depgraph.ToDOT(g, depgraph.Options{Detailed: true})
//	svg, err := depgraph.RenderSVG(ctx, dot)
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz] in process; the DOT source
// can also be fed to external Graphviz tools.
package depgraph
