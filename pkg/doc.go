// Package pkg provides the core libraries of flashback, a transcoder from
// decoded vector-animation movies to animated SVG.
//
// # Overview
//
// The pkg directory is organized into four areas:
//
//  1. Input - the decoded movie model ([swf]) and the ad hoc recognizers for
//     records the decoder leaves opaque ([bitmap])
//  2. Model - the character registry ([dictionary]), shape regions ([shape]),
//     layered keyframe timelines ([timeline]) and the single scan that fills
//     them ([movie])
//  3. Output - the element tree ([svgdoc]), the document exporter
//     ([export]) with its replay tables ([export/replay]), and the character
//     reference graph ([depgraph])
//  4. Infrastructure - the cached conversion pipeline ([pipeline]), cache
//     backends ([cache]), error codes ([errors]) and hooks ([observability])
//
// # Architecture
//
// The typical data flow:
//
//	movie JSON
//	     ↓
//	[swf] package (typed header and record stream)
//	     ↓
//	[movie] package (dictionary + top-level and sprite timelines)
//	     ↓
//	[export] package (SMIL markup, or replay tables + runtime script)
//	     ↓
//	SVG document
//
// # Quick Start
//
//	dec, err := swf.Decode(input)
//	if err != nil {
//	    return err
//	}
//	m, err := movie.Load(dec.Movie, logger)
//	if err != nil {
//	    return err // DUPLICATE_CHARACTER
//	}
//	doc, err := export.Export(m, export.Config{UseJS: false}, logger)
//	if err != nil {
//	    return err // UNDEFINED_CHARACTER
//	}
//	os.Stdout.Write(doc.Bytes())
//
// With caching and hooks, use [pipeline.Runner] instead:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Convert(ctx, input, pipeline.Options{Mode: "js"})
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/export/...   # Specific package
//	go test -run Example       # Examples only
//
// [swf]: https://pkg.go.dev/github.com/hotelzululima/flashback/pkg/swf
// [bitmap]: https://pkg.go.dev/github.com/hotelzululima/flashback/pkg/bitmap
// [dictionary]: https://pkg.go.dev/github.com/hotelzululima/flashback/pkg/dictionary
// [shape]: https://pkg.go.dev/github.com/hotelzululima/flashback/pkg/shape
// [timeline]: https://pkg.go.dev/github.com/hotelzululima/flashback/pkg/timeline
// [movie]: https://pkg.go.dev/github.com/hotelzululima/flashback/pkg/movie
// [svgdoc]: https://pkg.go.dev/github.com/hotelzululima/flashback/pkg/svgdoc
// [export]: https://pkg.go.dev/github.com/hotelzululima/flashback/pkg/export
// [export/replay]: https://pkg.go.dev/github.com/hotelzululima/flashback/pkg/export/replay
// [depgraph]: https://pkg.go.dev/github.com/hotelzululima/flashback/pkg/depgraph
// [pipeline]: https://pkg.go.dev/github.com/hotelzululima/flashback/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/hotelzululima/flashback/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/hotelzululima/flashback/pkg/cache
// [errors]: https://pkg.go.dev/github.com/hotelzululima/flashback/pkg/errors
// [observability]: https://pkg.go.dev/github.com/hotelzululima/flashback/pkg/observability
package pkg
