// Package export turns a scanned movie into an SVG document.
//
// Every dictionary character becomes one reusable definition with id
// "c_{id}". The top-level timeline is then exported in one of two modes,
// selected once per export by [Config.UseJS]:
//
//   - Declarative: each maximal occupied run of each depth becomes its own
//     group holding a <use> of the placed character, with discrete SMIL
//     animations for visibility, transform, character and opacity. Nothing
//     is carried between two runs of the same depth.
//   - Runtime replay: the body group is left empty and a script block
//     carries the keyframe tables of the movie and of every sprite, the
//     frame rate, and the replay runtime (see package replay).
//
// Export keeps its per-call state in a [Context]: the definitions collected
// so far and the gradient id counter. A Context is never shared between
// exports.
package export

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/hotelzululima/flashback/pkg/dictionary"
	"github.com/hotelzululima/flashback/pkg/export/replay"
	"github.com/hotelzululima/flashback/pkg/movie"
	"github.com/hotelzululima/flashback/pkg/svgdoc"
	"github.com/hotelzululima/flashback/pkg/swf"
)

// Config selects the output mode.
type Config struct {
	// UseJS selects runtime replay instead of declarative animation.
	UseJS bool
}

// Stats counts what an export produced.
type Stats struct {
	Characters    int
	Gradients     int
	FallbackFills int
	Runs          int
	Sprites       int
}

// Document is the result of [Export].
type Document struct {
	Root  *svgdoc.Element
	Stats Stats
}

// Bytes serializes the document.
func (d *Document) Bytes() []byte {
	return d.Root.Bytes()
}

// Context is the mutable state of one export call.
type Context struct {
	cfg       Config
	frameRate float64
	dict      *dictionary.Dictionary
	logger    *log.Logger

	defs           *svgdoc.Element
	nextGradientID int
	stats          Stats
}

// NewContext returns the export state for m. logger may be nil.
func NewContext(m *movie.Movie, cfg Config, logger *log.Logger) *Context {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Context{
		cfg:       cfg,
		frameRate: frameRate(m.FrameRate()),
		dict:      m.Dictionary,
		logger:    logger,
		defs:      svgdoc.New("defs"),
	}
}

// frameRate substitutes one frame per second for a zero rate so that frame
// times stay finite.
func frameRate(r float64) float64 {
	if r <= 0 {
		return 1
	}
	return r
}

func (cx *Context) addDef(el *svgdoc.Element) {
	cx.defs.Append(el)
}

// Export renders m. It fails only when the movie references a character that
// was never defined.
func Export(m *movie.Movie, cfg Config, logger *log.Logger) (*Document, error) {
	cx := NewContext(m, cfg, logger)
	return cx.Document(m)
}

// Document assembles the full document for m.
func (cx *Context) Document(m *movie.Movie) (*Document, error) {
	frame := m.Header.FrameSize
	var sprites []replay.Sprite

	for _, id := range cx.dict.IDs() {
		c, _ := cx.dict.Lookup(id)
		el, err := cx.Character(id, c)
		if err != nil {
			return nil, err
		}
		cx.addDef(el.Set("id", characterID(id)))
		cx.stats.Characters++

		if s, ok := c.(dictionary.Sprite); ok {
			cx.stats.Sprites++
			if cx.cfg.UseJS {
				sprites = append(sprites, replay.Sprite{ID: id, Table: replay.NewTable(s.Timeline)})
			}
		}
	}

	root := svgdoc.New("svg",
		"xmlns", svgdoc.NamespaceSVG,
		"xmlns:xlink", svgdoc.NamespaceXLink,
	)
	root.Setf("viewBox", "%d %d %d %d", frame.XMin, frame.YMin, frame.Width(), frame.Height())
	root.Set("style", "background: black")
	root.Append(svgdoc.New("rect",
		"width", "100%",
		"height", "100%",
		"fill", Background(m.Background),
	))

	cx.addDef(svgdoc.New("clipPath", "id", "viewBox_clip").Append(clipRect(frame)))

	var body *svgdoc.Element
	if cx.cfg.UseJS {
		if err := cx.resolve(m.Timeline); err != nil {
			return nil, err
		}
		body = svgdoc.New("g")
	} else {
		var err error
		if body, err = cx.Timeline("", m.Timeline); err != nil {
			return nil, err
		}
	}
	body.Set("id", "body")
	body.Set("clip-path", "url(#viewBox_clip)")
	root.Append(cx.defs, body)

	if cx.cfg.UseJS {
		script := &replay.Script{
			Timeline:  replay.NewTable(m.Timeline),
			Sprites:   sprites,
			FrameRate: cx.frameRate,
		}
		code, err := script.Code()
		if err != nil {
			return nil, err
		}
		root.Append(&svgdoc.Element{
			Name:  "script",
			Attrs: []svgdoc.Attr{{Name: "type", Value: "application/ecmascript"}},
			CDATA: code,
		})
	}

	cx.logger.Debug("exported document",
		"characters", cx.stats.Characters,
		"gradients", cx.stats.Gradients,
		"runs", cx.stats.Runs,
		"js", cx.cfg.UseJS)
	return &Document{Root: root, Stats: cx.stats}, nil
}

func clipRect(r swf.Rect) *svgdoc.Element {
	el := svgdoc.New("rect")
	el.Setf("x", "%d", r.XMin)
	el.Setf("y", "%d", r.YMin)
	el.Setf("width", "%d", r.Width())
	el.Setf("height", "%d", r.Height())
	return el
}
