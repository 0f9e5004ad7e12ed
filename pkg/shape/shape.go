// Package shape converts shape definitions into ordered fill and stroke
// regions made of directed edges.
//
// A shape record stream draws each edge once, tagged with up to two fills
// (one on each side) and one line style. [FromDefinition] splits that stream
// into one edge list per style: edges keep their direction for the right
// fill and the line style, and are reversed for the left fill so that every
// fill region is traversed with the filled side consistently on the same
// hand. Fill edge lists are then re-chained so that connected edges follow
// each other and closed outlines come out as closed subpaths.
package shape

import (
	"github.com/hotelzululima/flashback/pkg/swf"
)

// Point is a position in twips.
type Point = swf.Vector2D

// Edge is a straight segment, or a quadratic curve when Control is set.
type Edge struct {
	From    Point
	To      Point
	Control *Point
}

// Reversed returns the same edge traversed from To to From.
func (e Edge) Reversed() Edge {
	return Edge{From: e.To, To: e.From, Control: e.Control}
}

// Fill is one filled region.
type Fill struct {
	Style swf.FillStyle
	Path  []Edge
}

// Stroke is one stroked region.
type Stroke struct {
	Style *swf.LineStyle
	Path  []Edge
}

// Shape is the geometric description of a shape character.
type Shape struct {
	Bounds swf.Rect
	Fill   []Fill
	Stroke []Stroke
}

// FromDefinition builds a Shape from a DefineShape record.
func FromDefinition(def *swf.DefineShape) *Shape {
	b := newBuilder(def.Shape.InitialStyles)
	for _, rec := range def.Shape.Records {
		switch r := rec.(type) {
		case *swf.StyleChange:
			b.styleChange(r)
		case *swf.Edge:
			b.edge(r)
		}
	}
	s := b.finish()
	s.Bounds = def.Bounds
	return s
}

type builder struct {
	fills   []Fill
	strokes []Stroke

	// Offsets of the active style table within fills/strokes.
	fillBase, lineBase int

	pen                        Point
	leftFill, rightFill, lineS int
}

func newBuilder(styles swf.ShapeStyles) *builder {
	b := &builder{}
	b.addStyles(styles)
	return b
}

func (b *builder) addStyles(styles swf.ShapeStyles) {
	b.fillBase = len(b.fills)
	b.lineBase = len(b.strokes)
	for _, f := range styles.Fill {
		b.fills = append(b.fills, Fill{Style: f})
	}
	for i := range styles.Line {
		b.strokes = append(b.strokes, Stroke{Style: &styles.Line[i]})
	}
}

func (b *builder) styleChange(r *swf.StyleChange) {
	if r.NewStyles != nil {
		b.addStyles(*r.NewStyles)
		b.leftFill, b.rightFill, b.lineS = 0, 0, 0
	}
	if r.MoveTo != nil {
		b.pen = *r.MoveTo
	}
	if r.LeftFill != nil {
		b.leftFill = *r.LeftFill
	}
	if r.RightFill != nil {
		b.rightFill = *r.RightFill
	}
	if r.LineStyle != nil {
		b.lineS = *r.LineStyle
	}
}

func (b *builder) edge(r *swf.Edge) {
	e := Edge{From: b.pen, To: b.pen.Add(r.Delta)}
	if r.ControlDelta != nil {
		c := b.pen.Add(*r.ControlDelta)
		e.Control = &c
	}
	b.pen = e.To

	if i, ok := b.fillIndex(b.rightFill); ok {
		b.fills[i].Path = append(b.fills[i].Path, e)
	}
	if i, ok := b.fillIndex(b.leftFill); ok {
		b.fills[i].Path = append(b.fills[i].Path, e.Reversed())
	}
	if b.lineS > 0 && b.lineBase+b.lineS-1 < len(b.strokes) {
		i := b.lineBase + b.lineS - 1
		b.strokes[i].Path = append(b.strokes[i].Path, e)
	}
}

func (b *builder) fillIndex(style int) (int, bool) {
	if style <= 0 {
		return 0, false
	}
	i := b.fillBase + style - 1
	return i, i < len(b.fills)
}

func (b *builder) finish() *Shape {
	s := &Shape{}
	for _, f := range b.fills {
		if len(f.Path) == 0 {
			continue
		}
		f.Path = Chain(f.Path)
		s.Fill = append(s.Fill, f)
	}
	for _, st := range b.strokes {
		if len(st.Path) == 0 {
			continue
		}
		s.Stroke = append(s.Stroke, st)
	}
	return s
}

// Chain reorders edges so that, wherever possible, each edge starts where the
// previous one ended. Chains are started in input order, and within a chain
// the earliest unused matching edge is taken next.
func Chain(edges []Edge) []Edge {
	starts := make(map[Point][]int, len(edges))
	for i, e := range edges {
		starts[e.From] = append(starts[e.From], i)
	}
	used := make([]bool, len(edges))
	out := make([]Edge, 0, len(edges))

	next := func(p Point) (int, bool) {
		idx := starts[p]
		for len(idx) > 0 && used[idx[0]] {
			idx = idx[1:]
		}
		starts[p] = idx
		if len(idx) == 0 {
			return 0, false
		}
		return idx[0], true
	}

	for i := range edges {
		if used[i] {
			continue
		}
		for j, ok := i, true; ok; j, ok = next(edges[j].To) {
			used[j] = true
			out = append(out, edges[j])
		}
	}
	return out
}
