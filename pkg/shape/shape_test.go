package shape

import (
	"testing"

	"github.com/hotelzululima/flashback/pkg/swf"
)

func intp(i int) *int { return &i }

func solid(r, g, b uint8) swf.FillStyle {
	return &swf.Solid{Color: swf.StraightSRgba8{R: r, G: g, B: b, A: 0xff}}
}

func TestFromDefinitionTriangle(t *testing.T) {
	def := &swf.DefineShape{
		ID: 1,
		Shape: swf.ShapeDef{
			InitialStyles: swf.ShapeStyles{Fill: []swf.FillStyle{solid(255, 0, 0)}},
			Records: []swf.ShapeRecord{
				&swf.StyleChange{MoveTo: &swf.Vector2D{X: 0, Y: 0}, RightFill: intp(1)},
				&swf.Edge{Delta: swf.Vector2D{X: 100, Y: 0}},
				&swf.Edge{Delta: swf.Vector2D{X: -50, Y: 100}},
				&swf.Edge{Delta: swf.Vector2D{X: -50, Y: -100}},
			},
		},
	}

	s := FromDefinition(def)
	if len(s.Fill) != 1 {
		t.Fatalf("len(Fill) = %d, want 1", len(s.Fill))
	}
	if len(s.Stroke) != 0 {
		t.Errorf("len(Stroke) = %d, want 0", len(s.Stroke))
	}
	path := s.Fill[0].Path
	if len(path) != 3 {
		t.Fatalf("len(Path) = %d, want 3", len(path))
	}
	want := []Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 50, Y: 100}}
	for i, e := range path {
		if e.From != want[i] {
			t.Errorf("edge %d From = %v, want %v", i, e.From, want[i])
		}
	}
	if path[2].To != path[0].From {
		t.Errorf("last To = %v, want first From %v", path[2].To, path[0].From)
	}
}

func TestFromDefinitionLeftFillReversed(t *testing.T) {
	def := &swf.DefineShape{
		Shape: swf.ShapeDef{
			InitialStyles: swf.ShapeStyles{Fill: []swf.FillStyle{solid(0, 0, 255)}},
			Records: []swf.ShapeRecord{
				&swf.StyleChange{MoveTo: &swf.Vector2D{}, LeftFill: intp(1)},
				&swf.Edge{Delta: swf.Vector2D{X: 10}},
			},
		},
	}
	s := FromDefinition(def)
	e := s.Fill[0].Path[0]
	if e.From != (Point{X: 10}) || e.To != (Point{}) {
		t.Errorf("left-fill edge = %v -> %v, want {10 0} -> {0 0}", e.From, e.To)
	}
}

func TestFromDefinitionCurveAndStroke(t *testing.T) {
	line := swf.LineStyle{Width: 20, Fill: solid(0, 0, 0)}
	def := &swf.DefineShape{
		Shape: swf.ShapeDef{
			InitialStyles: swf.ShapeStyles{Line: []swf.LineStyle{line}},
			Records: []swf.ShapeRecord{
				&swf.StyleChange{MoveTo: &swf.Vector2D{X: 5, Y: 5}, LineStyle: intp(1)},
				&swf.Edge{Delta: swf.Vector2D{X: 10, Y: 10}, ControlDelta: &swf.Vector2D{X: 10}},
			},
		},
	}
	s := FromDefinition(def)
	if len(s.Stroke) != 1 {
		t.Fatalf("len(Stroke) = %d, want 1", len(s.Stroke))
	}
	e := s.Stroke[0].Path[0]
	if e.Control == nil || *e.Control != (Point{X: 15, Y: 5}) {
		t.Errorf("Control = %v, want {15 5}", e.Control)
	}
	if e.To != (Point{X: 15, Y: 15}) {
		t.Errorf("To = %v, want {15 15}", e.To)
	}
	if s.Stroke[0].Style.Width != 20 {
		t.Errorf("stroke width = %d, want 20", s.Stroke[0].Style.Width)
	}
}

func TestFromDefinitionNewStyles(t *testing.T) {
	def := &swf.DefineShape{
		Shape: swf.ShapeDef{
			InitialStyles: swf.ShapeStyles{Fill: []swf.FillStyle{solid(1, 1, 1)}},
			Records: []swf.ShapeRecord{
				&swf.StyleChange{MoveTo: &swf.Vector2D{}, RightFill: intp(1)},
				&swf.Edge{Delta: swf.Vector2D{X: 1}},
				&swf.StyleChange{
					NewStyles: &swf.ShapeStyles{Fill: []swf.FillStyle{solid(2, 2, 2)}},
					RightFill: intp(1),
				},
				&swf.Edge{Delta: swf.Vector2D{Y: 1}},
			},
		},
	}
	s := FromDefinition(def)
	if len(s.Fill) != 2 {
		t.Fatalf("len(Fill) = %d, want 2", len(s.Fill))
	}
	second := s.Fill[1].Style.(*swf.Solid)
	if second.Color.R != 2 {
		t.Errorf("second region colour = %v, want the new style table's fill", second.Color)
	}
	if len(s.Fill[1].Path) != 1 || s.Fill[1].Path[0].From != (Point{X: 1}) {
		t.Errorf("second region path = %v, want one edge from {1 0}", s.Fill[1].Path)
	}
}

func TestChain(t *testing.T) {
	// Two squares' worth of edges, shuffled.
	edges := []Edge{
		{From: Point{X: 0, Y: 0}, To: Point{X: 1, Y: 0}},
		{From: Point{X: 5, Y: 5}, To: Point{X: 6, Y: 5}},
		{From: Point{X: 1, Y: 1}, To: Point{X: 0, Y: 0}},
		{From: Point{X: 1, Y: 0}, To: Point{X: 1, Y: 1}},
		{From: Point{X: 6, Y: 5}, To: Point{X: 5, Y: 5}},
	}
	got := Chain(edges)
	if len(got) != len(edges) {
		t.Fatalf("len = %d, want %d", len(got), len(edges))
	}
	want := []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 5, Y: 5}, {X: 6, Y: 5}}
	for i, e := range got {
		if e.From != want[i] {
			t.Errorf("edge %d From = %v, want %v", i, e.From, want[i])
		}
	}
}
