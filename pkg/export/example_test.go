package export_test

import (
	"fmt"

	"github.com/hotelzululima/flashback/pkg/export"
	"github.com/hotelzululima/flashback/pkg/shape"
	"github.com/hotelzululima/flashback/pkg/swf"
)

func ExamplePathData() {
	edges := []shape.Edge{
		{From: shape.Point{X: 0, Y: 0}, To: shape.Point{X: 100, Y: 0}},
		{From: shape.Point{X: 100, Y: 0}, To: shape.Point{X: 0, Y: 100}, Control: &shape.Point{X: 100, Y: 100}},
		{From: shape.Point{X: 0, Y: 100}, To: shape.Point{X: 0, Y: 0}},
	}
	fmt.Println(export.PathData(edges, true))
	fmt.Println(export.PathData(edges, false))
	// Output:
	// M0,0 L100,0 Q100,100 0,100 L0,0 Z
	// M0,0 L100,0 Q100,100 0,100 L0,0
}

func ExampleColor() {
	fmt.Println(export.Color(swf.StraightSRgba8{R: 255, G: 128, B: 0, A: 255}))
	// Alpha stays on the 0-255 scale.
	fmt.Println(export.Color(swf.StraightSRgba8{R: 255, G: 128, B: 0, A: 128}))
	// Output:
	// #ff8000
	// rgba(255, 128, 0, 128)
}
