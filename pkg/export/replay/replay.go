// Package replay serializes timelines into keyframe tables for the runtime
// script that replays them in the browser.
//
// A [Table] lists, per depth, one slot per frame: null when the depth is
// unoccupied, otherwise the placed character, its matrix and its opacity.
// The runtime steps every table one frame at a time on a fixed-rate clock.
// Each sprite table runs on its own clock, independent of the frame its
// parent is showing.
package replay

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hotelzululima/flashback/pkg/swf"
	"github.com/hotelzululima/flashback/pkg/timeline"
)

// Runtime is the replay script appended after the tables.
//
//go:embed runtime.js
var Runtime string

// Slot is the state of one depth at one frame.
type Slot struct {
	Character swf.CharacterID `json:"character"`
	// Matrix is [a, b, c, d, tx, ty].
	Matrix  [6]float64 `json:"matrix"`
	Opacity *float64   `json:"opacity,omitempty"`
	Name    *string    `json:"name,omitempty"`
}

// Table is the keyframe table of one timeline.
type Table struct {
	FrameCount int                        `json:"frame_count"`
	Labels     map[string]int             `json:"labels"`
	Layers     map[timeline.Depth][]*Slot `json:"layers"`
}

// NewTable builds the table of tl.
func NewTable(tl *timeline.Timeline) *Table {
	t := &Table{
		FrameCount: int(tl.FrameCount),
		Labels:     make(map[string]int),
		Layers:     make(map[timeline.Depth][]*Slot, len(tl.Layers)),
	}
	for f, names := range tl.Labels {
		for _, name := range names {
			if prev, ok := t.Labels[name]; !ok || int(f) < prev {
				t.Labels[name] = int(f)
			}
		}
	}
	for depth, layer := range tl.Layers {
		slots := make([]*Slot, tl.FrameCount)
		for f := range slots {
			if obj := layer.At(timeline.Frame(f)); obj != nil {
				slots[f] = newSlot(obj)
			}
		}
		t.Layers[depth] = slots
	}
	return t
}

func newSlot(obj *timeline.Object) *Slot {
	m := obj.Matrix
	s := &Slot{
		Character: obj.Character,
		Matrix: [6]float64{
			m.ScaleX.Float64(), m.RotateSkew0.Float64(),
			m.RotateSkew1.Float64(), m.ScaleY.Float64(),
			float64(m.TranslateX), float64(m.TranslateY),
		},
		Name: obj.Name,
	}
	if obj.ColorTransform != nil {
		if op := obj.ColorTransform.Opacity(); op != 1 {
			s.Opacity = &op
		}
	}
	return s
}

// Occupied returns the number of non-null slots of depth.
func (t *Table) Occupied(depth timeline.Depth) int {
	n := 0
	for _, s := range t.Layers[depth] {
		if s != nil {
			n++
		}
	}
	return n
}

// Sprite pairs a sprite character with its table.
type Sprite struct {
	ID    swf.CharacterID
	Table *Table
}

// Script is the content of the document's script block.
type Script struct {
	Timeline  *Table
	Sprites   []Sprite
	FrameRate float64
}

// Code renders the script: the movie table, the sprite tables indexed by
// character id, the frame rate and the runtime.
func (s *Script) Code() (string, error) {
	var sb strings.Builder

	top, err := json.Marshal(s.Timeline)
	if err != nil {
		return "", fmt.Errorf("encode timeline: %w", err)
	}
	fmt.Fprintf(&sb, "var timeline = %s;\n", top)
	sb.WriteString("var sprites = [];\n")
	for _, sp := range s.Sprites {
		data, err := json.Marshal(sp.Table)
		if err != nil {
			return "", fmt.Errorf("encode sprite %d: %w", sp.ID, err)
		}
		fmt.Fprintf(&sb, "sprites[%d] = %s;\n", sp.ID, data)
	}
	fmt.Fprintf(&sb, "var frame_rate = %s;\n\n", formatRate(s.FrameRate))
	sb.WriteString(Runtime)
	return sb.String(), nil
}

func formatRate(r float64) string {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
