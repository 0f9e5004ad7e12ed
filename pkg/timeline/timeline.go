// Package timeline models the per-depth, per-frame placement history of a
// movie or of a nested sprite, and builds it from a placement record stream.
//
// # Model
//
// A [Timeline] maps each [Depth] to a [Layer]. A Layer maps frame indices to
// object snapshots: a frame is occupied when its snapshot is non-nil, and
// unoccupied when the frame is absent or holds nil (an explicit removal).
// Occupied frames group into maximal contiguous [Run]s; a run ends at a
// removal, at a gap, or at the last frame. A later placement after a gap
// starts a new run with nothing carried over from the previous one.
//
// # Building
//
// A [Builder] consumes placement, removal, action, label and frame-advance
// events in stream order. Everything recorded between two calls to
// [Builder.AdvanceFrame] belongs to the frame closed by the second call.
//
//	b := timeline.NewBuilder()
//	b.Place(&swf.PlaceObject{Depth: 1, CharacterID: &id})
//	b.AdvanceFrame()
//	tl := b.Finish(1)
package timeline

import (
	"maps"
	"slices"

	"github.com/hotelzululima/flashback/pkg/swf"
)

// Frame is a zero-based frame index.
type Frame uint16

// Depth orders layers; higher depths paint later.
type Depth uint16

// Object is the state of one placed object at one frame.
type Object struct {
	Character      swf.CharacterID
	Matrix         swf.Matrix
	ColorTransform *swf.ColorTransform
	Ratio          *uint16
	Name           *string
	ClipDepth      *uint16
}

// Layer is the occupancy history of one depth.
type Layer struct {
	Frames map[Frame]*Object
}

// At returns the object at frame f, or nil when the depth is unoccupied.
func (l *Layer) At(f Frame) *Object {
	return l.Frames[f]
}

// Run is a maximal span of consecutive occupied frames.
type Run struct {
	Start   Frame
	Objects []*Object
}

// End returns the first frame after the run.
func (r Run) End() Frame {
	return r.Start + Frame(len(r.Objects))
}

// Runs splits the layer into its maximal contiguous occupied runs, in frame
// order.
func (l *Layer) Runs() []Run {
	var runs []Run
	var cur *Run
	for _, f := range slices.Sorted(maps.Keys(l.Frames)) {
		obj := l.Frames[f]
		if obj == nil {
			cur = nil
			continue
		}
		if cur != nil && cur.End() == f {
			cur.Objects = append(cur.Objects, obj)
			continue
		}
		runs = append(runs, Run{Start: f, Objects: []*Object{obj}})
		cur = &runs[len(runs)-1]
	}
	return runs
}

// Action is an opaque action payload recorded at a frame. It is stored and
// never executed.
type Action struct {
	Frame Frame
	Data  []byte
}

// Timeline is the sealed result of a [Builder].
type Timeline struct {
	FrameCount Frame
	Layers     map[Depth]*Layer
	Labels     map[Frame][]string
	Actions    []Action
}

// Depths returns the layer depths in ascending (painting) order.
func (t *Timeline) Depths() []Depth {
	return slices.Sorted(maps.Keys(t.Layers))
}

// Characters returns the distinct characters referenced by any frame of any
// layer, in ascending order.
func (t *Timeline) Characters() []swf.CharacterID {
	seen := make(map[swf.CharacterID]struct{})
	for _, l := range t.Layers {
		for _, obj := range l.Frames {
			if obj != nil {
				seen[obj.Character] = struct{}{}
			}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Label returns the frame carrying name, if any.
func (t *Timeline) Label(name string) (Frame, bool) {
	for _, f := range slices.Sorted(maps.Keys(t.Labels)) {
		if slices.Contains(t.Labels[f], name) {
			return f, true
		}
	}
	return 0, false
}
