package timeline

import (
	"math"

	"github.com/hotelzululima/flashback/pkg/swf"
)

// MaxFrames is the most frames a timeline can hold.
const MaxFrames = math.MaxUint16

// Builder accumulates placement events into a [Timeline]. The same builder
// logic serves the top-level movie and every nested sprite.
type Builder struct {
	frame Frame

	// display is the display list as of the current frame.
	display map[Depth]*Object
	// removed holds depths emptied since the last advance.
	removed map[Depth]struct{}

	layers  map[Depth]*Layer
	labels  map[Frame][]string
	actions []Action
}

// NewBuilder returns a builder positioned at frame 0.
func NewBuilder() *Builder {
	return &Builder{
		display: make(map[Depth]*Object),
		removed: make(map[Depth]struct{}),
		layers:  make(map[Depth]*Layer),
		labels:  make(map[Frame][]string),
	}
}

// Frame returns the index of the frame currently being recorded.
func (b *Builder) Frame() Frame {
	return b.frame
}

// Place records or overwrites the object at p.Depth for the current frame.
//
// Without IsUpdate the depth receives a fresh object built from the record.
// With IsUpdate the fields present in the record overwrite those of the
// object already at the depth; an update of an empty depth that names a
// character places it, and one that does not is ignored.
func (b *Builder) Place(p *swf.PlaceObject) {
	depth := Depth(p.Depth)
	cur := b.display[depth]

	var obj Object
	switch {
	case p.IsUpdate && cur != nil:
		obj = *cur
	case p.CharacterID == nil:
		return
	default:
		obj = Object{Matrix: swf.IdentityMatrix()}
	}

	if p.CharacterID != nil {
		obj.Character = *p.CharacterID
	}
	if p.Matrix != nil {
		obj.Matrix = *p.Matrix
	}
	if p.ColorTransform != nil {
		ct := *p.ColorTransform
		obj.ColorTransform = &ct
	}
	if p.Ratio != nil {
		obj.Ratio = p.Ratio
	}
	if p.Name != nil {
		obj.Name = p.Name
	}
	if p.ClipDepth != nil {
		obj.ClipDepth = p.ClipDepth
	}

	b.display[depth] = &obj
	delete(b.removed, depth)
}

// Remove marks depth unoccupied starting at the current frame.
func (b *Builder) Remove(depth Depth) {
	if _, ok := b.display[depth]; !ok {
		return
	}
	delete(b.display, depth)
	b.removed[depth] = struct{}{}
}

// RecordAction attaches an opaque action payload to the current frame.
func (b *Builder) RecordAction(data []byte) {
	b.actions = append(b.actions, Action{Frame: b.frame, Data: data})
}

// RecordLabel attaches name to the current frame.
func (b *Builder) RecordLabel(name string) {
	b.labels[b.frame] = append(b.labels[b.frame], name)
}

// AdvanceFrame commits the display list as the snapshot of the current frame
// and moves on to the next one. Once MaxFrames frames are committed it
// commits nothing and reports false.
func (b *Builder) AdvanceFrame() bool {
	if b.frame == MaxFrames {
		return false
	}
	for depth, obj := range b.display {
		snapshot := *obj
		b.layer(depth).Frames[b.frame] = &snapshot
	}
	for depth := range b.removed {
		b.layer(depth).Frames[b.frame] = nil
	}
	clear(b.removed)
	b.frame++
	return true
}

func (b *Builder) layer(depth Depth) *Layer {
	l, ok := b.layers[depth]
	if !ok {
		l = &Layer{Frames: make(map[Frame]*Object)}
		b.layers[depth] = l
	}
	return l
}

// Finish seals the builder. The frame count is the declared count, raised to
// the number of committed frames when the stream advanced further than
// declared. Frames declared but never advanced are simply absent.
// Placements recorded after the last advance are discarded, as are labels
// and actions that fall outside the frame count.
func (b *Builder) Finish(declared Frame) *Timeline {
	count := declared
	if b.frame > count {
		count = b.frame
	}
	labels := make(map[Frame][]string, len(b.labels))
	for f, names := range b.labels {
		if f < count {
			labels[f] = names
		}
	}
	var actions []Action
	for _, a := range b.actions {
		if a.Frame < count {
			actions = append(actions, a)
		}
	}
	t := &Timeline{
		FrameCount: count,
		Layers:     b.layers,
		Labels:     labels,
		Actions:    actions,
	}
	*b = *NewBuilder()
	return t
}
