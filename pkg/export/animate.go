package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/hotelzululima/flashback/pkg/svgdoc"
	"github.com/hotelzululima/flashback/pkg/swf"
	"github.com/hotelzululima/flashback/pkg/timeline"
)

// Timeline exports tl in declarative mode: one group per occupied run, in
// ascending depth order. prefix is prepended to the run group ids so that
// sprite runs never collide with the runs of the movie body.
func (cx *Context) Timeline(prefix string, tl *timeline.Timeline) (*svgdoc.Element, error) {
	a := newAnimator(tl.FrameCount, cx.frameRate)

	g := svgdoc.New("g")
	for _, depth := range tl.Depths() {
		for i, run := range tl.Layers[depth].Runs() {
			for _, obj := range run.Objects {
				if _, err := cx.dict.Lookup(obj.Character); err != nil {
					return nil, err
				}
			}
			el := a.run(run)
			el.Set("id", fmt.Sprintf("%sd_%d_%d", prefix, depth, i))
			g.Append(el)
			cx.stats.Runs++
		}
	}
	return g, nil
}

// firstFrame exports the frame-zero state of tl without any animation.
func (cx *Context) firstFrame(tl *timeline.Timeline) (*svgdoc.Element, error) {
	if err := cx.resolve(tl); err != nil {
		return nil, err
	}
	g := svgdoc.New("g")
	for _, depth := range tl.Depths() {
		if obj := tl.Layers[depth].At(0); obj != nil {
			g.Append(use(obj))
		}
	}
	return g, nil
}

// resolve checks that every character tl places is defined.
func (cx *Context) resolve(tl *timeline.Timeline) error {
	for _, id := range tl.Characters() {
		if _, err := cx.dict.Lookup(id); err != nil {
			return err
		}
	}
	return nil
}

// use places obj with its static transform and opacity.
func use(obj *timeline.Object) *svgdoc.Element {
	el := svgdoc.New("use", "href", "#"+characterID(obj.Character))
	if !obj.Matrix.IsIdentity() {
		el.Set("transform", matrix(obj.Matrix))
	}
	if op := opacity(obj); op != "1" {
		el.Set("opacity", op)
	}
	return el
}

func matrix(m swf.Matrix) string {
	return fmt.Sprintf("matrix(%s %s %s %s %d %d)",
		num(m.ScaleX.Float64()), num(m.RotateSkew0.Float64()),
		num(m.RotateSkew1.Float64()), num(m.ScaleY.Float64()),
		m.TranslateX, m.TranslateY)
}

func opacity(obj *timeline.Object) string {
	if obj.ColorTransform == nil {
		return "1"
	}
	return num(obj.ColorTransform.Opacity())
}

// animator converts runs into discrete SMIL animations looping over the
// whole timeline. A frame f maps to the key time f/frames.
type animator struct {
	frames timeline.Frame
	dur    string
}

func newAnimator(frames timeline.Frame, frameRate float64) *animator {
	return &animator{
		frames: frames,
		dur:    num(float64(frames)/frameRate) + "s",
	}
}

func (a *animator) keyTime(f timeline.Frame) string {
	if a.frames == 0 {
		return "0"
	}
	return num(float64(f) / float64(a.frames))
}

// track is a discrete value sequence. Repeated values are folded and the
// first key is always at time 0.
type track struct {
	values []string
	times  []string
}

func (t *track) add(time, v string) {
	if n := len(t.values); n > 0 && t.values[n-1] == v {
		return
	}
	if len(t.values) == 0 {
		time = "0"
	}
	t.values = append(t.values, v)
	t.times = append(t.times, time)
}

func (t *track) varies() bool {
	return len(t.values) > 1
}

func (a *animator) timing(el *svgdoc.Element, t *track) *svgdoc.Element {
	el.Set("calcMode", "discrete")
	el.Set("values", strings.Join(t.values, ";"))
	el.Set("keyTimes", strings.Join(t.times, ";"))
	el.Set("dur", a.dur)
	el.Set("repeatCount", "indefinite")
	return el
}

// run builds the group of one run. The static attributes describe the
// run's first frame; animations override them while the document plays.
func (a *animator) run(run timeline.Run) *svgdoc.Element {
	first := run.Objects[0]
	u := use(first)
	g := svgdoc.New("g")

	var vis track
	if run.Start > 0 {
		vis.add("0", "hidden")
		g.Set("visibility", "hidden")
	}
	vis.add(a.keyTime(run.Start), "visible")
	if run.End() < a.frames {
		vis.add(a.keyTime(run.End()), "hidden")
	}
	if vis.varies() {
		g.Append(a.timing(svgdoc.New("animate", "attributeName", "visibility"), &vis))
	}

	var href, alpha track
	var transforms [4]track
	for i, obj := range run.Objects {
		t := a.keyTime(run.Start + timeline.Frame(i))
		href.add(t, "#"+characterID(obj.Character))
		alpha.add(t, opacity(obj))
		for k, v := range decompose(obj.Matrix) {
			transforms[k].add(t, v)
		}
	}

	if href.varies() {
		u.Append(a.timing(svgdoc.New("animate", "attributeName", "href"), &href))
	}
	if alpha.varies() {
		u.Append(a.timing(svgdoc.New("animate", "attributeName", "opacity"), &alpha))
	}
	if matrixVaries(run) {
		for k, kind := range transformKinds {
			el := svgdoc.New("animateTransform",
				"attributeName", "transform",
				"type", kind,
			)
			// The first track replaces the static transform, the rest
			// compose onto it.
			if k == 0 {
				el.Set("additive", "replace")
			} else {
				el.Set("additive", "sum")
			}
			u.Append(a.timing(el, &transforms[k]))
		}
	}
	return g.Append(u)
}

func matrixVaries(run timeline.Run) bool {
	for _, obj := range run.Objects[1:] {
		if obj.Matrix != run.Objects[0].Matrix {
			return true
		}
	}
	return false
}

var transformKinds = [4]string{"translate", "rotate", "skewX", "scale"}

// decompose factors m as translate·rotate·skewX·scale and returns the
// argument of each, in that order. Angles are in degrees.
func decompose(m swf.Matrix) [4]string {
	a, b := m.ScaleX.Float64(), m.RotateSkew0.Float64()
	c, d := m.RotateSkew1.Float64(), m.ScaleY.Float64()

	sx := math.Hypot(a, b)
	theta := math.Atan2(b, a)
	sin, cos := math.Sincos(theta)
	sy := d*cos - c*sin
	var skew float64
	if sy != 0 {
		skew = math.Atan((c*cos + d*sin) / sy)
	}
	return [4]string{
		fmt.Sprintf("%d %d", m.TranslateX, m.TranslateY),
		num(theta * 180 / math.Pi),
		num(skew * 180 / math.Pi),
		num(sx) + " " + num(sy),
	}
}
