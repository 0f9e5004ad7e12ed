package movie

import (
	"testing"

	"github.com/hotelzululima/flashback/pkg/dictionary"
	"github.com/hotelzululima/flashback/pkg/errors"
	"github.com/hotelzululima/flashback/pkg/swf"
	"github.com/hotelzululima/flashback/pkg/timeline"
)

func ptr[T any](v T) *T { return &v }

func triangle(id swf.CharacterID) *swf.DefineShape {
	return &swf.DefineShape{
		ID: id,
		Shape: swf.ShapeDef{
			InitialStyles: swf.ShapeStyles{
				Fill: []swf.FillStyle{&swf.Solid{Color: swf.StraightSRgba8{R: 0xff, A: 0xff}}},
			},
			Records: []swf.ShapeRecord{
				&swf.StyleChange{MoveTo: &swf.Vector2D{}, RightFill: ptr(1)},
				&swf.Edge{Delta: swf.Vector2D{X: 100}},
				&swf.Edge{Delta: swf.Vector2D{X: -100, Y: 100}},
				&swf.Edge{Delta: swf.Vector2D{Y: -100}},
			},
		},
	}
}

func TestLoadTopLevel(t *testing.T) {
	m := &swf.Movie{
		Header: swf.Header{FrameRate: 24 << 8, FrameCount: 2},
		Tags: []swf.Tag{
			&swf.SetBackgroundColor{Color: swf.SRgb8{R: 1, G: 2, B: 3}},
			triangle(1),
			&swf.PlaceObject{Depth: 1, CharacterID: ptr(swf.CharacterID(1))},
			&swf.ShowFrame{},
			&swf.RemoveObject{Depth: 1},
			&swf.ShowFrame{},
		},
	}
	got, err := Load(m, nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Background != (swf.SRgb8{R: 1, G: 2, B: 3}) {
		t.Errorf("Background = %+v", got.Background)
	}
	if got.FrameRate() != 24 {
		t.Errorf("FrameRate() = %v, want 24", got.FrameRate())
	}
	if got.Timeline.FrameCount != 2 {
		t.Errorf("FrameCount = %d, want 2", got.Timeline.FrameCount)
	}
	layer := got.Timeline.Layers[1]
	if layer == nil || layer.At(0) == nil || layer.At(1) != nil {
		t.Fatalf("layer 1 = %+v, want occupied at 0 only", layer)
	}
	if _, err := got.Dictionary.Lookup(1); err != nil {
		t.Errorf("Lookup(1) error: %v", err)
	}
}

func TestLoadDefaultBackground(t *testing.T) {
	got, err := Load(&swf.Movie{}, nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Background != (swf.SRgb8{}) {
		t.Errorf("Background = %+v, want black", got.Background)
	}
}

func TestLoadNestedSprite(t *testing.T) {
	m := &swf.Movie{
		Header: swf.Header{FrameCount: 1},
		Tags: []swf.Tag{
			triangle(1),
			&swf.DefineSprite{ID: 2, FrameCount: 3, Tags: []swf.Tag{
				&swf.PlaceObject{Depth: 1, CharacterID: ptr(swf.CharacterID(1))},
				&swf.Unknown{Code: timeline.FrameLabelCode, Data: []byte("spin\x00")},
				&swf.ShowFrame{},
				&swf.ShowFrame{},
				triangle(9),
			}},
			&swf.PlaceObject{Depth: 1, CharacterID: ptr(swf.CharacterID(2))},
			&swf.ShowFrame{},
		},
	}
	got, err := Load(m, nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	c, err := got.Dictionary.Lookup(2)
	if err != nil {
		t.Fatalf("Lookup(2) error: %v", err)
	}
	sprite, ok := c.(dictionary.Sprite)
	if !ok {
		t.Fatalf("Lookup(2) = %T, want Sprite", c)
	}
	if sprite.FrameCount != 3 {
		t.Errorf("sprite FrameCount = %d, want 3", sprite.FrameCount)
	}
	if runs := sprite.Layers[1].Runs(); len(runs) != 1 || len(runs[0].Objects) != 2 {
		t.Errorf("sprite runs = %+v, want one run of two frames", runs)
	}
	if f, ok := sprite.Label("spin"); !ok || f != 0 {
		t.Errorf("Label(spin) = %d, %v", f, ok)
	}
	if _, err := got.Dictionary.Lookup(9); err == nil {
		t.Error("definition inside a sprite was bound, want it skipped")
	}
	if got.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", got.Skipped)
	}
	// Top-level timeline is independent from the sprite's.
	if got.Timeline.FrameCount != 1 || got.Timeline.Layers[1].At(0).Character != 2 {
		t.Errorf("top-level timeline = %+v", got.Timeline)
	}
}

func TestLoadSpriteWithIDZero(t *testing.T) {
	m := &swf.Movie{
		Header: swf.Header{FrameCount: 1},
		Tags: []swf.Tag{
			&swf.SetBackgroundColor{Color: swf.SRgb8{B: 0x40}},
			triangle(1),
			&swf.DefineSprite{ID: 0, FrameCount: 1, Tags: []swf.Tag{
				&swf.SetBackgroundColor{Color: swf.SRgb8{R: 0xff}},
				triangle(5),
				&swf.PlaceObject{Depth: 1, CharacterID: ptr(swf.CharacterID(1))},
				&swf.ShowFrame{},
			}},
			&swf.PlaceObject{Depth: 1, CharacterID: ptr(swf.CharacterID(0))},
			&swf.ShowFrame{},
		},
	}
	got, err := Load(m, nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Background != (swf.SRgb8{B: 0x40}) {
		t.Errorf("Background = %+v, want the top-level colour", got.Background)
	}
	if _, err := got.Dictionary.Lookup(5); err == nil {
		t.Error("definition inside sprite 0 was bound, want it skipped")
	}
	if got.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", got.Skipped)
	}
	c, err := got.Dictionary.Lookup(0)
	if err != nil {
		t.Fatalf("Lookup(0) error: %v", err)
	}
	if s, ok := c.(dictionary.Sprite); !ok || s.Layers[1].At(0).Character != 1 {
		t.Errorf("Lookup(0) = %+v, want a sprite placing character 1", c)
	}
}

func TestLoadDuplicateIsFatal(t *testing.T) {
	m := &swf.Movie{Tags: []swf.Tag{triangle(1), triangle(1)}}
	_, err := Load(m, nil)
	if !errors.Is(err, errors.ErrCodeDuplicateCharacter) {
		t.Fatalf("Load() error = %v, want %s", err, errors.ErrCodeDuplicateCharacter)
	}
}

func TestLoadSkipsUnknown(t *testing.T) {
	m := &swf.Movie{Tags: []swf.Tag{
		&swf.Unknown{Code: 999, Data: []byte{1, 2, 3}},
		&swf.Unsupported{Type: "DefineFont"},
		&swf.Unknown{Code: 21, Data: []byte{1, 0}},
		&swf.ShowFrame{},
	}}
	got, err := Load(m, nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", got.Skipped)
	}
	if got.Dictionary.Len() != 0 {
		t.Errorf("Dictionary.Len() = %d, want 0", got.Dictionary.Len())
	}
}
