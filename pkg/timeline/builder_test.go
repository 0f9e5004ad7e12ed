package timeline

import (
	"testing"

	"github.com/hotelzululima/flashback/pkg/swf"
)

func place(depth uint16, id swf.CharacterID) *swf.PlaceObject {
	return &swf.PlaceObject{Depth: depth, CharacterID: &id}
}

func move(depth uint16, tx int32) *swf.PlaceObject {
	m := swf.IdentityMatrix()
	m.TranslateX = tx
	return &swf.PlaceObject{IsUpdate: true, Depth: depth, Matrix: &m}
}

func TestPlaceThenAdvance(t *testing.T) {
	b := NewBuilder()
	b.AdvanceFrame()
	b.AdvanceFrame()
	b.Place(place(3, 7))
	b.AdvanceFrame()
	tl := b.Finish(3)

	layer, ok := tl.Layers[3]
	if !ok {
		t.Fatal("layer 3 missing")
	}
	obj := layer.At(2)
	if obj == nil {
		t.Fatal("no snapshot at frame 2")
	}
	if obj.Character != 7 {
		t.Errorf("Character = %d, want 7", obj.Character)
	}
	for f := Frame(0); f < 2; f++ {
		if layer.At(f) != nil {
			t.Errorf("unexpected snapshot at frame %d", f)
		}
	}
}

func TestRemoveThenPlaceMakesTwoRuns(t *testing.T) {
	b := NewBuilder()
	b.Place(place(1, 5))
	b.AdvanceFrame() // 0
	b.AdvanceFrame() // 1
	b.Remove(1)
	b.AdvanceFrame() // 2
	b.Place(place(1, 5))
	b.AdvanceFrame() // 3
	b.AdvanceFrame() // 4
	tl := b.Finish(5)

	runs := tl.Layers[1].Runs()
	if len(runs) != 2 {
		t.Fatalf("len(Runs) = %d, want 2", len(runs))
	}
	if runs[0].Start != 0 || runs[0].End() != 2 {
		t.Errorf("run 0 = [%d,%d), want [0,2)", runs[0].Start, runs[0].End())
	}
	if runs[1].Start != 3 || runs[1].End() != 5 {
		t.Errorf("run 1 = [%d,%d), want [3,5)", runs[1].Start, runs[1].End())
	}
}

func TestUpdateKeepsCharacter(t *testing.T) {
	b := NewBuilder()
	b.Place(place(2, 9))
	b.AdvanceFrame()
	b.Place(move(2, 100))
	b.AdvanceFrame()
	tl := b.Finish(2)

	runs := tl.Layers[2].Runs()
	if len(runs) != 1 || len(runs[0].Objects) != 2 {
		t.Fatalf("runs = %+v, want one run of two frames", runs)
	}
	first, second := runs[0].Objects[0], runs[0].Objects[1]
	if second.Character != 9 {
		t.Errorf("updated Character = %d, want 9", second.Character)
	}
	if first.Matrix.TranslateX != 0 || second.Matrix.TranslateX != 100 {
		t.Errorf("translations = %d, %d; want 0, 100", first.Matrix.TranslateX, second.Matrix.TranslateX)
	}
}

func TestUpdateOfEmptyDepthIgnored(t *testing.T) {
	b := NewBuilder()
	b.Place(move(4, 10))
	b.AdvanceFrame()
	tl := b.Finish(1)
	if _, ok := tl.Layers[4]; ok {
		t.Error("update without character created a layer")
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	b := NewBuilder()
	b.Place(place(1, 1))
	b.AdvanceFrame()
	b.Place(move(1, 50))
	b.AdvanceFrame()
	tl := b.Finish(2)
	if tl.Layers[1].At(0).Matrix.TranslateX != 0 {
		t.Error("later update leaked into an earlier frame's snapshot")
	}
}

func TestFinishFrameCount(t *testing.T) {
	tests := []struct {
		name     string
		advances int
		declared Frame
		want     Frame
	}{
		{"exact", 3, 3, 3},
		{"fewer advances", 1, 4, 4},
		{"more advances", 5, 2, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			b.Place(place(1, 1))
			for i := 0; i < tt.advances; i++ {
				b.AdvanceFrame()
			}
			tl := b.Finish(tt.declared)
			if tl.FrameCount != tt.want {
				t.Errorf("FrameCount = %d, want %d", tl.FrameCount, tt.want)
			}
			if got := len(tl.Layers[1].Frames); got != tt.advances {
				t.Errorf("committed frames = %d, want %d (no padding)", got, tt.advances)
			}
		})
	}
}

func TestPlacementAfterLastAdvanceDiscarded(t *testing.T) {
	b := NewBuilder()
	b.AdvanceFrame()
	b.Place(place(1, 1))
	tl := b.Finish(1)
	if len(tl.Layers) != 0 {
		t.Errorf("len(Layers) = %d, want 0", len(tl.Layers))
	}
}

func TestLabelsAndActions(t *testing.T) {
	b := NewBuilder()
	b.RecordLabel("intro")
	b.AdvanceFrame()
	b.RecordAction([]byte{0x07, 0x00})
	b.RecordLabel("loop")
	b.AdvanceFrame()
	tl := b.Finish(2)

	if f, ok := tl.Label("loop"); !ok || f != 1 {
		t.Errorf("Label(loop) = %d, %v; want 1, true", f, ok)
	}
	if f, ok := tl.Label("intro"); !ok || f != 0 {
		t.Errorf("Label(intro) = %d, %v; want 0, true", f, ok)
	}
	if len(tl.Actions) != 1 || tl.Actions[0].Frame != 1 {
		t.Errorf("Actions = %+v, want one action at frame 1", tl.Actions)
	}
}

func TestActionsAfterLastFrameDropped(t *testing.T) {
	b := NewBuilder()
	b.RecordAction([]byte{0x01})
	b.AdvanceFrame()
	b.RecordAction([]byte{0x02})
	b.RecordLabel("tail")
	tl := b.Finish(1)

	if len(tl.Actions) != 1 || tl.Actions[0].Frame != 0 {
		t.Errorf("Actions = %+v, want one action at frame 0", tl.Actions)
	}
	if _, ok := tl.Label("tail"); ok {
		t.Error("label after the last frame was kept")
	}
}

func TestAdvanceFrameStopsAtLimit(t *testing.T) {
	b := NewBuilder()
	b.Place(place(1, 1))
	for i := 0; i < MaxFrames; i++ {
		if !b.AdvanceFrame() {
			t.Fatalf("AdvanceFrame() refused frame %d", i)
		}
	}
	b.Place(place(1, 2))
	if b.AdvanceFrame() {
		t.Error("AdvanceFrame() past the limit reported true")
	}
	tl := b.Finish(0)
	if tl.FrameCount != MaxFrames {
		t.Errorf("FrameCount = %d, want %d", tl.FrameCount, MaxFrames)
	}
	if obj := tl.Layers[1].At(0); obj == nil || obj.Character != 1 {
		t.Errorf("frame 0 = %+v, want character 1 untouched", obj)
	}
}

func TestDepthsAndCharacters(t *testing.T) {
	b := NewBuilder()
	b.Place(place(9, 3))
	b.Place(place(2, 1))
	b.AdvanceFrame()
	b.Place(&swf.PlaceObject{IsUpdate: true, Depth: 2, CharacterID: ptr(swf.CharacterID(8))})
	b.AdvanceFrame()
	tl := b.Finish(2)

	depths := tl.Depths()
	if len(depths) != 2 || depths[0] != 2 || depths[1] != 9 {
		t.Errorf("Depths() = %v, want [2 9]", depths)
	}
	chars := tl.Characters()
	if len(chars) != 3 || chars[0] != 1 || chars[1] != 3 || chars[2] != 8 {
		t.Errorf("Characters() = %v, want [1 3 8]", chars)
	}
}

func ptr[T any](v T) *T { return &v }

func TestParseFrameLabel(t *testing.T) {
	tests := []struct {
		name   string
		tag    swf.Unknown
		want   FrameLabel
		wantOK bool
	}{
		{"plain", swf.Unknown{Code: 43, Data: []byte("go\x00")}, FrameLabel{Name: "go"}, true},
		{"anchor", swf.Unknown{Code: 43, Data: []byte("top\x00\x01")}, FrameLabel{Name: "top", Anchor: true}, true},
		{"unterminated", swf.Unknown{Code: 43, Data: []byte("oops")}, FrameLabel{}, false},
		{"other code", swf.Unknown{Code: 21, Data: []byte("x\x00")}, FrameLabel{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFrameLabel(&tt.tag)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseFrameLabel() = %+v, %v; want %+v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
