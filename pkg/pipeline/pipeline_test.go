package pipeline

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/hotelzululima/flashback/pkg/cache"
	"github.com/hotelzululima/flashback/pkg/errors"
	"github.com/hotelzululima/flashback/pkg/observability"
)

const triangle = `{
  "header": {"frame_size": {"x_min": 0, "x_max": 2000, "y_min": 0, "y_max": 1000}, "frame_rate": 6144, "frame_count": 1},
  "tags": [
    {"type": "DefineShape", "id": 1, "shape": {
      "initial_styles": {"fill": [{"type": "Solid", "color": {"r": 255, "g": 0, "b": 0, "a": 255}}], "line": []},
      "records": [
        {"type": "StyleChange", "move_to": {"x": 0, "y": 0}, "right_fill": 1},
        {"type": "Edge", "delta": {"x": 100, "y": 0}},
        {"type": "Edge", "delta": {"x": -100, "y": 100}},
        {"type": "Edge", "delta": {"x": 0, "y": -100}}
      ]}},
    {"type": "PlaceObject", "depth": 1, "character_id": 1},
    {"type": "ShowFrame"}
  ]
}`

const dangling = `{
  "header": {"frame_size": {"x_min": 0, "x_max": 100, "y_min": 0, "y_max": 100}, "frame_rate": 256, "frame_count": 1},
  "tags": [
    {"type": "PlaceObject", "depth": 1, "character_id": 7},
    {"type": "ShowFrame"}
  ]
}`

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if opts.Mode != DefaultMode {
		t.Errorf("Mode = %q, want %q", opts.Mode, DefaultMode)
	}
	if opts.TTL != cache.TTLDocument {
		t.Errorf("TTL = %v, want %v", opts.TTL, cache.TTLDocument)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
	if opts.UseJS() {
		t.Error("default mode should not use the runtime")
	}
}

func TestOptionsMode(t *testing.T) {
	opts := Options{Mode: "JS"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if !opts.ExportConfig().UseJS {
		t.Error("mode JS should select runtime replay")
	}

	bad := Options{Mode: "flash"}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidMode) {
		t.Errorf("invalid mode error = %v", err)
	}
}

func TestGraphOptionsDefaults(t *testing.T) {
	opts := GraphOptions{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Format != DefaultGraphFormat {
		t.Errorf("Format = %q, want %q", opts.Format, DefaultGraphFormat)
	}
	bad := GraphOptions{Format: "png"}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("invalid format error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	m, err := Load(context.Background(), []byte(triangle+"\n  trailing"), nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if m.Dictionary.Len() != 1 || m.Timeline.FrameCount != 1 {
		t.Errorf("Load() = %d characters, %d frames", m.Dictionary.Len(), m.Timeline.FrameCount)
	}

	_, err = Load(context.Background(), []byte("not a movie"), nil)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Load(garbage) error = %v, want INVALID_INPUT", err)
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, []byte(triangle), nil); err != context.Canceled {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestConvert(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	for _, mode := range []string{"svg", "js"} {
		res, err := r.Convert(context.Background(), []byte(triangle), Options{Mode: mode})
		if err != nil {
			t.Fatalf("Convert(%s) error: %v", mode, err)
		}
		if res.CacheHit {
			t.Errorf("Convert(%s) hit a null cache", mode)
		}
		if !bytes.Contains(res.Document, []byte(`id="c_1"`)) {
			t.Errorf("Convert(%s) missing character definition", mode)
		}
		hasScript := bytes.Contains(res.Document, []byte("<script"))
		if hasScript != (mode == "js") {
			t.Errorf("Convert(%s) script present = %v", mode, hasScript)
		}
		if res.Export.Characters != 1 {
			t.Errorf("Convert(%s) exported %d characters", mode, res.Export.Characters)
		}
	}
}

func TestConvertIntegrityError(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Convert(context.Background(), []byte(dangling), Options{})
	if !errors.IsIntegrity(err) {
		t.Errorf("Convert() error = %v, want an integrity error", err)
	}
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestConvertCaches(t *testing.T) {
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	ctx := context.Background()

	first, err := r.Convert(ctx, []byte(triangle), Options{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Convert(ctx, []byte(triangle), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit || !second.CacheHit {
		t.Errorf("CacheHit = %v, %v, want false, true", first.CacheHit, second.CacheHit)
	}
	if !bytes.Equal(first.Document, second.Document) {
		t.Error("cached document differs")
	}

	js, err := r.Convert(ctx, []byte(triangle), Options{Mode: "js"})
	if err != nil {
		t.Fatal(err)
	}
	if js.CacheHit {
		t.Error("a different mode must not hit the cached document")
	}

	refreshed, err := r.Convert(ctx, []byte(triangle), Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheHit {
		t.Error("Refresh should bypass the cache")
	}

	if hooks.hits != 1 || hooks.misses != 2 || hooks.sets != 3 {
		t.Errorf("hooks = %d hits, %d misses, %d sets", hooks.hits, hooks.misses, hooks.sets)
	}
}

type recordingPipelineHooks struct {
	observability.NoopPipelineHooks
	loads, exports []error
}

func (h *recordingPipelineHooks) OnLoadComplete(_ context.Context, _, _ int, _ time.Duration, err error) {
	h.loads = append(h.loads, err)
}

func (h *recordingPipelineHooks) OnExportComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	h.exports = append(h.exports, err)
}

func TestPipelineHooks(t *testing.T) {
	hooks := &recordingPipelineHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	r := NewRunner(nil, nil, nil)
	if _, err := r.Convert(context.Background(), []byte(triangle), Options{}); err != nil {
		t.Fatal(err)
	}
	_, _ = r.Convert(context.Background(), []byte("{"), Options{})

	if len(hooks.loads) != 2 || hooks.loads[0] != nil || hooks.loads[1] == nil {
		t.Errorf("load events = %v", hooks.loads)
	}
	if len(hooks.exports) != 1 || hooks.exports[0] != nil {
		t.Errorf("export events = %v", hooks.exports)
	}
}

func TestGraphDOT(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	dot, err := r.Graph(context.Background(), []byte(dangling), GraphOptions{Format: "dot"})
	if err != nil {
		t.Fatalf("Graph() error: %v", err)
	}
	if !bytes.Contains(dot, []byte(`"movie" -> "c_7";`)) || !bytes.Contains(dot, []byte("color=red")) {
		t.Errorf("Graph() = %s", dot)
	}
}
