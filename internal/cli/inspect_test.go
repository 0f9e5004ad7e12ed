package cli

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/hotelzululima/flashback/pkg/errors"
	"github.com/hotelzululima/flashback/pkg/movie"
	"github.com/hotelzululima/flashback/pkg/pipeline"
	"github.com/hotelzululima/flashback/pkg/swf"
)

func loadTestMovie(t *testing.T, name string) *movie.Movie {
	t.Helper()
	m, err := pipeline.Load(context.Background(), readTestdata(t, name), log.New(io.Discard))
	if err != nil {
		t.Fatalf("Load(%s) error: %v", name, err)
	}
	return m
}

func TestSelectTimeline(t *testing.T) {
	m := loadTestMovie(t, "movie.json")

	tl, err := selectTimeline(m, 0)
	if err != nil || tl != m.Timeline {
		t.Errorf("selectTimeline(0) = %v, %v", tl, err)
	}
	tl, err = selectTimeline(m, 2)
	if err != nil || tl.FrameCount != 1 {
		t.Errorf("selectTimeline(2) = %v, %v", tl, err)
	}
	if _, err := selectTimeline(m, 1); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("selectTimeline(shape) error = %v", err)
	}
	if _, err := selectTimeline(m, 9); !errors.Is(err, errors.ErrCodeUndefinedCharacter) {
		t.Errorf("selectTimeline(undefined) error = %v", err)
	}
}

func TestRunTable(t *testing.T) {
	m := loadTestMovie(t, "movie.json")
	out := runTable(m.Timeline, m.Dictionary)
	for _, want := range []string{"Depth", "Characters", "0-1", "1-1", "shape", "sprite"} {
		if !strings.Contains(out, want) {
			t.Errorf("runTable() missing %q:\n%s", want, out)
		}
	}
}

func TestDescribeMatrix(t *testing.T) {
	tests := []struct {
		m    swf.Matrix
		want string
	}{
		{swf.IdentityMatrix(), "translate(0, 0)"},
		{swf.Matrix{ScaleX: swf.One16P16, ScaleY: swf.One16P16, TranslateX: 20, TranslateY: -40}, "translate(20, -40)"},
		{swf.Matrix{ScaleX: 2 * swf.One16P16, ScaleY: swf.One16P16 / 2, TranslateX: 1}, "matrix(2 0 0 0.5 1 0)"},
	}
	for _, tt := range tests {
		if got := describeMatrix(tt.m); got != tt.want {
			t.Errorf("describeMatrix(%+v) = %q, want %q", tt.m, got, tt.want)
		}
	}
}
