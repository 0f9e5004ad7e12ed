package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hotelzululima/flashback/pkg/timeline"
)

func scrubModel(t *testing.T) ScrubModel {
	t.Helper()
	m := loadTestMovie(t, "movie.json")
	return NewScrubModel("movie.json", m.Timeline, m.Dictionary, m.FrameRate())
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m ScrubModel, keys ...string) (ScrubModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(ScrubModel)
	}
	return m, cmd
}

func TestScrubStepping(t *testing.T) {
	m := scrubModel(t)

	tests := []struct {
		keys []string
		want timeline.Frame
	}{
		{[]string{"left"}, 0},
		{[]string{"right"}, 1},
		{[]string{"right", "right", "right"}, 1},
		{[]string{"l", "h"}, 0},
		{[]string{"end"}, 1},
		{[]string{"end", "home"}, 0},
	}
	for _, tt := range tests {
		got, _ := press(m, tt.keys...)
		if got.Frame != tt.want {
			t.Errorf("keys %v: frame = %d, want %d", tt.keys, got.Frame, tt.want)
		}
	}
}

func TestScrubQuit(t *testing.T) {
	_, cmd := press(scrubModel(t), "q")
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestScrubPlayback(t *testing.T) {
	m, cmd := press(scrubModel(t), " ")
	if !m.Playing || cmd == nil {
		t.Fatal("space should start playback with a tick")
	}

	next, _ := m.Update(tickMsg{})
	m = next.(ScrubModel)
	if m.Frame != 1 {
		t.Errorf("frame after tick = %d, want 1", m.Frame)
	}
	next, _ = m.Update(tickMsg{})
	m = next.(ScrubModel)
	if m.Frame != 0 {
		t.Errorf("playback should loop, frame = %d", m.Frame)
	}

	m, _ = press(m, " ")
	next, cmd = m.Update(tickMsg{})
	if next.(ScrubModel).Frame != 0 || cmd != nil {
		t.Error("a paused scrubber should ignore ticks")
	}
}

func TestScrubView(t *testing.T) {
	m := scrubModel(t)

	first := m.View()
	for _, want := range []string{"movie.json", "frame 1/2", "label start", "translate(0, 0)"} {
		if !strings.Contains(first, want) {
			t.Errorf("frame 0 view missing %q:\n%s", want, first)
		}
	}
	if strings.Contains(first, "spinner") {
		t.Error("depth 2 is not on stage at frame 0")
	}

	m, _ = press(m, "right")
	second := m.View()
	for _, want := range []string{"frame 2/2", "sprite", "spinner", "translate(100, 0)"} {
		if !strings.Contains(second, want) {
			t.Errorf("frame 1 view missing %q:\n%s", want, second)
		}
	}
}

func TestScrubEmptyTimeline(t *testing.T) {
	m := NewScrubModel("empty", &timeline.Timeline{}, nil, 0)
	if m.FrameRate != 1 {
		t.Errorf("FrameRate = %v, want 1", m.FrameRate)
	}
	if !strings.Contains(m.View(), "empty timeline") {
		t.Error("empty timeline not reported")
	}
	m, _ = press(m, "right", "end")
	if m.Frame != 0 {
		t.Errorf("frame = %d on an empty timeline", m.Frame)
	}
}
