package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/hotelzululima/flashback/pkg/dictionary"
	"github.com/hotelzululima/flashback/pkg/timeline"
)

var (
	scrubDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	scrubLabelStyle = lipgloss.NewStyle().Foreground(colorYellow)
	scrubBarStyle   = lipgloss.NewStyle().Foreground(colorCyan)
)

// scrubBarWidth is the width of the frame position bar in cells.
const scrubBarWidth = 40

// =============================================================================
// ScrubModel - Interactive timeline scrubber
// =============================================================================

// tickMsg advances playback by one frame.
type tickMsg time.Time

// ScrubModel is the bubbletea model for stepping through a timeline.
type ScrubModel struct {
	Timeline   *timeline.Timeline
	Dictionary *dictionary.Dictionary
	FrameRate  float64
	Title      string

	Frame   timeline.Frame
	Playing bool
}

// NewScrubModel creates a scrubber positioned at the first frame.
func NewScrubModel(title string, tl *timeline.Timeline, dict *dictionary.Dictionary, frameRate float64) ScrubModel {
	if frameRate <= 0 {
		frameRate = 1
	}
	return ScrubModel{
		Timeline:   tl,
		Dictionary: dict,
		FrameRate:  frameRate,
		Title:      title,
	}
}

func (m ScrubModel) Init() tea.Cmd {
	return nil
}

func (m ScrubModel) tick() tea.Cmd {
	interval := time.Duration(float64(time.Second) / m.FrameRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// last returns the index of the final frame.
func (m ScrubModel) last() timeline.Frame {
	if m.Timeline.FrameCount == 0 {
		return 0
	}
	return m.Timeline.FrameCount - 1
}

func (m ScrubModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.Frame > 0 {
				m.Frame--
			}
		case "right", "l":
			if m.Frame < m.last() {
				m.Frame++
			}
		case "home", "g":
			m.Frame = 0
		case "end", "G":
			m.Frame = m.last()
		case " ":
			m.Playing = !m.Playing
			if m.Playing {
				return m, m.tick()
			}
		}
	case tickMsg:
		if !m.Playing {
			return m, nil
		}
		if m.Frame >= m.last() {
			m.Frame = 0
		} else {
			m.Frame++
		}
		return m, m.tick()
	}
	return m, nil
}

func (m ScrubModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(scrubDimStyle.Render("←/→ step  home/end jump  space play  q quit"))
	b.WriteString("\n\n")

	if m.Timeline.FrameCount == 0 {
		b.WriteString(scrubDimStyle.Render("empty timeline"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("frame %s/%d  %s\n",
		StyleNumber.Render(strconv.Itoa(int(m.Frame)+1)), m.Timeline.FrameCount, m.bar()))
	if labels := m.Timeline.Labels[m.Frame]; len(labels) > 0 {
		b.WriteString(scrubLabelStyle.Render("label " + strings.Join(labels, ", ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	rows := m.rows()
	if len(rows) == 0 {
		b.WriteString(scrubDimStyle.Render("nothing on stage"))
		b.WriteString("\n")
		return b.String()
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Depth", "Character", "Kind", "Transform", "Opacity", "Name").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if rows[row][2] == "undefined" {
				return lipgloss.NewStyle().Foreground(colorRed)
			}
			return lipgloss.NewStyle()
		})
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

// rows describes every depth occupied at the current frame, in painting
// order.
func (m ScrubModel) rows() [][]string {
	var rows [][]string
	for _, d := range m.Timeline.Depths() {
		obj := m.Timeline.Layers[d].At(m.Frame)
		if obj == nil {
			continue
		}
		kind := "undefined"
		if c, err := m.Dictionary.Lookup(obj.Character); err == nil {
			kind = c.Kind()
		}
		alpha := "1"
		if obj.ColorTransform != nil {
			alpha = strconv.FormatFloat(obj.ColorTransform.Opacity(), 'f', 2, 64)
		}
		name := ""
		if obj.Name != nil {
			name = *obj.Name
		}
		rows = append(rows, []string{
			strconv.Itoa(int(d)),
			strconv.Itoa(int(obj.Character)),
			kind,
			describeMatrix(obj.Matrix),
			alpha,
			name,
		})
	}
	return rows
}

// bar draws the playback position.
func (m ScrubModel) bar() string {
	pos := 0
	if m.last() > 0 {
		pos = int(m.Frame) * (scrubBarWidth - 1) / int(m.last())
	}
	return scrubBarStyle.Render(strings.Repeat("━", pos)+"●") +
		scrubDimStyle.Render(strings.Repeat("─", scrubBarWidth-1-pos))
}
