package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/hotelzululima/flashback/pkg/dictionary"
	"github.com/hotelzululima/flashback/pkg/errors"
	"github.com/hotelzululima/flashback/pkg/export"
	"github.com/hotelzululima/flashback/pkg/movie"
	"github.com/hotelzululima/flashback/pkg/pipeline"
	"github.com/hotelzululima/flashback/pkg/swf"
	"github.com/hotelzululima/flashback/pkg/timeline"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var sprite int

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the header, dictionary and layer runs of a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.loadMovie(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			tl, err := selectTimeline(m, sprite)
			if err != nil {
				return err
			}
			printMovie(m)
			printNewline()
			printTimeline(tl, m.Dictionary)
			return nil
		},
	}

	cmd.Flags().IntVar(&sprite, "sprite", 0, "inspect the timeline of this sprite instead of the movie")
	return cmd
}

// loadMovie reads and scans the movie at path.
func (c *CLI) loadMovie(ctx context.Context, path string) (*movie.Movie, error) {
	input, err := readInput(path)
	if err != nil {
		return nil, err
	}
	return pipeline.Load(ctx, input, c.Logger)
}

// selectTimeline returns the movie timeline for id 0, otherwise the
// timeline of sprite id.
func selectTimeline(m *movie.Movie, id int) (*timeline.Timeline, error) {
	if id == 0 {
		return m.Timeline, nil
	}
	c, err := m.Dictionary.Lookup(swf.CharacterID(id))
	if err != nil {
		return nil, err
	}
	s, ok := c.(dictionary.Sprite)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "character %d is a %s, not a sprite", id, c.Kind())
	}
	return s.Timeline, nil
}

func printMovie(m *movie.Movie) {
	frame := m.Header.FrameSize
	fmt.Println(StyleTitle.Render("Movie"))
	printKeyValue("frame", fmt.Sprintf("%d x %d twips at (%d, %d)", frame.Width(), frame.Height(), frame.XMin, frame.YMin))
	printKeyValue("rate", fmt.Sprintf("%s fps", strconv.FormatFloat(m.FrameRate(), 'f', -1, 64)))
	printKeyValue("frames", strconv.Itoa(int(m.Timeline.FrameCount)))
	printKeyValue("background", export.Background(m.Background))

	census := m.Dictionary.Census()
	var parts []string
	for _, kind := range slices.Sorted(maps.Keys(census)) {
		parts = append(parts, fmt.Sprintf("%d %s", census[kind], kind))
	}
	if len(parts) == 0 {
		parts = append(parts, "empty")
	}
	printKeyValue("characters", strings.Join(parts, ", "))
	if m.Skipped > 0 {
		printWarning("%d records skipped", m.Skipped)
	}
}

func printTimeline(tl *timeline.Timeline, dict *dictionary.Dictionary) {
	for _, f := range slices.Sorted(maps.Keys(tl.Labels)) {
		printDetail("label %s at frame %d", strings.Join(tl.Labels[f], ", "), f)
	}
	if len(tl.Actions) > 0 {
		printDetail("%d action blocks (not executed)", len(tl.Actions))
	}
	if len(tl.Layers) == 0 {
		printInfo("No layers")
		return
	}
	fmt.Println(runTable(tl, dict))
}

// runTable renders one row per run of every layer.
func runTable(tl *timeline.Timeline, dict *dictionary.Dictionary) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	var rows [][]string
	for _, d := range tl.Depths() {
		for i, run := range tl.Layers[d].Runs() {
			rows = append(rows, []string{
				strconv.Itoa(int(d)),
				strconv.Itoa(i),
				fmt.Sprintf("%d-%d", run.Start, run.End()-1),
				runCharacters(run),
				runKind(run, dict),
			})
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Depth", "Run", "Frames", "Characters", "Kind").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

// runCharacters lists the characters shown by a run, collapsing repeats.
func runCharacters(run timeline.Run) string {
	var ids []string
	var last swf.CharacterID
	for i, obj := range run.Objects {
		if i == 0 || obj.Character != last {
			ids = append(ids, strconv.Itoa(int(obj.Character)))
			last = obj.Character
		}
	}
	return strings.Join(ids, ",")
}

func runKind(run timeline.Run, dict *dictionary.Dictionary) string {
	c, err := dict.Lookup(run.Objects[0].Character)
	if err != nil {
		return "undefined"
	}
	return c.Kind()
}

// describeMatrix formats a placement transform compactly.
func describeMatrix(m swf.Matrix) string {
	if m.ScaleX == swf.One16P16 && m.ScaleY == swf.One16P16 && m.RotateSkew0 == 0 && m.RotateSkew1 == 0 {
		return fmt.Sprintf("translate(%d, %d)", m.TranslateX, m.TranslateY)
	}
	f := func(v swf.Sfixed16P16) string { return strconv.FormatFloat(v.Float64(), 'f', -1, 64) }
	return fmt.Sprintf("matrix(%s %s %s %s %d %d)",
		f(m.ScaleX), f(m.RotateSkew0), f(m.RotateSkew1), f(m.ScaleY), m.TranslateX, m.TranslateY)
}
