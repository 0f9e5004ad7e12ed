package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// scrubCommand creates the interactive timeline scrubber.
func (c *CLI) scrubCommand() *cobra.Command {
	var sprite int

	cmd := &cobra.Command{
		Use:   "scrub [file]",
		Short: "Step through a movie timeline interactively",
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

			title := args[0]
			if sprite != 0 {
				title = fmt.Sprintf("%s · sprite %d", args[0], sprite)
			}
			model := NewScrubModel(title, tl, m.Dictionary, m.FrameRate())
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().IntVar(&sprite, "sprite", 0, "scrub the timeline of this sprite instead of the movie")
	return cmd
}
