package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hotelzululima/flashback/pkg/pipeline"
)

// Terminal palette. Warm tones for warnings and failures, cyan for the
// movie's own numbers.
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)
	StyleLink   = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim    = lipgloss.NewStyle().Foreground(colorDim)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// marker is the leading glyph of a status line.
type marker struct {
	glyph string
	style lipgloss.Style
}

var (
	markOK   = marker{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	markFail = marker{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	markWarn = marker{"!", lipgloss.NewStyle().Foreground(colorYellow)}
	markNote = marker{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

func (m marker) println(msg string) {
	fmt.Println(m.style.Render(m.glyph) + " " + msg)
}

func printSuccess(format string, args ...any) {
	markOK.println(fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	markFail.println(fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	markWarn.println(markWarn.style.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	markNote.println(fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line under a status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile names a file that was written.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + path)
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + value)
}

// printNextStep suggests a follow-up command.
func printNextStep(hint, cmd string) {
	fmt.Println(StyleDim.Render(hint+":") + " " + lipgloss.NewStyle().Foreground(colorBlue).Render(cmd))
}

func printNewline() {
	fmt.Println()
}

func printStats(res *pipeline.Result) {
	fmt.Println("  " + statsLine(res))
}

// statsLine summarizes a conversion: what the export produced, the document
// size, and whether it came from the cache.
func statsLine(res *pipeline.Result) string {
	var parts []string
	if n := res.Export.Characters; n > 0 {
		parts = append(parts, fmt.Sprintf("%d characters", n))
	}
	if n := res.Export.Runs; n > 0 {
		parts = append(parts, fmt.Sprintf("%d runs", n))
	}
	parts = append(parts, humanBytes(len(res.Document)))
	if res.CacheHit {
		parts = append(parts, "cached")
	} else {
		parts = append(parts, "fresh")
	}
	return StyleDim.Render(strings.Join(parts, " · "))
}

// humanBytes formats a byte count with a binary unit.
func humanBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
