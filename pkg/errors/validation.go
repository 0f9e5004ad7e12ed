package errors

import (
	"strings"
)

// Output modes accepted by [ValidateMode].
const (
	ModeSVG = "svg" // declarative animation markup
	ModeJS  = "js"  // keyframe table replayed by the runtime script
)

// ValidateMode checks an output mode name. The empty string selects the
// default declarative mode.
func ValidateMode(mode string) error {
	switch strings.ToLower(mode) {
	case "", ModeSVG, ModeJS:
		return nil
	}
	return New(ErrCodeInvalidMode, "invalid mode: %q (must be one of: svg, js)", mode)
}

// ValidateGraphFormat checks a character-graph output format.
func ValidateGraphFormat(format string) error {
	switch format {
	case "svg", "dot":
		return nil
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, dot)", format)
}
