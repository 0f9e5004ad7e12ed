package export

import (
	"fmt"
	"strconv"

	"github.com/hotelzululima/flashback/pkg/svgdoc"
	"github.com/hotelzululima/flashback/pkg/swf"
)

// FallbackColor paints fills of a kind that has no mapping.
const FallbackColor = "#ff00ff"

// Color maps a colour to a paint token: "#rrggbb" when fully opaque,
// otherwise "rgba(r, g, b, a)".
//
// The alpha component is written on its 0-255 scale, not as a 0-1 fraction.
// Consumers that follow the CSS colour syntax read any a >= 1 as opaque.
func Color(c swf.StraightSRgba8) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %d)", c.R, c.G, c.B, c.A)
}

// Background maps an opaque colour to "#rrggbb".
func Background(c swf.SRgb8) string {
	return Color(swf.StraightSRgba8{R: c.R, G: c.G, B: c.B, A: 0xff})
}

// Fill maps a fill style to a paint value. Gradients are registered as new
// definitions on every call, even when an identical gradient was registered
// before. Fill matrices are not applied.
func (cx *Context) Fill(style swf.FillStyle) string {
	switch s := style.(type) {
	case *swf.Solid:
		return Color(s.Color)
	case *swf.LinearGradient:
		return cx.gradient("linearGradient", &s.Gradient)
	case *swf.RadialGradient:
		return cx.gradient("radialGradient", &s.Gradient)
	case *swf.BitmapFill:
		return fmt.Sprintf("url(#%s)", patternID(s.BitmapID))
	}
	cx.logger.Warn("unsupported fill", "kind", fillKind(style), "fallback", FallbackColor)
	cx.stats.FallbackFills++
	return FallbackColor
}

func (cx *Context) gradient(name string, g *swf.Gradient) string {
	id := "grad_" + strconv.Itoa(cx.nextGradientID)
	cx.nextGradientID++

	el := svgdoc.New(name, "id", id)
	for _, stop := range g.Colors {
		el.Append(svgdoc.New("stop",
			"offset", num(float64(stop.Ratio)/255*100)+"%",
			"stop-color", Color(stop.Color),
		))
	}
	cx.addDef(el)
	cx.stats.Gradients++
	return "url(#" + id + ")"
}

func fillKind(style swf.FillStyle) string {
	switch s := style.(type) {
	case *swf.FocalGradient:
		return "FocalGradient"
	case *swf.UnsupportedFill:
		return s.Kind
	case nil:
		return "none"
	}
	return fmt.Sprintf("%T", style)
}
