package export

import (
	"math"
	"strconv"
	"strings"

	"github.com/hotelzululima/flashback/pkg/shape"
)

// PathData renders an edge list as path data. A subpath starts at the first
// edge; an edge that does not start at the pen position opens a new subpath
// with a move instead of being joined by a line. closable controls whether a
// path whose last end point equals its first start point gets closed.
//
// It returns the empty string for an empty edge list.
func PathData(edges []shape.Edge, closable bool) string {
	if len(edges) == 0 {
		return ""
	}
	start := edges[0].From

	var sb strings.Builder
	moveTo(&sb, start)
	pen := start
	for _, e := range edges {
		if e.From != pen {
			moveTo(&sb, e.From)
		}
		if e.Control != nil {
			sb.WriteString(" Q")
			point(&sb, *e.Control)
			sb.WriteByte(' ')
			point(&sb, e.To)
		} else {
			sb.WriteString(" L")
			point(&sb, e.To)
		}
		pen = e.To
	}
	if closable && pen == start {
		sb.WriteString(" Z")
	}
	return sb.String()
}

func moveTo(sb *strings.Builder, p shape.Point) {
	if sb.Len() > 0 {
		sb.WriteByte(' ')
	}
	sb.WriteByte('M')
	point(sb, p)
}

func point(sb *strings.Builder, p shape.Point) {
	sb.WriteString(strconv.FormatInt(int64(p.X), 10))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatInt(int64(p.Y), 10))
}

// num formats v compactly, rounded to six decimals.
func num(v float64) string {
	v = math.Round(v*1e6) / 1e6
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
