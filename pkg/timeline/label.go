package timeline

import (
	"bytes"

	"github.com/hotelzululima/flashback/pkg/swf"
)

// FrameLabelCode is the record code of a frame label.
const FrameLabelCode = 43

// FrameLabel names a frame.
type FrameLabel struct {
	Name   string
	Anchor bool
}

// ParseFrameLabel recognizes a frame label among unclassified records. The
// body is a NUL-terminated name, optionally followed by a one-byte named
// anchor flag.
func ParseFrameLabel(tag *swf.Unknown) (FrameLabel, bool) {
	if tag.Code != FrameLabelCode {
		return FrameLabel{}, false
	}
	end := bytes.IndexByte(tag.Data, 0)
	if end < 0 {
		return FrameLabel{}, false
	}
	label := FrameLabel{Name: string(tag.Data[:end])}
	if rest := tag.Data[end+1:]; len(rest) > 0 {
		label.Anchor = rest[0] == 1
	}
	return label, true
}
