package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"strconv"

	"github.com/hotelzululima/flashback/pkg/dictionary"
	"github.com/hotelzululima/flashback/pkg/errors"
	"github.com/hotelzululima/flashback/pkg/shape"
	"github.com/hotelzululima/flashback/pkg/svgdoc"
	"github.com/hotelzululima/flashback/pkg/swf"
)

// BitmapScale converts bitmap pixels to movie units. Patterns are sized in
// pixels times this factor so that they line up with shapes drawn in twips.
const BitmapScale = 20

func characterID(id swf.CharacterID) string {
	return "c_" + strconv.Itoa(int(id))
}

func patternID(id swf.CharacterID) string {
	return "pat_" + strconv.Itoa(int(id))
}

// Character exports one dictionary entry as a group. The caller assigns the
// group's id.
func (cx *Context) Character(id swf.CharacterID, c dictionary.Character) (*svgdoc.Element, error) {
	switch c := c.(type) {
	case dictionary.Shape:
		return cx.shape(c.Shape), nil
	case dictionary.Bitmap:
		return cx.bitmap(id, c)
	case dictionary.Sprite:
		if cx.cfg.UseJS {
			return cx.firstFrame(c.Timeline)
		}
		return cx.Timeline(characterID(id)+"_", c.Timeline)
	case dictionary.DynamicText:
		return cx.text(c.DefineDynamicText), nil
	}
	return nil, errors.New(errors.ErrCodeInternal, "character %d: unhandled kind %T", id, c)
}

func (cx *Context) shape(s *shape.Shape) *svgdoc.Element {
	g := svgdoc.New("g")
	for _, f := range s.Fill {
		d := PathData(f.Path, true)
		if d == "" {
			continue
		}
		g.Append(svgdoc.New("path",
			"fill", cx.Fill(f.Style),
			"fill-rule", "evenodd",
			"d", d,
		))
	}
	for _, st := range s.Stroke {
		d := PathData(st.Path, !st.Style.NoClose)
		if d == "" {
			continue
		}
		g.Append(svgdoc.New("path",
			"fill", "none",
			"stroke", cx.Fill(st.Style.Fill),
			"stroke-width", strconv.Itoa(int(st.Style.Width)),
			"d", d,
		))
	}
	return g
}

func (cx *Context) bitmap(id swf.CharacterID, b dictionary.Bitmap) (*svgdoc.Element, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, b.Image); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode bitmap %d", id)
	}
	size := b.Image.Bounds().Size()

	img := svgdoc.New("image",
		"href", "data:image/png;base64,"+base64.StdEncoding.EncodeToString(buf.Bytes()),
	)
	img.Setf("width", "%d", size.X*BitmapScale)
	img.Setf("height", "%d", size.Y*BitmapScale)

	pattern := svgdoc.New("pattern",
		"id", patternID(id),
		"width", "1",
		"height", "1",
	).Append(img)
	return svgdoc.New("g").Append(pattern), nil
}

func (cx *Context) text(def *swf.DefineDynamicText) *svgdoc.Element {
	t := svgdoc.New("text")
	if def.Text != nil {
		t.Text = *def.Text
	}
	if def.FontSize != nil {
		t.Set("font-size", fmt.Sprint(*def.FontSize))
	}
	if def.Color != nil {
		t.Set("fill", Color(*def.Color))
	}
	return svgdoc.New("g").Append(t)
}
