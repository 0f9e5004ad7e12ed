package swf

import (
	"encoding/json"
	"fmt"
)

// FillStyle is one of [Solid], [LinearGradient], [RadialGradient],
// [FocalGradient], [BitmapFill] or [UnsupportedFill].
type FillStyle interface {
	fillStyle()
}

// Solid fills with one colour.
type Solid struct {
	Color StraightSRgba8 `json:"color"`
}

// ColorStop is one gradient stop. Ratio spans 0..255 along the gradient.
type ColorStop struct {
	Ratio uint8          `json:"ratio"`
	Color StraightSRgba8 `json:"color"`
}

// Gradient is the stop list shared by all gradient kinds.
type Gradient struct {
	Spread        string      `json:"spread,omitempty"`
	ColorSpace    string      `json:"color_space,omitempty"`
	Colors        []ColorStop `json:"colors"`
	FocalPoint    Sfixed8P8   `json:"focal_point,omitempty"`
	Interpolation string      `json:"interpolation,omitempty"`
}

// LinearGradient fills along the gradient square's x axis.
type LinearGradient struct {
	Matrix   Matrix   `json:"matrix"`
	Gradient Gradient `json:"gradient"`
}

// RadialGradient fills outward from the gradient square's centre.
type RadialGradient struct {
	Matrix   Matrix   `json:"matrix"`
	Gradient Gradient `json:"gradient"`
}

// FocalGradient is a radial gradient with a displaced focal point.
type FocalGradient struct {
	Matrix   Matrix   `json:"matrix"`
	Gradient Gradient `json:"gradient"`
}

// BitmapFill fills with a bitmap character.
type BitmapFill struct {
	BitmapID  CharacterID `json:"bitmap_id"`
	Matrix    Matrix      `json:"matrix"`
	Repeating bool        `json:"repeating"`
	Smoothed  bool        `json:"smoothed"`
}

// UnsupportedFill holds a fill kind the model does not describe.
type UnsupportedFill struct {
	Kind string          `json:"type"`
	Raw  json.RawMessage `json:"-"`
}

func (*Solid) fillStyle()           {}
func (*LinearGradient) fillStyle()  {}
func (*RadialGradient) fillStyle()  {}
func (*FocalGradient) fillStyle()   {}
func (*BitmapFill) fillStyle()      {}
func (*UnsupportedFill) fillStyle() {}

// LineStyle describes a stroke.
type LineStyle struct {
	Width     uint16    `json:"width"`
	Fill      FillStyle `json:"-"`
	NoClose   bool      `json:"no_close"`
	StartCap  string    `json:"start_cap,omitempty"`
	EndCap    string    `json:"end_cap,omitempty"`
	Join      string    `json:"join,omitempty"`
	NoHScale  bool      `json:"no_h_scale,omitempty"`
	NoVScale  bool      `json:"no_v_scale,omitempty"`
	PixelHint bool      `json:"pixel_hinting,omitempty"`
}

// UnmarshalJSON accepts either a "fill" style object or a bare "color".
func (l *LineStyle) UnmarshalJSON(data []byte) error {
	type plain LineStyle
	var aux struct {
		plain
		Fill  json.RawMessage `json:"fill"`
		Color *StraightSRgba8 `json:"color"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*l = LineStyle(aux.plain)
	switch {
	case len(aux.Fill) > 0 && string(aux.Fill) != "null":
		fill, err := decodeFillStyle(aux.Fill)
		if err != nil {
			return fmt.Errorf("line fill: %w", err)
		}
		l.Fill = fill
	case aux.Color != nil:
		l.Fill = &Solid{Color: *aux.Color}
	default:
		l.Fill = &Solid{Color: StraightSRgba8{A: 0xff}}
	}
	return nil
}

// ShapeStyles is one style table. Shape records index into it 1-based;
// index 0 means "no style".
type ShapeStyles struct {
	Fill []FillStyle `json:"-"`
	Line []LineStyle `json:"line"`
}

// UnmarshalJSON decodes the polymorphic fill list.
func (s *ShapeStyles) UnmarshalJSON(data []byte) error {
	var aux struct {
		Fill []json.RawMessage `json:"fill"`
		Line []LineStyle       `json:"line"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.Line = aux.Line
	s.Fill = make([]FillStyle, 0, len(aux.Fill))
	for i, raw := range aux.Fill {
		fill, err := decodeFillStyle(raw)
		if err != nil {
			return fmt.Errorf("fill %d: %w", i, err)
		}
		s.Fill = append(s.Fill, fill)
	}
	return nil
}

func decodeFillStyle(data json.RawMessage) (FillStyle, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	var fill FillStyle
	switch head.Type {
	case "Solid":
		fill = &Solid{}
	case "LinearGradient":
		fill = &LinearGradient{}
	case "RadialGradient":
		fill = &RadialGradient{}
	case "FocalGradient":
		fill = &FocalGradient{}
	case "Bitmap":
		fill = &BitmapFill{}
	default:
		return &UnsupportedFill{Kind: head.Type, Raw: append(json.RawMessage(nil), data...)}, nil
	}
	if err := json.Unmarshal(data, fill); err != nil {
		return nil, fmt.Errorf("%s: %w", head.Type, err)
	}
	return fill, nil
}
