package swf

import "encoding/json"

// CharacterID identifies one character definition. Identities are global to
// the movie, including characters placed inside nested sprites.
type CharacterID uint16

// Rect is an axis-aligned rectangle in twips.
type Rect struct {
	XMin int32 `json:"x_min"`
	XMax int32 `json:"x_max"`
	YMin int32 `json:"y_min"`
	YMax int32 `json:"y_max"`
}

// Width returns XMax-XMin.
func (r Rect) Width() int32 { return r.XMax - r.XMin }

// Height returns YMax-YMin.
func (r Rect) Height() int32 { return r.YMax - r.YMin }

// Vector2D is a point or offset in twips.
type Vector2D struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// Add returns v+o.
func (v Vector2D) Add(o Vector2D) Vector2D {
	return Vector2D{X: v.X + o.X, Y: v.Y + o.Y}
}

// SRgb8 is an opaque colour.
type SRgb8 struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// StraightSRgba8 is a colour with non-premultiplied alpha.
type StraightSRgba8 struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Matrix is an affine transform. Scale and skew factors are 16.16 fixed
// point; translations are in twips.
//
//	| ScaleX      RotateSkew1 TranslateX |
//	| RotateSkew0 ScaleY      TranslateY |
type Matrix struct {
	ScaleX      Sfixed16P16 `json:"scale_x"`
	ScaleY      Sfixed16P16 `json:"scale_y"`
	RotateSkew0 Sfixed16P16 `json:"rotate_skew0"`
	RotateSkew1 Sfixed16P16 `json:"rotate_skew1"`
	TranslateX  int32       `json:"translate_x"`
	TranslateY  int32       `json:"translate_y"`
}

// IdentityMatrix returns the identity transform.
func IdentityMatrix() Matrix {
	return Matrix{ScaleX: One16P16, ScaleY: One16P16}
}

// IsIdentity reports whether m leaves every point unchanged.
func (m Matrix) IsIdentity() bool {
	return m == IdentityMatrix()
}

// ColorTransform scales and offsets colour channels. Multipliers are 8.8
// fixed point (256 is 1.0).
type ColorTransform struct {
	RedMult   Sfixed8P8 `json:"red_mult"`
	GreenMult Sfixed8P8 `json:"green_mult"`
	BlueMult  Sfixed8P8 `json:"blue_mult"`
	AlphaMult Sfixed8P8 `json:"alpha_mult"`
	RedAdd    int16     `json:"red_add"`
	GreenAdd  int16     `json:"green_add"`
	BlueAdd   int16     `json:"blue_add"`
	AlphaAdd  int16     `json:"alpha_add"`
}

// Opacity returns the alpha channel factor applied to a fully opaque pixel,
// clamped to [0, 1].
func (c ColorTransform) Opacity() float64 {
	a := (255*c.AlphaMult.Float64() + float64(c.AlphaAdd)) / 255
	switch {
	case a < 0:
		return 0
	case a > 1:
		return 1
	}
	return a
}

// UnmarshalJSON defaults absent scale factors to 1.0, matching a record with
// its scale flag cleared.
func (m *Matrix) UnmarshalJSON(data []byte) error {
	type plain Matrix
	aux := plain(IdentityMatrix())
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*m = Matrix(aux)
	return nil
}

// UnmarshalJSON defaults absent multipliers to 1.0.
func (c *ColorTransform) UnmarshalJSON(data []byte) error {
	type plain ColorTransform
	aux := plain{RedMult: 1 << 8, GreenMult: 1 << 8, BlueMult: 1 << 8, AlphaMult: 1 << 8}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = ColorTransform(aux)
	return nil
}
