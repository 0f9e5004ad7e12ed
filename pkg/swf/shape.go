package swf

import (
	"encoding/json"
	"fmt"
)

// ShapeDef is the geometry carried by a DefineShape record.
type ShapeDef struct {
	InitialStyles ShapeStyles   `json:"initial_styles"`
	Records       []ShapeRecord `json:"-"`
}

// UnmarshalJSON decodes the polymorphic record list.
func (s *ShapeDef) UnmarshalJSON(data []byte) error {
	var aux struct {
		InitialStyles ShapeStyles       `json:"initial_styles"`
		Records       []json.RawMessage `json:"records"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.InitialStyles = aux.InitialStyles
	s.Records = make([]ShapeRecord, 0, len(aux.Records))
	for i, raw := range aux.Records {
		var head struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		var rec ShapeRecord
		switch head.Type {
		case "StyleChange":
			rec = &StyleChange{}
		case "Edge":
			rec = &Edge{}
		default:
			return fmt.Errorf("record %d: unknown shape record %q", i, head.Type)
		}
		if err := json.Unmarshal(raw, rec); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		s.Records = append(s.Records, rec)
	}
	return nil
}

// ShapeRecord is a [StyleChange] or an [Edge].
type ShapeRecord interface {
	shapeRecord()
}

// StyleChange moves the pen and/or selects styles for the following edges.
// LeftFill is the SWF fill0 slot, RightFill is fill1. A nil field leaves the
// current selection untouched; zero clears it.
type StyleChange struct {
	MoveTo    *Vector2D    `json:"move_to,omitempty"`
	LeftFill  *int         `json:"left_fill,omitempty"`
	RightFill *int         `json:"right_fill,omitempty"`
	LineStyle *int         `json:"line_style,omitempty"`
	NewStyles *ShapeStyles `json:"new_styles,omitempty"`
}

// Edge draws from the pen position. Delta is the offset to the end point;
// ControlDelta, when present, is the offset from the start to the quadratic
// control point.
type Edge struct {
	Delta        Vector2D  `json:"delta"`
	ControlDelta *Vector2D `json:"control_delta,omitempty"`
}

func (*StyleChange) shapeRecord() {}
func (*Edge) shapeRecord()        {}
