package swf

import (
	"encoding/json"
	"fmt"
)

// Tag is one typed record of a movie or sprite record stream.
type Tag interface {
	// TagName returns the record type as it appears in the JSON "type" field.
	TagName() string
}

// SetBackgroundColor sets the stage colour.
type SetBackgroundColor struct {
	Color SRgb8 `json:"color"`
}

// DefineShape defines a vector shape character.
type DefineShape struct {
	ID     CharacterID `json:"id"`
	Bounds Rect        `json:"bounds"`
	Shape  ShapeDef    `json:"shape"`
}

// DefineSprite defines a nested animated character with its own record
// stream and frame count.
type DefineSprite struct {
	ID         CharacterID `json:"id"`
	FrameCount uint16      `json:"frame_count"`
	Tags       []Tag       `json:"-"`
}

// UnmarshalJSON decodes the nested record stream.
func (d *DefineSprite) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID         CharacterID       `json:"id"`
		FrameCount uint16            `json:"frame_count"`
		Tags       []json.RawMessage `json:"tags"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	tags, err := decodeTags(aux.Tags)
	if err != nil {
		return fmt.Errorf("sprite %d: %w", aux.ID, err)
	}
	d.ID, d.FrameCount, d.Tags = aux.ID, aux.FrameCount, tags
	return nil
}

// DefineDynamicText defines an editable text field.
type DefineDynamicText struct {
	ID       CharacterID     `json:"id"`
	Bounds   Rect            `json:"bounds"`
	FontID   *CharacterID    `json:"font_id,omitempty"`
	FontSize *uint16         `json:"font_size,omitempty"`
	Color    *StraightSRgba8 `json:"color,omitempty"`
	Text     *string         `json:"text,omitempty"`
	Variable string          `json:"variable_name,omitempty"`
	HTML     bool            `json:"html,omitempty"`
}

// PlaceObject places a new object at a depth or, with IsUpdate, modifies the
// object already there. Absent fields leave the current value in place.
type PlaceObject struct {
	IsUpdate       bool            `json:"is_update"`
	Depth          uint16          `json:"depth"`
	CharacterID    *CharacterID    `json:"character_id,omitempty"`
	Matrix         *Matrix         `json:"matrix,omitempty"`
	ColorTransform *ColorTransform `json:"color_transform,omitempty"`
	Ratio          *uint16         `json:"ratio,omitempty"`
	Name           *string         `json:"name,omitempty"`
	ClipDepth      *uint16         `json:"clip_depth,omitempty"`
}

// RemoveObject empties a depth.
type RemoveObject struct {
	Depth       uint16       `json:"depth"`
	CharacterID *CharacterID `json:"character_id,omitempty"`
}

// DoAction carries an opaque action payload.
type DoAction struct {
	Actions []byte `json:"actions"`
}

// ShowFrame closes the current frame.
type ShowFrame struct{}

// Unknown is a record the upstream decoder left unclassified.
type Unknown struct {
	Code uint16 `json:"code"`
	Data []byte `json:"data"`
}

// Unsupported is a typed record this model has no type for.
type Unsupported struct {
	Type string          `json:"type"`
	Raw  json.RawMessage `json:"-"`
}

func (*SetBackgroundColor) TagName() string { return "SetBackgroundColor" }
func (*DefineShape) TagName() string        { return "DefineShape" }
func (*DefineSprite) TagName() string       { return "DefineSprite" }
func (*DefineDynamicText) TagName() string  { return "DefineDynamicText" }
func (*PlaceObject) TagName() string        { return "PlaceObject" }
func (*RemoveObject) TagName() string       { return "RemoveObject" }
func (*DoAction) TagName() string           { return "DoAction" }
func (*ShowFrame) TagName() string          { return "ShowFrame" }
func (*Unknown) TagName() string            { return "Unknown" }
func (u *Unsupported) TagName() string      { return u.Type }

func newTag(name string) Tag {
	switch name {
	case "SetBackgroundColor":
		return &SetBackgroundColor{}
	case "DefineShape":
		return &DefineShape{}
	case "DefineSprite":
		return &DefineSprite{}
	case "DefineDynamicText":
		return &DefineDynamicText{}
	case "PlaceObject":
		return &PlaceObject{}
	case "RemoveObject":
		return &RemoveObject{}
	case "DoAction":
		return &DoAction{}
	case "ShowFrame":
		return &ShowFrame{}
	case "Unknown":
		return &Unknown{}
	}
	return nil
}

func decodeTags(raws []json.RawMessage) ([]Tag, error) {
	tags := make([]Tag, 0, len(raws))
	for i, raw := range raws {
		var head struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return nil, fmt.Errorf("tag %d: %w", i, err)
		}
		tag := newTag(head.Type)
		if tag == nil {
			tags = append(tags, &Unsupported{Type: head.Type, Raw: append(json.RawMessage(nil), raw...)})
			continue
		}
		if err := json.Unmarshal(raw, tag); err != nil {
			return nil, fmt.Errorf("tag %d (%s): %w", i, head.Type, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
