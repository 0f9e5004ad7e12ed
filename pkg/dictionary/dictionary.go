// Package dictionary holds the movie-wide registry of character definitions.
//
// Every [swf.CharacterID] is bound at most once. The registry is filled
// while the record stream is scanned and only read afterwards; there is no
// deletion.
package dictionary

import (
	"image"
	"maps"
	"slices"

	"github.com/hotelzululima/flashback/pkg/errors"
	"github.com/hotelzululima/flashback/pkg/shape"
	"github.com/hotelzululima/flashback/pkg/swf"
	"github.com/hotelzululima/flashback/pkg/timeline"
)

// Character is one of [Shape], [Sprite], [Bitmap] or [DynamicText].
type Character interface {
	// Kind names the variant for diagnostics.
	Kind() string
	character()
}

// Shape is a vector shape.
type Shape struct{ *shape.Shape }

// Sprite is a nested animated character.
type Sprite struct{ *timeline.Timeline }

// Bitmap is a decoded raster image.
type Bitmap struct{ Image image.Image }

// DynamicText is an editable text field.
type DynamicText struct{ *swf.DefineDynamicText }

func (Shape) Kind() string       { return "shape" }
func (Sprite) Kind() string      { return "sprite" }
func (Bitmap) Kind() string      { return "bitmap" }
func (DynamicText) Kind() string { return "text" }

func (Shape) character()       {}
func (Sprite) character()      {}
func (Bitmap) character()      {}
func (DynamicText) character() {}

// Dictionary maps character identities to their definitions.
type Dictionary struct {
	characters map[swf.CharacterID]Character
}

// New returns an empty dictionary.
func New() *Dictionary {
	return &Dictionary{characters: make(map[swf.CharacterID]Character)}
}

// Define binds id. Binding an id twice means the movie is malformed and
// fails with [errors.ErrCodeDuplicateCharacter]; the first binding is kept.
func (d *Dictionary) Define(id swf.CharacterID, c Character) error {
	if prev, ok := d.characters[id]; ok {
		return errors.New(errors.ErrCodeDuplicateCharacter,
			"character %d is already defined (as %s, redefined as %s)", id, prev.Kind(), c.Kind())
	}
	d.characters[id] = c
	return nil
}

// Lookup returns the character bound to id, or fails with
// [errors.ErrCodeUndefinedCharacter].
func (d *Dictionary) Lookup(id swf.CharacterID) (Character, error) {
	c, ok := d.characters[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeUndefinedCharacter, "character %d is not defined", id)
	}
	return c, nil
}

// IDs returns the bound identities in ascending order.
func (d *Dictionary) IDs() []swf.CharacterID {
	return slices.Sorted(maps.Keys(d.characters))
}

// Len returns the number of bound characters.
func (d *Dictionary) Len() int {
	return len(d.characters)
}

// Census counts characters per kind.
func (d *Dictionary) Census() map[string]int {
	out := make(map[string]int)
	for _, c := range d.characters {
		out[c.Kind()]++
	}
	return out
}
