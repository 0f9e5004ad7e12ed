// Package movie scans a decoded record stream once, populating the character
// dictionary and building the top-level and nested timelines.
//
// Top-level records and the records of every nested sprite go through the
// same consumer, each with its own [timeline.Builder]. Definitions and the
// background colour are only honoured at the top level; inside a sprite they
// are skipped with a diagnostic, like any other unrecognized record.
package movie

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/hotelzululima/flashback/pkg/bitmap"
	"github.com/hotelzululima/flashback/pkg/dictionary"
	"github.com/hotelzululima/flashback/pkg/shape"
	"github.com/hotelzululima/flashback/pkg/swf"
	"github.com/hotelzululima/flashback/pkg/timeline"
)

// Movie is the scanned form of a decoded movie.
type Movie struct {
	Header     swf.Header
	Background swf.SRgb8
	Dictionary *dictionary.Dictionary
	Timeline   *timeline.Timeline

	// Skipped counts records that were not understood.
	Skipped int
}

// FrameRate returns the frame rate in frames per second.
func (m *Movie) FrameRate() float64 {
	return m.Header.FrameRate.Float64()
}

// Load scans m. It fails only on integrity violations of the dictionary.
func Load(m *swf.Movie, logger *log.Logger) (*Movie, error) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	l := &loader{
		logger: logger,
		out: &Movie{
			Header:     m.Header,
			Dictionary: dictionary.New(),
		},
	}
	b := timeline.NewBuilder()
	if err := l.consume(b, m.Tags, nil); err != nil {
		return nil, err
	}
	l.out.Timeline = b.Finish(timeline.Frame(m.Header.FrameCount))
	return l.out, nil
}

type loader struct {
	logger *log.Logger
	out    *Movie
}

// consume feeds tags into b. sprite is the id of the enclosing sprite, or
// nil at the top level.
func (l *loader) consume(b *timeline.Builder, tags []swf.Tag, sprite *swf.CharacterID) error {
	nested := sprite != nil
	for _, tag := range tags {
		switch t := tag.(type) {
		case *swf.PlaceObject:
			b.Place(t)
		case *swf.RemoveObject:
			b.Remove(timeline.Depth(t.Depth))
		case *swf.DoAction:
			b.RecordAction(t.Actions)
		case *swf.ShowFrame:
			if !b.AdvanceFrame() {
				l.logger.Warn("frame limit reached, frame dropped", "limit", timeline.MaxFrames)
				l.out.Skipped++
			}

		case *swf.SetBackgroundColor:
			if nested {
				l.skip(tag, sprite)
				continue
			}
			l.out.Background = t.Color
		case *swf.DefineShape:
			if nested {
				l.skip(tag, sprite)
				continue
			}
			if err := l.out.Dictionary.Define(t.ID, dictionary.Shape{Shape: shape.FromDefinition(t)}); err != nil {
				return err
			}
		case *swf.DefineSprite:
			if nested {
				l.skip(tag, sprite)
				continue
			}
			inner := timeline.NewBuilder()
			if err := l.consume(inner, t.Tags, &t.ID); err != nil {
				return err
			}
			tl := inner.Finish(timeline.Frame(t.FrameCount))
			if err := l.out.Dictionary.Define(t.ID, dictionary.Sprite{Timeline: tl}); err != nil {
				return err
			}
		case *swf.DefineDynamicText:
			if nested {
				l.skip(tag, sprite)
				continue
			}
			if err := l.out.Dictionary.Define(t.ID, dictionary.DynamicText{DefineDynamicText: t}); err != nil {
				return err
			}

		case *swf.Unknown:
			if err := l.unknown(b, t, sprite); err != nil {
				return err
			}
		default:
			l.skip(tag, sprite)
		}
	}
	return nil
}

func (l *loader) unknown(b *timeline.Builder, t *swf.Unknown, sprite *swf.CharacterID) error {
	if sprite == nil {
		def, ok, err := bitmap.Parse(t)
		switch {
		case ok && err != nil:
			l.logger.Warn("undecodable bitmap", "code", t.Code, "err", err)
			l.out.Skipped++
			return nil
		case ok:
			return l.out.Dictionary.Define(def.ID, dictionary.Bitmap{Image: def.Image})
		}
	}
	if label, ok := timeline.ParseFrameLabel(t); ok {
		b.RecordLabel(label.Name)
		return nil
	}
	if sprite != nil {
		l.logger.Warn("unknown sprite record", "code", t.Code, "len", len(t.Data), "sprite", *sprite)
	} else {
		l.logger.Warn("unknown record", "code", t.Code, "len", len(t.Data))
	}
	l.out.Skipped++
	return nil
}

func (l *loader) skip(tag swf.Tag, sprite *swf.CharacterID) {
	if sprite != nil {
		l.logger.Warn("unknown sprite record", "type", tag.TagName(), "sprite", *sprite)
	} else {
		l.logger.Warn("unknown record", "type", tag.TagName())
	}
	l.out.Skipped++
}
