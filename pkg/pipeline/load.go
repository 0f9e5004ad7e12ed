package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hotelzululima/flashback/pkg/errors"
	"github.com/hotelzululima/flashback/pkg/movie"
	"github.com/hotelzululima/flashback/pkg/observability"
	"github.com/hotelzululima/flashback/pkg/swf"
)

// Load decodes input and scans the movie it holds.
//
// Input that is not a movie document fails with INVALID_INPUT. Bytes after
// the document are reported and ignored.
func Load(ctx context.Context, input []byte, logger *log.Logger) (m *movie.Movie, err error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, len(input))
	start := time.Now()
	defer func() {
		var chars, frames int
		if m != nil {
			chars, frames = m.Dictionary.Len(), int(m.Timeline.FrameCount)
		}
		hooks.OnLoadComplete(ctx, chars, frames, time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dec, err := swf.Decode(input)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode movie")
	}
	if dec.Remaining > 0 && logger != nil {
		logger.Warn("trailing bytes after movie", "bytes", dec.Remaining)
	}
	return movie.Load(dec.Movie, logger)
}
