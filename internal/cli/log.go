// Package cli implements the flashback command-line interface.
//
// This package provides commands for converting decoded movies to SVG,
// inspecting their timelines, drawing their character graphs, serving
// conversions over HTTP, and managing the document cache. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - convert: Convert a movie document to an animated SVG
//   - inspect: Print the header, dictionary and layer runs of a movie
//   - scrub: Step through the timeline interactively
//   - graph: Render the character reference graph
//   - serve: Convert movies over HTTP
//   - cache: Manage the document cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The HTTP
// server attaches a per-request logger to the request context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Converted movie.json (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports pipeline and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnLoadStart(_ context.Context, inputSize int) {
	h.logger.Debug("load started", "bytes", inputSize)
}

func (h *logHooks) OnLoadComplete(_ context.Context, characters, frames int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "err", err, "duration", d)
		return
	}
	h.logger.Debug("load complete", "characters", characters, "frames", frames, "duration", d)
}

func (h *logHooks) OnExportStart(_ context.Context, mode string) {
	h.logger.Debug("export started", "mode", mode)
}

func (h *logHooks) OnExportComplete(_ context.Context, mode string, outputSize int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("export failed", "mode", mode, "err", err, "duration", d)
		return
	}
	h.logger.Debug("export complete", "mode", mode, "bytes", outputSize, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) OnRequest(_ context.Context, requestID, method, path string) {
	h.logger.Debug("request", "id", requestID, "method", method, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, requestID string, status int, d time.Duration) {
	h.logger.Info("response", "id", requestID, "status", status, "duration", d)
}
