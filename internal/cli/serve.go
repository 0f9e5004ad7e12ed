package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hotelzululima/flashback/pkg/errors"
	"github.com/hotelzululima/flashback/pkg/observability"
	"github.com/hotelzululima/flashback/pkg/pipeline"
)

// shutdownTimeout bounds how long in-flight conversions may finish after
// the server is asked to stop.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Convert movies over HTTP",
		Long: `Serve conversions over HTTP.

  POST /convert?mode=svg|js   movie JSON in, image/svg+xml out
  POST /graph?format=svg|dot  movie JSON in, character graph out
  GET  /healthz               liveness probe

Movies with duplicate or undefined characters are rejected with 422,
unreadable input with 400.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg().Serve.Addr
			}
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			observability.SetServerHooks(&logHooks{logger: c.Logger})
			s := newServer(runner, c.cfg(), c.Logger)
			return s.listen(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the document cache")

	return cmd
}

// server is the HTTP front end of the pipeline runner.
type server struct {
	runner *pipeline.Runner
	cfg    *Config
	logger *log.Logger
}

func newServer(runner *pipeline.Runner, cfg *Config, logger *log.Logger) *server {
	return &server{runner: runner, cfg: cfg, logger: logger}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestContext)

	r.Get("/healthz", s.handleHealth)
	r.Post("/convert", s.handleConvert)
	r.Post("/graph", s.handleGraph)
	return r
}

func (s *server) listen(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	printSuccess("Listening on %s", StyleLink.Render("http://"+displayAddr(addr)))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return ctx.Err()
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

type requestIDKey struct{}

// requestContext assigns every request an id, attaches a logger carrying it,
// and reports the request to the server hooks.
func (s *server) requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		ctx = withLogger(ctx, s.logger.With("request_id", id))

		hooks := observability.Server()
		hooks.OnRequest(ctx, id, r.Method, r.URL.Path)
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Header().Set("X-Request-ID", id)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(ctx, id, status, time.Since(start))
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (s *server) handleConvert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	input, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = s.cfg.Mode
	}
	res, err := s.runner.Convert(ctx, input, pipeline.Options{
		Mode:    mode,
		Refresh: r.URL.Query().Has("refresh"),
		TTL:     s.cfg.Cache.TTL,
		Logger:  loggerFromContext(ctx),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cacheStatus := "MISS"
	if res.CacheHit {
		cacheStatus = "HIT"
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Document)))
	w.Header().Set("X-Cache", cacheStatus)
	_, _ = w.Write(res.Document)
}

func (s *server) handleGraph(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	input, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	opts := pipeline.GraphOptions{
		Format:   q.Get("format"),
		Detailed: q.Has("detailed"),
		Logger:   loggerFromContext(ctx),
	}
	data, err := s.runner.Graph(ctx, input, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	contentType := "image/svg+xml"
	if opts.Format == "dot" {
		contentType = "text/vnd.graphviz"
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}

func (s *server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.Serve.MaxBody)
	defer body.Close()
	return io.ReadAll(body)
}

// errorResponse is the JSON body of a failed request.
type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id"`
}

// statusFor maps a pipeline error to an HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.IsIntegrity(err):
		return http.StatusUnprocessableEntity
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidMode, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	logger := loggerFromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "err", err)
	} else {
		logger.Warn("request rejected", "status", status, "err", err)
	}

	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error:     msg,
		Code:      string(errors.GetCode(err)),
		RequestID: requestID(r.Context()),
	})
}
