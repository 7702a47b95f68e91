package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/explaintext/pkg/buildinfo"
	"github.com/matzehuels/explaintext/pkg/errors"
	"github.com/matzehuels/explaintext/pkg/observability"
	"github.com/matzehuels/explaintext/pkg/pipeline"
)

const (
	// maxBodyBytes caps the size of an explanation posted to the server.
	maxBodyBytes = 8 << 20

	headerRequestID = "X-Request-ID"
	headerCache     = "X-Cache"
	headerHash      = "X-Explanation-Hash"

	shutdownTimeout = 10 * time.Second
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string
	noCache bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve explanation formatting over HTTP",
		Long: `Start an HTTP server that renders explanations.

Endpoints:
  POST /v1/format?show=targets,method&glyphs=ascii   body: explanation JSON
  POST /v1/tree?format=text|dot|svg                  body: explanation JSON
  GET  /healthz

Set cache.redis_url in the config file to share cached renderings between
replicas.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default "+defaultAddr+")")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the rendered-text cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := commandLogger(ctx, "serve")
	observability.SetHTTPHooks(observability.NewLogHooks(logger))

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	addr := opts.addr
	if addr == "" {
		addr = c.config.addr()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           c.newServer(runner, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr, "version", buildinfo.Version)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Handlers
// =============================================================================

// server holds the HTTP handlers. Defaults for show and glyphs come from
// the CLI configuration and can be overridden per request.
type server struct {
	cli    *CLI
	runner *pipeline.Runner
	logger *log.Logger
}

// newServer builds the HTTP handler tree.
func (c *CLI) newServer(runner *pipeline.Runner, logger *log.Logger) http.Handler {
	s := &server{cli: c, runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Server", buildinfo.Product()))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/format", s.handleFormat)
		r.Post("/tree", s.handleTree)
	})
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *server) handleFormat(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	refresh, _ := strconv.ParseBool(q.Get("refresh"))
	var show []string
	if q.Has("show") {
		show = parseList(q.Get("show"))
	}
	opts := s.cli.pipelineOptions(show, q.Get("glyphs"), refresh)
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), data, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cacheStatus := "miss"
	if result.CacheHit {
		cacheStatus = "hit"
	}
	w.Header().Set(headerCache, cacheStatus)
	w.Header().Set(headerHash, result.Hash)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, result.Text)
}

// treeContentTypes maps tree formats to response content types.
var treeContentTypes = map[string]string{
	pipeline.TreeFormatText: "text/plain; charset=utf-8",
	pipeline.TreeFormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.TreeFormatSVG:  "image/svg+xml",
}

func (s *server) handleTree(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.TreeFormatText
	}
	if err := pipeline.ValidateTreeFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	data, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out, err := s.runner.RenderTree(r.Context(), data, format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", treeContentTypes[format])
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// =============================================================================
// Middleware
// =============================================================================

type requestIDKey struct{}

// requestID propagates the caller's X-Request-ID or assigns a new UUID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestIDFrom returns the request ID assigned by the requestID middleware.
func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// observe reports each request and its response status to the HTTP hooks.
func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		id := requestIDFrom(r.Context())
		start := time.Now()
		hooks.OnRequest(r.Context(), id, r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), id, r.Method, r.URL.Path, status, time.Since(start))
	})
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Error     errorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
	Path    string      `json:"path,omitempty"`
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	return data, nil
}

// httpStatus maps an error to a response status. Bad input is the caller's
// fault (400), a missing decision tree is 404 and everything else is ours.
func httpStatus(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatus(err)
	code := errors.GetCode(err)
	msg := err.Error()
	switch {
	case status == http.StatusRequestEntityTooLarge:
		code, msg = errors.ErrCodeInvalidInput, "request body too large"
	case code == "":
		code = errors.ErrCodeInternal
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "id", requestIDFrom(r.Context()), "err", err)
		msg = "internal error"
	}

	writeJSON(w, status, errorBody{
		Error:     errorDetail{Code: code, Message: msg, Path: errors.PathOf(err)},
		RequestID: requestIDFrom(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
