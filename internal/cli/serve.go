package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrdots/internal/config"
	"github.com/matzehuels/qrdots/pkg/buildinfo"
	qrerrors "github.com/matzehuels/qrdots/pkg/errors"
	"github.com/matzehuels/qrdots/pkg/observability"
	"github.com/matzehuels/qrdots/pkg/pipeline"
	"github.com/matzehuels/qrdots/pkg/render/styles"
)

const (
	requestIDHeader = "X-Request-ID"
	shutdownTimeout = 5 * time.Second
)

// serveCommand creates the serve command for the HTTP preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)
	flags := &optionFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live preview over HTTP",
		Long: `Serve a live preview over HTTP.

Routes:
  /             preview page with a payload form
  /qr.svg       SVG rendering
  /qr.png       PNG rendering
  /layout.json  layout document
  /healthz      liveness probe
  /stats        pipeline and cache counters

Render routes take query parameters: payload, level, style, fg, bg, scale,
margin, block, corner, center and overlay=0 to hide the configured overlay.
Flags set server-wide defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, flags, "")
			if addr == "" {
				addr = c.Config.Addr()
			}
			return c.runServe(cmd.Context(), addr, opts, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default "+config.DefaultAddr+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.addEncodeFlags(cmd)
	flags.addLayoutFlags(cmd)
	flags.addRenderFlags(cmd)

	return cmd
}

// runServe serves until ctx is cancelled, then shuts down gracefully.
func (c *CLI) runServe(ctx context.Context, addr string, opts pipeline.Options, noCache bool) error {
	if err := opts.LoadOverlay(ctx); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srvHandler := newServer(runner, opts, c.Logger)
	srvHandler.instrument()
	defer observability.Reset()

	srv := &http.Server{
		Handler:           srvHandler.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	printSuccess("Serving preview")
	printKeyValue("URL", StyleLink.Render("http://"+ln.Addr().String()+"/"))
	printKeyValue("Cache", backendName(c.Config.Cache))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down server", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// =============================================================================
// HTTP handlers
// =============================================================================

// server renders QR codes for HTTP requests. Base options hold the
// server-wide defaults; queries override them per request.
type server struct {
	runner   *pipeline.Runner
	base     pipeline.Options
	logger   *log.Logger
	counters *observability.Counters
}

func newServer(runner *pipeline.Runner, base pipeline.Options, logger *log.Logger) *server {
	return &server{runner: runner, base: base, logger: logger, counters: &observability.Counters{}}
}

// instrument routes pipeline and cache events to the server's counters.
func (s *server) instrument() {
	observability.SetPipelineHooks(s.counters)
	observability.SetCacheHooks(s.counters)
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLog)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/stats", s.handleStats)
	r.Get("/qr.svg", s.handleArtifact(pipeline.FormatSVG, "image/svg+xml"))
	r.Get("/qr.png", s.handleArtifact(pipeline.FormatPNG, "image/png"))
	r.Get("/layout.json", s.handleArtifact(pipeline.FormatJSON, "application/json"))
	return r
}

type requestIDKey struct{}

// requestLog assigns a request ID (honouring an incoming X-Request-ID) and
// logs each request once it completes.
func (s *server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		w.Header().Set("Server", buildinfo.UserAgent())

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))

		s.logger.Debug("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond))
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.counters.Snapshot()); err != nil {
		s.logger.Error("encode stats", "error", err)
	}
}

func (s *server) handleArtifact(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := s.requestOptions(r.URL.Query())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		opts.Formats = []string{format}

		result, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("X-Cache", cacheStatus(result.CacheInfo))
		w.Write(result.Artifacts[format])
	}
}

func cacheStatus(info pipeline.CacheInfo) string {
	if info.RenderHit {
		return "hit"
	}
	return "miss"
}

// requestOptions overlays query parameters on the base options.
func (s *server) requestOptions(q url.Values) (pipeline.Options, error) {
	opts := s.base
	opts.Formats = nil

	strs := map[string]*string{
		"payload": &opts.Payload,
		"level":   &opts.Level,
		"style":   &opts.Style,
		"fg":      &opts.Foreground,
		"bg":      &opts.Background,
	}
	for name, dst := range strs {
		if v := q.Get(name); v != "" {
			*dst = v
		}
	}

	floats := map[string]*float64{
		"scale":  &opts.Scale,
		"block":  &opts.BlockSize,
		"center": &opts.CenterExclusionSize,
	}
	for name, dst := range floats {
		v, ok, err := queryFloat(q, name)
		if err != nil {
			return opts, err
		}
		if ok {
			*dst = v
		}
	}

	if m, ok, err := queryFloat(q, "margin"); err != nil {
		return opts, err
	} else if ok {
		opts.Margin = &m
	}
	if v := q.Get("corner"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, qrerrors.New(qrerrors.ErrCodeInvalidParams, "corner must be an integer, got %q", v)
		}
		opts.CornerMarkerSize = n
	}
	if q.Get("overlay") == "0" {
		opts.Overlay, opts.OverlayData = "", nil
	}
	return opts, nil
}

func queryFloat(q url.Values, name string) (float64, bool, error) {
	v := q.Get(name)
	if v == "" {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false, qrerrors.New(qrerrors.ErrCodeInvalidParams, "%s must be a number, got %q", name, v)
	}
	return f, true, nil
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := qrerrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		id, _ := r.Context().Value(requestIDKey{}).(string)
		s.logger.Error("render failed", "id", id, "error", err)
	}
	http.Error(w, qrerrors.UserMessage(err), status)
}

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>qrdots</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; color: #222; }
form { margin-bottom: 1.5rem; }
input[type=text] { width: 28rem; }
img { width: 360px; height: 360px; image-rendering: auto; }
</style>
</head>
<body>
<h1>qrdots</h1>
<form method="get" action="/">
<input type="text" name="payload" value="{{.Payload}}" placeholder="payload">
<select name="style">
{{range .Styles}}<option value="{{.}}"{{if eq . $.Style}} selected{{end}}>{{.}}</option>{{end}}
</select>
<button type="submit">Render</button>
</form>
<img src="/qr.svg?{{.Query}}" alt="QR code for {{.Payload}}">
<p><a href="/qr.png?{{.Query}}">PNG</a> · <a href="/layout.json?{{.Query}}">layout.json</a></p>
</body>
</html>
`))

type indexData struct {
	Payload string
	Style   string
	Styles  []string
	Query   template.URL
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := indexData{
		Payload: q.Get("payload"),
		Style:   q.Get("style"),
		Styles:  styles.Names(),
		Query:   template.URL(q.Encode()),
	}
	if data.Style == "" {
		data.Style = s.base.Style
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.logger.Error("render index", "error", err)
	}
}
