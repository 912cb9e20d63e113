package cli

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qrdots/pkg/cache"
	"github.com/matzehuels/qrdots/pkg/layout"
	"github.com/matzehuels/qrdots/pkg/observability"
	"github.com/matzehuels/qrdots/pkg/pipeline"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	return newInstrumentedServer(t).routes()
}

func newInstrumentedServer(t *testing.T) *server {
	t.Helper()
	logger := log.New(io.Discard)
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := pipeline.NewRunner(fc, nil, logger)
	t.Cleanup(func() { runner.Close() })
	s := newServer(runner, pipeline.Options{Logger: logger}, logger)
	s.instrument()
	t.Cleanup(observability.Reset)
	return s
}

func get(t *testing.T, h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServeHealth(t *testing.T) {
	rec := get(t, newTestServer(t), "/healthz")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "ok" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestServeRequestID(t *testing.T) {
	h := newTestServer(t)

	rec := get(t, h, "/healthz")
	if id := rec.Header().Get(requestIDHeader); len(id) != 36 {
		t.Errorf("generated request id = %q, want a uuid", id)
	}

	rec = get(t, h, "/healthz", requestIDHeader, "abc-123")
	if id := rec.Header().Get(requestIDHeader); id != "abc-123" {
		t.Errorf("request id = %q, want the incoming one", id)
	}
}

func TestServeSVG(t *testing.T) {
	h := newTestServer(t)

	rec := get(t, h, "/qr.svg?payload=hello&style=rounded&fg=%23336699")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `fill="#336699"`) {
		t.Error("svg should use the requested foreground")
	}
	if rec.Header().Get("X-Cache") != "miss" {
		t.Errorf("first request X-Cache = %q", rec.Header().Get("X-Cache"))
	}

	rec = get(t, h, "/qr.svg?payload=hello&style=rounded&fg=%23336699")
	if rec.Header().Get("X-Cache") != "hit" {
		t.Errorf("repeat request X-Cache = %q", rec.Header().Get("X-Cache"))
	}
}

func TestServePNG(t *testing.T) {
	rec := get(t, newTestServer(t), "/qr.png?payload=hello&scale=1&margin=0")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	// "hello" at medium fits version 1: 21 modules of 10px, no margin.
	if b := img.Bounds(); b.Dx() != 215 || b.Dy() != 215 {
		t.Errorf("png size = %v, want 215x215", b)
	}
}

func TestServeLayoutJSON(t *testing.T) {
	rec := get(t, newTestServer(t), "/layout.json?payload=hello&block=4&center=12")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var doc layout.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Params.BlockSize != 4 || doc.Params.CenterExclusionSize != 12 {
		t.Errorf("params = %+v", doc.Params)
	}
	if doc.Meta == nil || doc.Meta.Payload != "hello" {
		t.Errorf("meta = %+v", doc.Meta)
	}
}

func TestServeErrors(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		target string
		status int
	}{
		{"/qr.svg?style=handdrawn", http.StatusBadRequest},
		{"/qr.svg?fg=navy", http.StatusBadRequest},
		{"/qr.svg?scale=big", http.StatusBadRequest},
		{"/qr.svg?corner=1.5", http.StatusBadRequest},
		{"/qr.png?scale=1000", http.StatusBadRequest},
		{"/qr.svg?level=ultra", http.StatusBadRequest},
		{"/qr.gif", http.StatusNotFound},
	}

	for _, tt := range tests {
		rec := get(t, h, tt.target)
		if rec.Code != tt.status {
			t.Errorf("GET %s = %d, want %d (%s)", tt.target, rec.Code, tt.status, rec.Body.String())
		}
	}
}

func TestServeIndex(t *testing.T) {
	rec := get(t, newTestServer(t), "/?payload=a%3Cb&style=rounded")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `value="a&lt;b"`) {
		t.Error("payload should be escaped in the form")
	}
	if !strings.Contains(body, `<option value="rounded" selected>`) {
		t.Error("requested style should be selected")
	}
	if !strings.Contains(body, "/qr.svg?payload=a%3Cb&amp;style=rounded") {
		t.Errorf("image should carry the query, got %s", body)
	}
}

func TestRequestOptionsOverlayOff(t *testing.T) {
	s := newServer(nil, pipeline.Options{Overlay: "face.png", OverlayData: []byte("png")}, log.New(io.Discard))

	opts, err := s.requestOptions(map[string][]string{"overlay": {"0"}})
	if err != nil {
		t.Fatal(err)
	}
	if opts.HasOverlay() {
		t.Error("overlay=0 should disable the overlay")
	}

	opts, err = s.requestOptions(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !opts.HasOverlay() {
		t.Error("base overlay should apply by default")
	}
}

func TestServeStats(t *testing.T) {
	h := newTestServer(t)
	get(t, h, "/qr.svg?payload=stats")
	get(t, h, "/qr.svg?payload=stats")

	rec := get(t, h, "/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var snap observability.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Renders != 2 || snap.CacheHits != 3 || snap.CacheMisses != 3 {
		t.Errorf("stats = %+v", snap)
	}
}
