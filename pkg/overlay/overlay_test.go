package overlay

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/qrdots/pkg/errors"
	"github.com/matzehuels/qrdots/pkg/grid"
	"github.com/matzehuels/qrdots/pkg/layout"
)

func testImage(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func testLayout(t *testing.T) layout.Layout {
	t.Helper()
	rows := make([][]bool, 21)
	for r := range rows {
		rows[r] = make([]bool, 21)
	}
	g, err := grid.New(rows)
	if err != nil {
		t.Fatal(err)
	}
	return layout.Generate(g, layout.DefaultParams())
}

func TestDecode(t *testing.T) {
	img, err := Decode(bytes.NewReader(encodePNG(t, testImage(50, 40))))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if w, h := img.Size(); w != 50 || h != 40 {
		t.Errorf("Size() = %dx%d, want 50x40", w, h)
	}
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode(strings.NewReader("not an image"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want %v", err, errors.ErrCodeInvalidInput)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "face.png")
	if err := os.WriteFile(path, encodePNG(t, testImage(50, 50)), 0o644); err != nil {
		t.Fatal(err)
	}
	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if w, h := img.Size(); w != 50 || h != 50 {
		t.Errorf("Size() = %dx%d, want 50x50", w, h)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"empty path", "", errors.ErrCodeInvalidPath},
		{"missing file", filepath.Join(t.TempDir(), "missing.png"), errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("Load(%q) error = %v, want %v", tt.path, err, tt.code)
			}
		})
	}
}

func TestFit(t *testing.T) {
	img := FromImage(testImage(200, 100))

	fit := img.Fit(50, 50)
	if w, h := fit.Size(); w != 50 || h != 25 {
		t.Errorf("Fit(50, 50) = %dx%d, want 50x25", w, h)
	}

	if same := img.Fit(400, 400); same != img {
		t.Error("Fit should not upscale")
	}
}

func TestResize(t *testing.T) {
	got := FromImage(testImage(10, 10)).Resize(30, 20)
	if w, h := got.Size(); w != 30 || h != 20 {
		t.Errorf("Resize(30, 20) = %dx%d", w, h)
	}
}

func TestDataURI(t *testing.T) {
	uri, err := FromImage(testImage(8, 8)).DataURI()
	if err != nil {
		t.Fatal(err)
	}
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("DataURI() = %q, want %s prefix", uri[:min(len(uri), 40)], prefix)
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("payload is not base64: %v", err)
	}
	if _, err := Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("payload is not a decodable image: %v", err)
	}
}

func TestPlace(t *testing.T) {
	l := testLayout(t)
	area := l.CenterBounds()

	tests := []struct {
		name string
		w, h int
	}{
		{"square", 50, 50},
		{"wide", 200, 100},
		{"tall", 30, 90},
		{"tiny", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := Place(l, FromImage(testImage(tt.w, tt.h)))
			if !ok {
				t.Fatal("Place should succeed on a layout with a center zone")
			}
			r := p.Rect
			const eps = 1e-9
			if r.MinX < area.MinX-eps || r.MaxX > area.MaxX+eps || r.MinY < area.MinY-eps || r.MaxY > area.MaxY+eps {
				t.Errorf("placement %+v escapes center bounds %+v", r, area)
			}
			if got, want := r.Width()/r.Height(), float64(tt.w)/float64(tt.h); math.Abs(got-want) > 1e-9 {
				t.Errorf("aspect = %v, want %v", got, want)
			}
			if math.Abs(r.Width()-area.Width()) > eps && math.Abs(r.Height()-area.Height()) > eps {
				t.Errorf("placement %+v should touch the center bounds on one axis", r)
			}
			if c, ac := r.Center(), area.Center(); math.Abs(c.X-ac.X) > eps || math.Abs(c.Y-ac.Y) > eps {
				t.Errorf("placement centre %+v, want %+v", c, ac)
			}
		})
	}
}

func TestPlaceNoCenter(t *testing.T) {
	l := testLayout(t)
	l.Center = layout.Zone{}
	if _, ok := Place(l, FromImage(testImage(10, 10))); ok {
		t.Error("Place should fail without a center zone")
	}
	if _, ok := Place(testLayout(t), nil); ok {
		t.Error("Place should fail without an image")
	}
}
