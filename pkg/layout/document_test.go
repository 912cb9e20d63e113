package layout

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/qrdots/pkg/errors"
)

func TestDocumentRoundTrip(t *testing.T) {
	l := Generate(randomGrid(t, 21, 21, 9), DefaultParams())
	doc := l.Export()
	doc.Meta = &Meta{Payload: "hello", Level: "medium", Style: "dots"}

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteDocumentFile(doc, path); err != nil {
		t.Fatalf("WriteDocumentFile: %v", err)
	}
	read, err := ReadDocumentFile(path)
	if err != nil {
		t.Fatalf("ReadDocumentFile: %v", err)
	}
	if diff := cmp.Diff(doc, read); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}

	back, err := Parse(read)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff(l, back); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalDocumentUsesNames(t *testing.T) {
	l := Generate(solidGrid(t, 21, 21, true), DefaultParams())
	data, err := MarshalDocument(l.Export())
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, want := range []string{`"kind": "circle"`, `"kind": "square"`, `"color": "background"`, `"color": "foreground"`, `"depth": -1`} {
		if !strings.Contains(s, want) {
			t.Errorf("document should contain %s", want)
		}
	}
}

func TestUnmarshalDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{`},
		{"no shapes", `{"version":1,"shapes":[]}`},
		{"unknown kind", `{"version":1,"shapes":[{"kind":"triangle","color":"background","row":-1,"col":-1}]}`},
		{"unknown color", `{"version":1,"shapes":[{"kind":"square","color":"purple","row":-1,"col":-1}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalDocument([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestUnmarshalDocumentDefaultsVersion(t *testing.T) {
	doc, err := UnmarshalDocument([]byte(`{"shapes":[{"kind":"square","color":"background","row":-1,"col":-1}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Version != DocumentVersion {
		t.Errorf("Version = %d, want %d", doc.Version, DocumentVersion)
	}
}

func TestParseRejects(t *testing.T) {
	valid := Generate(solidGrid(t, 21, 21, false), DefaultParams()).Export()

	tests := []struct {
		name   string
		mutate func(*Document)
		code   errors.Code
	}{
		{"newer version", func(d *Document) { d.Version = DocumentVersion + 1 }, errors.ErrCodeUnsupported},
		{"bad params", func(d *Document) { d.Params.BlockSize = 0 }, errors.ErrCodeInvalidParams},
		{"no shapes", func(d *Document) { d.Shapes = nil }, errors.ErrCodeInvalidInput},
		{"plate not first", func(d *Document) { d.Shapes = d.Shapes[1:] }, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := valid
			doc.Shapes = append([]Shape(nil), valid.Shapes...)
			tt.mutate(&doc)
			_, err := Parse(doc)
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestReadDocumentFileMissing(t *testing.T) {
	_, err := ReadDocumentFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want %v", err, errors.ErrCodeFileNotFound)
	}
}
