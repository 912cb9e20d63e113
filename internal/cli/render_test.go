package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrdots/internal/config"
	"github.com/matzehuels/qrdots/pkg/grid"
	"github.com/matzehuels/qrdots/pkg/layout"
)

func writeTestConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"json only", "json", []string{"json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestOptionsFlagsOverrideConfig(t *testing.T) {
	c := newTestCLI(t)
	cfg, err := config.Parse([]byte("[qr]\nlevel = \"low\"\n[render]\nstyle = \"rounded\"\nscale = 4\n"))
	if err != nil {
		t.Fatal(err)
	}
	c.Config = cfg

	flags := &optionFlags{}
	cmd := &cobra.Command{Use: "test"}
	flags.addEncodeFlags(cmd)
	flags.addLayoutFlags(cmd)
	flags.addRenderFlags(cmd)
	if err := cmd.ParseFlags([]string{"--level", "high", "-f", "svg,png", "--margin", "0", "--center-size", "50"}); err != nil {
		t.Fatal(err)
	}

	opts := c.options(cmd, flags, "hello")

	if opts.Payload != "hello" {
		t.Errorf("Payload = %q", opts.Payload)
	}
	if opts.Level != "high" {
		t.Errorf("Level = %q, flag should win over config", opts.Level)
	}
	if opts.Style != "rounded" || opts.Scale != 4 {
		t.Errorf("Style/Scale = %q/%v, config should apply to unset flags", opts.Style, opts.Scale)
	}
	if diff := cmp.Diff([]string{"svg", "png"}, opts.Formats); diff != "" {
		t.Errorf("Formats mismatch (-want +got):\n%s", diff)
	}
	if opts.Margin == nil || *opts.Margin != 0 {
		t.Errorf("explicit --margin 0 should be kept, got %v", opts.Margin)
	}
	if opts.CenterExclusionSize != 50 {
		t.Errorf("CenterExclusionSize = %v", opts.CenterExclusionSize)
	}
	if opts.BlockSize != 0 {
		t.Errorf("unset block size should stay zero for pipeline defaults, got %v", opts.BlockSize)
	}
	if opts.Logger != c.Logger {
		t.Error("options should carry the CLI logger")
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		params  artifactWriteParams
		want    map[string]string
		wantErr bool
	}{
		{
			name:   "single format explicit output",
			params: artifactWriteParams{formats: []string{"png"}, output: "out/logo.png"},
			want:   map[string]string{"png": "out/logo.png"},
		},
		{
			name:   "multiple formats base path",
			params: artifactWriteParams{formats: []string{"svg", "png"}, output: "logo.svg"},
			want:   map[string]string{"svg": "logo.svg", "png": "logo.png"},
		},
		{
			name:   "derived from input",
			params: artifactWriteParams{formats: []string{"svg"}, input: "grid.layout.json"},
			want:   map[string]string{"svg": "grid.svg"},
		},
		{
			name:   "default base",
			params: artifactWriteParams{formats: []string{"svg", "json"}},
			want:   map[string]string{"svg": "qr.svg", "json": "qr.json"},
		},
		{
			name:    "stdout needs one format",
			params:  artifactWriteParams{formats: []string{"svg", "png"}, output: "-"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := outputPaths(tt.params)
			if (err != nil) != tt.wantErr {
				t.Fatalf("outputPaths() error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); !tt.wantErr && diff != "" {
				t.Errorf("outputPaths() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "logo")

	written, err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")},
		formats:   []string{"svg", "json"},
		output:    base,
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{base + ".svg", base + ".json"}, written); diff != "" {
		t.Errorf("written mismatch (-want +got):\n%s", diff)
	}
	data, err := os.ReadFile(base + ".svg")
	if err != nil || string(data) != "<svg/>" {
		t.Errorf("svg file = %q, %v", data, err)
	}
}

func TestRenderCommand(t *testing.T) {
	c := newTestCLI(t)
	out := filepath.Join(t.TempDir(), "hello")

	root := c.RootCommand()
	root.SetArgs([]string{"render", "hello", "-f", "svg,json", "-o", out, "--style", "rounded"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render: %v", err)
	}

	svg, err := os.ReadFile(out + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("unexpected svg output: %.40s", svg)
	}

	doc, err := layout.ReadDocumentFile(out + ".json")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Meta == nil || doc.Meta.Payload != "hello" || doc.Meta.Style != "rounded" {
		t.Errorf("meta = %+v", doc.Meta)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	c := newTestCLI(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad format", []string{"render", "x", "-f", "gif"}, "invalid format"},
		{"bad style", []string{"render", "x", "--style", "handdrawn"}, "style"},
		{"bad colour", []string{"render", "x", "--fg", "navy"}, "colo"},
		{"missing overlay", []string{"render", "x", "--overlay", filepath.Join(t.TempDir(), "nope.png")}, "nope.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := c.RootCommand()
			root.SetArgs(append(tt.args, "-o", filepath.Join(t.TempDir(), "qr")))
			root.SetErr(&bytes.Buffer{})
			err := root.ExecuteContext(context.Background())
			if err == nil || !strings.Contains(strings.ToLower(err.Error()), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestEncodeLayoutVisualize(t *testing.T) {
	c := newTestCLI(t)
	dir := t.TempDir()
	ctx := context.Background()
	gridPath := filepath.Join(dir, "grid.json")

	run := func(args ...string) {
		t.Helper()
		root := c.RootCommand()
		root.SetArgs(args)
		if err := root.ExecuteContext(ctx); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	run("encode", "-o", gridPath)
	g, err := grid.ReadFile(gridPath)
	if err != nil {
		t.Fatal(err)
	}
	if g.Width() != 25 {
		t.Errorf("default payload should encode to 25 modules, got %d", g.Width())
	}

	run("layout", gridPath)
	layoutPath := filepath.Join(dir, "grid.layout.json")
	doc, err := layout.ReadDocumentFile(layoutPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Shapes) != 577 {
		t.Errorf("layout shapes = %d, want 577", len(doc.Shapes))
	}

	run("visualize", layoutPath, "-f", "svg")
	if _, err := os.Stat(filepath.Join(dir, "grid.svg")); err != nil {
		t.Errorf("visualize should write grid.svg: %v", err)
	}
}

func TestEncodeText(t *testing.T) {
	c := newTestCLI(t)
	out := filepath.Join(t.TempDir(), "grid.txt")

	root := c.RootCommand()
	root.SetArgs([]string{"encode", "A", "--text", "-o", out, "--level", "low"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 21 || len(lines[0]) != 21 {
		t.Errorf("version 1 text grid should be 21x21, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "#######") {
		t.Errorf("first row should start with a finder pattern, got %q", lines[0])
	}
}

func TestRootCommand(t *testing.T) {
	c := newTestCLI(t)
	root := c.RootCommand()

	want := []string{"cache", "completion", "encode", "layout", "preview", "render", "serve", "visualize"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("missing subcommand %q", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("missing --config flag")
	}
}
