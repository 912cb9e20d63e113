package cli

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/matzehuels/qrdots/pkg/pipeline"
	"github.com/matzehuels/qrdots/pkg/render"
)

// stdoutPath selects stdout as the output of single-format commands.
const stdoutPath = "-"

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// "-" means os.Stdout; otherwise the file is created, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == stdoutPath {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// writeFile writes data to path (or stdout) and closes it.
func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string // input file, used to derive output names
	output    string // explicit output file (single format) or base path
}

// outputPaths maps each format to its destination. A single format with an
// explicit output is written there verbatim; otherwise files are named
// <base>.<format>.
func outputPaths(p artifactWriteParams) (map[string]string, error) {
	paths := make(map[string]string, len(p.formats))
	if len(p.formats) == 1 && p.output != "" {
		paths[p.formats[0]] = p.output
		return paths, nil
	}
	if p.output == stdoutPath {
		return nil, fmt.Errorf("stdout output needs exactly one format, got %d", len(p.formats))
	}
	base := basePath(p.output, p.input)
	for _, format := range p.formats {
		paths[format] = base + "." + format
	}
	return paths, nil
}

// writeArtifacts writes every artifact and returns the paths written, in
// format order.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	paths, err := outputPaths(p)
	if err != nil {
		return nil, err
	}
	written := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := paths[format]
		if err := writeFile(path, data); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// printWritten lists written files, skipping stdout.
func printWritten(paths []string) {
	for _, path := range paths {
		if path != stdoutPath {
			printFile(path)
		}
	}
}

// dropUnavailablePDF removes pdf from the requested formats when rsvg-convert
// is missing, so the remaining formats still render.
func dropUnavailablePDF(opts *pipeline.Options) {
	if !slices.Contains(opts.Formats, pipeline.FormatPDF) || render.Available() {
		return
	}
	printWarning("PDF output needs rsvg-convert (librsvg); skipping pdf")
	opts.Formats = slices.DeleteFunc(slices.Clone(opts.Formats), func(f string) bool {
		return f == pipeline.FormatPDF
	})
}
