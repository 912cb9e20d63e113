package grid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/qrdots/pkg/errors"
)

// document is the JSON form of a Grid.
type document struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Rows   []string `json:"rows"`
}

// MarshalJSON implements json.Marshaler.
func (g Grid) MarshalJSON() ([]byte, error) {
	doc := document{Width: g.width, Height: g.height, Rows: make([]string, g.height)}
	for r := 0; r < g.height; r++ {
		doc.Rows[r] = g.row(r)
	}
	return json.Marshal(doc)
}

// UnmarshalJSON implements json.Unmarshaler. The decoded rows are validated
// as by New, and must agree with the declared width and height.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	rows := make([][]bool, len(doc.Rows))
	for i, line := range doc.Rows {
		row := make([]bool, 0, len(line))
		for _, r := range line {
			row = append(row, r == DarkRune)
		}
		rows[i] = row
	}

	parsed, err := New(rows)
	if err != nil {
		return err
	}
	if parsed.width != doc.Width || parsed.height != doc.Height {
		return errors.New(errors.ErrCodeInvalidGrid,
			"declared size %dx%d does not match rows %dx%d",
			doc.Width, doc.Height, parsed.width, parsed.height)
	}
	*g = parsed
	return nil
}

// =============================================================================
// Grid Serialization API
// =============================================================================

// Marshal converts a Grid to indented JSON bytes.
func Marshal(g Grid) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes JSON bytes into a Grid.
func Unmarshal(data []byte) (Grid, error) {
	return Read(bytes.NewReader(data))
}

// Write writes a Grid as indented JSON to w.
func Write(g Grid, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a JSON grid from r.
func Read(r io.Reader) (Grid, error) {
	var g Grid
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Grid{}, fmt.Errorf("decode: %w", err)
	}
	return g, nil
}

// WriteFile writes a Grid to a JSON file with 0644 permissions.
func WriteFile(g Grid, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, f)
}

// ReadFile reads a Grid from a JSON file.
func ReadFile(path string) (Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Grid{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Grid{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
