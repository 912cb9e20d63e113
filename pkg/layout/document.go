package layout

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/qrdots/pkg/errors"
)

// DocumentVersion is the current layout document schema version.
const DocumentVersion = 1

// Document is the serialization format of a Layout.
type Document struct {
	Version     int     `json:"version"`
	Columns     int     `json:"columns"`
	Rows        int     `json:"rows"`
	Params      Params  `json:"params"`
	FrameWidth  float64 `json:"frame_width"`
	FrameHeight float64 `json:"frame_height"`
	Center      Zone    `json:"center"`
	Corners     []Zone  `json:"corners"`
	Shapes      []Shape `json:"shapes"`
	Meta        *Meta   `json:"meta,omitempty"`
}

// Meta records how a layout was produced.
type Meta struct {
	Payload string `json:"payload,omitempty"`
	Level   string `json:"level,omitempty"`
	Style   string `json:"style,omitempty"`
}

// Export converts a Layout to its serialization format.
func (l Layout) Export() Document {
	return Document{
		Version:     DocumentVersion,
		Columns:     l.Columns,
		Rows:        l.Rows,
		Params:      l.Params,
		FrameWidth:  l.FrameWidth,
		FrameHeight: l.FrameHeight,
		Center:      l.Center,
		Corners:     l.Corners,
		Shapes:      l.Shapes,
	}
}

// Parse converts a Document back into a Layout.
// It rejects documents from newer schema versions, invalid parameters and
// documents whose first shape is not the plate.
func Parse(doc Document) (Layout, error) {
	if doc.Version > DocumentVersion {
		return Layout{}, errors.New(errors.ErrCodeUnsupported, "layout document version %d is newer than %d", doc.Version, DocumentVersion)
	}
	if err := doc.Params.Validate(); err != nil {
		return Layout{}, err
	}
	if len(doc.Shapes) == 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "layout document must contain shapes")
	}
	if !doc.Shapes[0].IsPlate() {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "layout document must start with the background plate")
	}
	return Layout{
		Params:      doc.Params,
		Columns:     doc.Columns,
		Rows:        doc.Rows,
		FrameWidth:  doc.FrameWidth,
		FrameHeight: doc.FrameHeight,
		Center:      doc.Center,
		Corners:     doc.Corners,
		Shapes:      doc.Shapes,
	}, nil
}

// =============================================================================
// Document Serialization API
// =============================================================================

// MarshalDocument serializes a Document to pretty-printed JSON bytes.
func MarshalDocument(d Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// UnmarshalDocument deserializes JSON bytes into a Document.
func UnmarshalDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if d.Version == 0 {
		d.Version = DocumentVersion
	}
	if len(d.Shapes) == 0 {
		return Document{}, fmt.Errorf("layout must contain shapes")
	}
	return d, nil
}

// WriteDocumentFile writes a Document to a JSON file.
func WriteDocumentFile(d Document, path string) error {
	data, err := MarshalDocument(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadDocumentFile reads a Document from a JSON file.
func ReadDocumentFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalDocument(data)
}
