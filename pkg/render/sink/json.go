package sink

import "github.com/matzehuels/qrdots/pkg/layout"

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	meta layout.Meta
}

// WithJSONPayload records the encoded payload in the output.
func WithJSONPayload(p string) JSONOption { return func(r *jsonRenderer) { r.meta.Payload = p } }

// WithJSONLevel records the error correction level in the output.
func WithJSONLevel(level string) JSONOption { return func(r *jsonRenderer) { r.meta.Level = level } }

// WithJSONStyle records the style name (e.g., "dots", "rounded") so the
// layout can be re-rendered the same way.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.meta.Style = s } }

// RenderJSON exports the layout as a [layout.Document]. The output can be read
// back with [layout.UnmarshalDocument] and rendered identically.
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}
	doc := l.Export()
	if r.meta != (layout.Meta{}) {
		meta := r.meta
		doc.Meta = &meta
	}
	return layout.MarshalDocument(doc)
}
