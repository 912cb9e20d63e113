package cache

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	// GridKey keys an encoded grid by its payload and encoder options.
	GridKey(payload []byte, opts GridKeyOpts) string
	// LayoutKey keys a layout by the hash of its grid and the layout parameters.
	LayoutKey(gridHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys a rendered output by the hash of its layout document.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// GridKeyOpts are the encoder inputs besides the payload.
type GridKeyOpts struct {
	Level string `json:"level"`
}

// LayoutKeyOpts are the layout parameters.
type LayoutKeyOpts struct {
	BlockSize           float64 `json:"block_size"`
	CornerMarkerSize    int     `json:"corner_marker_size"`
	CenterExclusionSize float64 `json:"center_exclusion_size"`
}

// ArtifactKeyOpts are the render options that change the output bytes.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Style       string  `json:"style,omitempty"`
	Foreground  string  `json:"foreground,omitempty"`
	Background  string  `json:"background,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
	Margin      float64 `json:"margin"`
	OverlayHash string  `json:"overlay_hash,omitempty"`
}

// DefaultKeyer hashes stage inputs into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) GridKey(payload []byte, opts GridKeyOpts) string {
	return hashKey("grid", Hash(payload), opts)
}

func (DefaultKeyer) LayoutKey(gridHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", gridHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
