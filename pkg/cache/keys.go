package cache

const (
	keyPrefixLayout   = "layout"
	keyPrefixArtifact = "artifact"
)

// LayoutKeyOpts holds every option that changes a computed layout.
type LayoutKeyOpts struct {
	VizType     string  `json:"viz_type"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	BaseWeight  float64 `json:"base_weight"`
	PadAngle    float64 `json:"pad_angle"`
	FlowScale   float64 `json:"flow_scale"`
	FlowEpsilon float64 `json:"flow_epsilon"`
	Engine      string  `json:"engine,omitempty"`
	Style       string  `json:"style"`
	Seed        int64   `json:"seed"`
}

// ArtifactKeyOpts holds every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Style       string  `json:"style"`
	Interactive bool    `json:"interactive"`
	Scale       float64 `json:"scale,omitempty"`
	Palette     string  `json:"palette,omitempty"`
	Title       string  `json:"title,omitempty"`
	Detailed    bool    `json:"detailed,omitempty"`
}

// Keyer derives cache keys from content hashes and options.
type Keyer interface {
	// LayoutKey keys a layout by the hash of its input dataset.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by the hash of its layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unscoped "kind:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey(keyPrefixLayout, datasetHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey(keyPrefixArtifact, layoutHash, opts)
}
