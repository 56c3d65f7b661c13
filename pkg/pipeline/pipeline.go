// Package pipeline provides the core visualization pipeline for chordwheel.
//
// This package implements the complete load → layout → render pipeline that
// is shared by the CLI and the HTTP server. By centralizing this logic, both
// entry points apply the same defaults, limits and cache keys.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a word dataset from a file or request body
//  2. Layout: Compute arcs and ribbons for the dataset
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Style:   "gradient",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, ds, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	ds, err := runner.Load(ctx, "words.yaml")
//
//	// Layout with an existing dataset
//	layout, err := runner.GenerateLayout(ctx, ds, opts)
//
//	// Render an existing layout
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chordwheel/pkg/cache"
	"github.com/matzehuels/chordwheel/pkg/errors"
	"github.com/matzehuels/chordwheel/pkg/graph"
	pkgio "github.com/matzehuels/chordwheel/pkg/io"
	"github.com/matzehuels/chordwheel/pkg/render/chord/layout"
	"github.com/matzehuels/chordwheel/pkg/render/chord/sentiment"
	"github.com/matzehuels/chordwheel/pkg/render/nodelink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 800.0

	// DefaultSeed is the default seed for the hand-drawn style.
	DefaultSeed = int64(42)

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0

	// MaxNodeCount caps the number of nodes a dataset may ask for.
	MaxNodeCount = 64

	// MaxWords caps the number of words in one dataset.
	MaxWords = 10000

	// MaxDimension caps the frame width and height.
	MaxDimension = 10000.0
)

// DefaultVizType is the default visualization type.
const DefaultVizType = graph.VizTypeChord

// DefaultStyle is the default visual style.
const DefaultStyle = graph.StyleGradient

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	graph.StyleSimple:    true,
	graph.StyleGradient:  true,
	graph.StyleHanddrawn: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	graph.VizTypeChord:    true,
	graph.VizTypeNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Palette overrides the sentiment colors. Empty fields keep the defaults.
type Palette struct {
	Positive string `json:"positive,omitempty" validate:"omitempty,rgbhex"`
	Neutral  string `json:"neutral,omitempty" validate:"omitempty,rgbhex"`
	Negative string `json:"negative,omitempty" validate:"omitempty,rgbhex"`
}

// IsZero reports whether no color is overridden.
func (p Palette) IsZero() bool { return p == Palette{} }

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
//
// Zero values select the defaults, so a layout constant cannot be set to
// exactly zero through Options.
type Options struct {
	// Layout options
	VizType     string  `json:"viz_type,omitempty" validate:"omitempty,oneof=chord nodelink"`
	Width       float64 `json:"width,omitempty" validate:"gte=0,lte=10000"`
	Height      float64 `json:"height,omitempty" validate:"gte=0,lte=10000"`
	BaseWeight  float64 `json:"base_weight,omitempty" validate:"gte=0"`
	PadAngle    float64 `json:"pad_angle,omitempty" validate:"gte=0"`
	FlowScale   float64 `json:"flow_scale,omitempty" validate:"gte=0"`
	FlowEpsilon float64 `json:"flow_epsilon,omitempty" validate:"gte=0"`
	Engine      string  `json:"engine,omitempty" validate:"omitempty,oneof=circo neato twopi fdp"`
	Seed        int64   `json:"seed,omitempty"`

	// Render options
	Formats       []string `json:"formats,omitempty" validate:"dive,oneof=svg png pdf json"`
	Style         string   `json:"style,omitempty" validate:"omitempty,oneof=simple gradient handdrawn"`
	Palette       Palette  `json:"palette,omitempty"`
	Scale         float64  `json:"scale,omitempty" validate:"gte=0,lte=8"`
	NoInteraction bool     `json:"no_interaction,omitempty"`
	Title         string   `json:"title,omitempty" validate:"max=256"`
	Detailed      bool     `json:"detailed,omitempty"` // nodelink labels with word statistics

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// DatasetHash is the content hash of the input dataset.
	DatasetHash string

	// Layout contains the serialized layout.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	WordCount   int
	RibbonCount int
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: simple, gradient, handdrawn)", style)
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: chord, nodelink)", vizType)
	}
	return nil
}

// ValidateDataset enforces the dataset limits and checks every word.
func ValidateDataset(ds graph.Dataset) error {
	if len(ds.Words) > MaxWords {
		return errors.New(errors.ErrCodeTooLarge, "dataset has %d words, limit is %d", len(ds.Words), MaxWords)
	}
	if err := errors.ValidateNodeCount(ds.EffectiveNodeCount(), MaxNodeCount); err != nil {
		return err
	}
	return pkgio.Validate(ds)
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and validates the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.BaseWeight == 0 {
		o.BaseWeight = layout.DefaultBaseWeight
	}
	if o.PadAngle == 0 {
		o.PadAngle = layout.DefaultPadAngle
	}
	if o.FlowScale == 0 {
		o.FlowScale = layout.DefaultFlowScale
	}
	if o.FlowEpsilon == 0 {
		o.FlowEpsilon = layout.DefaultFlowEpsilon
	}
	if o.VizType == graph.VizTypeNodelink && o.Engine == "" {
		o.Engine = string(nodelink.DefaultEngine)
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if o.Width > MaxDimension || o.Height > MaxDimension || o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "frame %gx%g outside (0, %g]", o.Width, o.Height, MaxDimension)
	}
	if o.VizType == graph.VizTypeNodelink {
		if _, err := nodelink.ParseEngine(o.Engine); err != nil {
			return err
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	_, err := o.palette()
	return err
}

// IsChord returns true if this is a chord visualization.
func (o *Options) IsChord() bool {
	return o.VizType == "" || o.VizType == graph.VizTypeChord
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == graph.VizTypeNodelink
}

// LayoutOptions converts the layout constants into engine options.
func (o *Options) LayoutOptions() []layout.Option {
	return []layout.Option{
		layout.WithBaseWeight(o.BaseWeight),
		layout.WithPadAngle(o.PadAngle),
		layout.WithFlowScale(o.FlowScale),
		layout.WithFlowEpsilon(o.FlowEpsilon),
	}
}

// palette builds the sentiment palette, filling unset colors from the defaults.
func (o *Options) palette() (sentiment.Palette, error) {
	if o.Palette.IsZero() {
		return sentiment.DefaultPalette(), nil
	}
	pos, neu, neg := o.Palette.Positive, o.Palette.Neutral, o.Palette.Negative
	if pos == "" {
		pos = sentiment.DefaultPositive
	}
	if neu == "" {
		neu = sentiment.DefaultNeutral
	}
	if neg == "" {
		neg = sentiment.DefaultNegative
	}
	p, err := sentiment.NewPalette(pos, neu, neg)
	if err != nil {
		return sentiment.Palette{}, fmt.Errorf("palette: %w", err)
	}
	return p, nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		VizType:     o.VizType,
		Width:       o.Width,
		Height:      o.Height,
		BaseWeight:  o.BaseWeight,
		PadAngle:    o.PadAngle,
		FlowScale:   o.FlowScale,
		FlowEpsilon: o.FlowEpsilon,
		Engine:      o.Engine,
		Style:       o.Style,
		Seed:        o.Seed,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:      format,
		Style:       o.Style,
		Interactive: !o.NoInteraction,
		Title:       o.Title,
		Detailed:    o.Detailed,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	if !o.Palette.IsZero() {
		k.Palette = o.Palette.Positive + "," + o.Palette.Neutral + "," + o.Palette.Negative
	}
	return k
}
