package sentiment

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/chordwheel/pkg/errors"
)

// Default band colors.
const (
	DefaultPositive = "#4caf50"
	DefaultNeutral  = "#9e9e9e"
	DefaultNegative = "#e53935"
)

const (
	lightenBy = 0.45
	darkenBy  = 0.3
)

// Swatch is the color set for one band: a flat fill plus light, base and
// dark gradient stops.
type Swatch struct {
	Fill  string    `json:"fill"`
	Stops [3]string `json:"stops"`
}

// Paint is a resolved fill with its opacity.
type Paint struct {
	Fill    string  `json:"fill"`
	Opacity float64 `json:"opacity"`
}

// Palette assigns a swatch to each band.
type Palette struct {
	Positive Swatch `json:"positive"`
	Neutral  Swatch `json:"neutral"`
	Negative Swatch `json:"negative"`
}

// DefaultPalette returns green, grey and red swatches.
func DefaultPalette() Palette {
	p, err := NewPalette(DefaultPositive, DefaultNeutral, DefaultNegative)
	if err != nil {
		panic(err) // constants are valid hex
	}
	return p
}

// NewPalette builds a palette from three hex colors. Gradient stops are
// blended in Lab space toward white and black so every band keeps its hue.
func NewPalette(positive, neutral, negative string) (Palette, error) {
	pos, err := swatchFor(positive)
	if err != nil {
		return Palette{}, err
	}
	neu, err := swatchFor(neutral)
	if err != nil {
		return Palette{}, err
	}
	neg, err := swatchFor(negative)
	if err != nil {
		return Palette{}, err
	}
	return Palette{Positive: pos, Neutral: neu, Negative: neg}, nil
}

func swatchFor(hex string) (Swatch, error) {
	if err := errors.ValidateHexColor(hex); err != nil {
		return Swatch{}, err
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Swatch{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "parse color %q", hex)
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	black := colorful.Color{}
	return Swatch{
		Fill: c.Hex(),
		Stops: [3]string{
			c.BlendLab(white, lightenBy).Clamped().Hex(),
			c.Hex(),
			c.BlendLab(black, darkenBy).Clamped().Hex(),
		},
	}, nil
}

// Swatch returns the swatch for band b.
func (p Palette) Swatch(b Band) Swatch {
	switch b {
	case Positive:
		return p.Positive
	case Negative:
		return p.Negative
	default:
		return p.Neutral
	}
}

// ArcColor returns the fill for a node arc with the given average value.
func (p Palette) ArcColor(avg float64) string {
	return p.Swatch(BandOf(avg)).Fill
}

// RibbonColor returns the fill and opacity for a ribbon.
func (p Palette) RibbonColor(avg, overlap float64) Paint {
	return Paint{
		Fill:    p.Swatch(BandOf(avg)).Fill,
		Opacity: Opacity(overlap),
	}
}
