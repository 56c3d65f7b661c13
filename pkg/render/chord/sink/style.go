package sink

import (
	"github.com/matzehuels/chordwheel/pkg/errors"
	"github.com/matzehuels/chordwheel/pkg/render/chord/styles"
	"github.com/matzehuels/chordwheel/pkg/render/chord/styles/handdrawn"
)

// StyleNames lists the built-in style names.
var StyleNames = []string{styles.NameSimple, styles.NameGradient, styles.NameHanddrawn}

// StyleByName returns the built-in style with the given name. The seed only
// affects the hand-drawn style. An empty name selects the simple style.
func StyleByName(name string, seed int64) (styles.Style, error) {
	switch name {
	case styles.NameSimple, "":
		return styles.Simple{}, nil
	case styles.NameGradient:
		return styles.Gradient{}, nil
	case styles.NameHanddrawn:
		return handdrawn.New(seed), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style: %s (valid: %v)", name, StyleNames)
	}
}
