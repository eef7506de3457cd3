// Package colour converts sampled skin colours into CIE L*a*b* and derives the
// scalar metrics used by the tone reconciler.
package colour

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultHex is the neutral skin tone substituted whenever a sample cannot be parsed.
// It is roughly RGB (0.85, 0.75, 0.65).
const DefaultHex = "#D9BFA5"

// hexPattern accepts exactly six hex digits with an optional leading '#'.
var hexPattern = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// Sample is a single representative colour with channels in [0, 1].
type Sample struct {
	c colorful.Color
}

// NewSample creates a Sample from channel values, clamping each to [0, 1].
// Non-finite channels are treated as 0.
func NewSample(r, g, b float64) Sample {
	return Sample{c: colorful.Color{R: clamp01(r), G: clamp01(g), B: clamp01(b)}}
}

// DefaultSample returns the fallback sample parsed from DefaultHex.
func DefaultSample() Sample {
	s, _ := ParseSample(DefaultHex)
	return s
}

// ParseSample parses a strict 6-digit hex colour ("#a1b2c3" or "A1B2C3").
// Shorthand, named and rgb() forms are rejected.
func ParseSample(s string) (Sample, bool) {
	if !IsValidHex(s) {
		return Sample{}, false
	}
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Sample{}, false
	}
	return Sample{c: c}, true
}

// SampleOrDefault parses s, falling back to DefaultSample when it is malformed.
func SampleOrDefault(s string) Sample {
	if sample, ok := ParseSample(s); ok {
		return sample
	}
	return DefaultSample()
}

// IsValidHex reports whether s is a strict 6-digit hex colour.
func IsValidHex(s string) bool {
	return hexPattern.MatchString(strings.TrimSpace(s))
}

// RGB returns the channel values in [0, 1].
func (s Sample) RGB() (r, g, b float64) {
	return s.c.R, s.c.G, s.c.B
}

// RGB8 returns the channel values scaled to 0-255.
func (s Sample) RGB8() (r, g, b uint8) {
	return s.c.RGB255()
}

// Hex returns the sample as an upper-case "#RRGGBB" string.
func (s Sample) Hex() string {
	return strings.ToUpper(s.c.Clamped().Hex())
}

// String returns the sample in the format "rgb(r, g, b)".
func (s Sample) String() string {
	r, g, b := s.RGB8()
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
