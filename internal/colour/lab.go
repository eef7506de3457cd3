package colour

import (
	"fmt"
	"math"
)

// D65 reference white, normalised so Y = 1.
const (
	whiteX = 0.95047
	whiteY = 1.0
	whiteZ = 1.08883
)

// labEpsilon is the knee of the CIE f(t) companding curve.
const labEpsilon = 0.008856

// Lab is a CIE L*a*b* coordinate relative to D65.
// L is in [0, 100]; a and b are unbounded but in practice within ±128.
type Lab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// String returns the coordinate as "Lab(L, a, b)".
func (lab Lab) String() string {
	return fmt.Sprintf("Lab(%.2f, %.2f, %.2f)", lab.L, lab.A, lab.B)
}

// Chroma returns sqrt(a² + b²).
func (lab Lab) Chroma() float64 {
	return math.Hypot(lab.A, lab.B)
}

// ToLab converts an sRGB sample to CIE L*a*b* (D65).
func ToLab(s Sample) Lab {
	r, g, b := s.RGB()
	r, g, b = linearise(r), linearise(g), linearise(b)

	x := 0.4124564*r + 0.3575761*g + 0.1804375*b
	y := 0.2126729*r + 0.7151522*g + 0.0721750*b
	z := 0.0193339*r + 0.1191920*g + 0.9503041*b

	fx := labF(x / whiteX)
	fy := labF(y / whiteY)
	fz := labF(z / whiteZ)

	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// linearise removes the sRGB transfer curve from a channel in [0, 1].
func linearise(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116.0
}

// Metrics holds the objective measurements derived from a sample.
type Metrics struct {
	Lab Lab `json:"lab"`

	// Chroma is sqrt(a² + b²) in Lab units.
	Chroma float64 `json:"chroma"`

	// Lightness is L/100, clamped to [0, 1].
	Lightness float64 `json:"lightness"`

	// NormalisedChroma is Chroma/100, clamped to [0, 1].
	NormalisedChroma float64 `json:"normalised_chroma"`
}

// Measure converts a sample to Lab and derives its chroma and lightness scalars.
func Measure(s Sample) Metrics {
	lab := ToLab(s)
	chroma := lab.Chroma()
	return Metrics{
		Lab:              lab,
		Chroma:           chroma,
		Lightness:        clamp01(lab.L / 100),
		NormalisedChroma: math.Min(1, chroma/100),
	}
}
