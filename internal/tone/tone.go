// Package tone reconciles a vision model's skin-tone estimate with colorimetric
// evidence and derives a seasonal palette verdict.
//
// Classification never fails: missing, malformed or out-of-range input degrades
// to documented defaults, and every Verdict carries a valid temperature, season
// and colour.
package tone

import "github.com/jmylchreest/undertone/internal/colour"

// Temperature is the undertone of a skin sample.
type Temperature string

const (
	TemperatureWarm    Temperature = "warm"
	TemperatureCool    Temperature = "cool"
	TemperatureNeutral Temperature = "neutral"
)

// Temperatures returns every valid temperature.
func Temperatures() []Temperature {
	return []Temperature{TemperatureWarm, TemperatureCool, TemperatureNeutral}
}

// Valid reports whether t is one of the enumerated temperatures.
func (t Temperature) Valid() bool {
	switch t {
	case TemperatureWarm, TemperatureCool, TemperatureNeutral:
		return true
	}
	return false
}

func (t Temperature) String() string {
	return string(t)
}

// Season is a seasonal colour palette.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// Seasons returns every valid season.
func Seasons() []Season {
	return []Season{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter}
}

// Valid reports whether s is one of the enumerated seasons.
func (s Season) Valid() bool {
	switch s {
	case SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter:
		return true
	}
	return false
}

func (s Season) String() string {
	return string(s)
}

// Defaults used when the estimate carries no usable value.
const (
	DefaultTemperature = TemperatureNeutral
	DefaultSeason      = SeasonAutumn
	DefaultHex         = colour.DefaultHex
)

// Verdict is the final classification.
type Verdict struct {
	Temperature Temperature `json:"temperature"`
	Season      Season      `json:"season"`
	ColorHex    string      `json:"colorHex"`
}

// DefaultVerdict is returned for an estimate with no usable fields.
func DefaultVerdict() Verdict {
	return Verdict{
		Temperature: DefaultTemperature,
		Season:      DefaultSeason,
		ColorHex:    DefaultHex,
	}
}
