package tone

import (
	"strings"

	"github.com/jmylchreest/undertone/internal/colour"
)

// temperatureKeywords are matched in order; the first hit wins.
var temperatureKeywords = []struct {
	keyword string
	value   Temperature
}{
	{"warm", TemperatureWarm},
	{"cool", TemperatureCool},
	{"cold", TemperatureCool},
	{"neutral", TemperatureNeutral},
}

var seasonKeywords = []struct {
	keyword string
	value   Season
}{
	{"spring", SeasonSpring},
	{"summer", SeasonSummer},
	{"autumn", SeasonAutumn},
	{"fall", SeasonAutumn},
	{"winter", SeasonWinter},
}

// CanonicalTemperature maps free text onto a Temperature by keyword.
// "Warm (golden)" becomes warm; unmatched text becomes neutral.
func CanonicalTemperature(s string) Temperature {
	lower := strings.ToLower(s)
	for _, k := range temperatureKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.value
		}
	}
	return DefaultTemperature
}

// CanonicalSeason maps free text onto a Season by keyword.
// "fall" is a synonym for autumn; unmatched text becomes autumn.
func CanonicalSeason(s string) Season {
	lower := strings.ToLower(s)
	for _, k := range seasonKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.value
		}
	}
	return DefaultSeason
}

// CanonicalHex returns s as an upper-case "#RRGGBB" string, or DefaultHex
// when s is not exactly six hex digits.
func CanonicalHex(s string) string {
	return colour.SampleOrDefault(s).Hex()
}
