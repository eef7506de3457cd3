package tone

import (
	"fmt"
	"math"
)

// Thresholds are the tunable cut-offs used by the correction rules and the
// season table. They were chosen empirically; DefaultThresholds preserves the
// established behaviour.
type Thresholds struct {
	// WarmLightBias is the reported lighting bias above which a warm verdict is
	// checked against the Lab evidence.
	WarmLightBias float64 `json:"warm_light_bias"`

	// WarmLightMaxB and WarmLightMaxA bound b* and a* below which the sample
	// is not objectively warm.
	WarmLightMaxB float64 `json:"warm_light_max_b"`
	WarmLightMaxA float64 `json:"warm_light_max_a"`

	// NeutralChroma is the normalised chroma above which a neutral verdict is
	// resolved to warm or cool.
	NeutralChroma float64 `json:"neutral_chroma"`

	// BrightLightness and BrightChroma split the season table. Both
	// comparisons are strict.
	BrightLightness float64 `json:"bright_lightness"`
	BrightChroma    float64 `json:"bright_chroma"`
}

// DefaultThresholds returns the standard thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		WarmLightBias:   0.3,
		WarmLightMaxB:   2,
		WarmLightMaxA:   10,
		NeutralChroma:   0.22,
		BrightLightness: 0.55,
		BrightChroma:    0.18,
	}
}

// Validate checks that every threshold is finite and inside its domain.
func (t Thresholds) Validate() error {
	unit := []struct {
		name  string
		value float64
	}{
		{"neutral chroma", t.NeutralChroma},
		{"bright lightness", t.BrightLightness},
		{"bright chroma", t.BrightChroma},
	}
	for _, u := range unit {
		if math.IsNaN(u.value) || u.value < 0 || u.value > 1 {
			return fmt.Errorf("%s threshold must be within [0, 1], got %v", u.name, u.value)
		}
	}
	if math.IsNaN(t.WarmLightBias) || t.WarmLightBias < -1 || t.WarmLightBias > 1 {
		return fmt.Errorf("warm light bias threshold must be within [-1, 1], got %v", t.WarmLightBias)
	}
	if !isFinite(t.WarmLightMaxA) || !isFinite(t.WarmLightMaxB) {
		return fmt.Errorf("warm light a*/b* thresholds must be finite, got a*=%v b*=%v", t.WarmLightMaxA, t.WarmLightMaxB)
	}
	return nil
}

// Season maps a temperature and effective lightness/chroma onto a season.
func (t Thresholds) Season(temp Temperature, lightness, chroma float64) Season {
	light := lightness > t.BrightLightness
	saturated := chroma > t.BrightChroma

	switch temp {
	case TemperatureWarm:
		if light && saturated {
			return SeasonSpring
		}
		return SeasonAutumn
	case TemperatureCool:
		if light && saturated {
			return SeasonSummer
		}
		return SeasonWinter
	default:
		if !saturated {
			return SeasonWinter
		}
		if light {
			return SeasonSummer
		}
		return SeasonAutumn
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
