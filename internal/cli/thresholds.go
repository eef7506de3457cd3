package cli

import (
	"github.com/spf13/pflag"

	"github.com/jmylchreest/undertone/internal/tone"
)

// registerThresholdFlags resets t to the default thresholds and binds a flag
// to each of its fields.
func registerThresholdFlags(fs *pflag.FlagSet, t *tone.Thresholds) {
	*t = tone.DefaultThresholds()

	fs.Float64Var(&t.WarmLightBias, "warm-light-bias", t.WarmLightBias, "lighting bias above which a warm verdict is checked against Lab")
	fs.Float64Var(&t.WarmLightMaxB, "warm-light-max-b", t.WarmLightMaxB, "b* below which a warm-lit sample is not objectively warm")
	fs.Float64Var(&t.WarmLightMaxA, "warm-light-max-a", t.WarmLightMaxA, "a* below which a warm-lit sample is not objectively warm")
	fs.Float64Var(&t.NeutralChroma, "neutral-chroma", t.NeutralChroma, "normalised chroma above which neutral is resolved to warm or cool")
	fs.Float64Var(&t.BrightLightness, "bright-lightness", t.BrightLightness, "lightness above which a palette counts as bright")
	fs.Float64Var(&t.BrightChroma, "bright-chroma", t.BrightChroma, "chroma above which a palette counts as bright")
}
