package tone

import (
	"fmt"
	"math"

	"github.com/jmylchreest/undertone/internal/colour"
)

// Source identifies where an effective scalar or the season came from.
type Source string

const (
	SourceModel   Source = "model"
	SourceLab     Source = "lab"
	SourceDefault Source = "default"
)

// Rule names a temperature correction.
type Rule string

const (
	// RuleWarmLight reclassifies a warm verdict as cool when the model itself
	// reports warm ambient light and the Lab evidence is not warm.
	RuleWarmLight Rule = "warm-light"

	// RuleNeutralChroma resolves a neutral verdict on a strongly saturated
	// sample by the sign of b*.
	RuleNeutralChroma Rule = "neutral-chroma"
)

// Correction records a temperature change made by a rule.
type Correction struct {
	Rule Rule        `json:"rule"`
	From Temperature `json:"from"`
	To   Temperature `json:"to"`
}

func (c Correction) String() string {
	return fmt.Sprintf("%s: %s -> %s", c.Rule, c.From, c.To)
}

// Scalar is an effective lightness or chroma value with its provenance.
type Scalar struct {
	Value  float64 `json:"value"`
	Source Source  `json:"source"`
}

// Report is a verdict together with the evidence that produced it.
type Report struct {
	Verdict Verdict `json:"verdict"`

	// ModelTemperature and ModelSeason are the canonicalised model answer.
	ModelTemperature Temperature `json:"model_temperature"`
	ModelSeason      Season      `json:"model_season"`

	// Metrics are measured on the estimate's colour, or on the fallback
	// sample when ColourFallback is set.
	Metrics        colour.Metrics `json:"metrics"`
	ColourFallback bool           `json:"colour_fallback"`

	Lightness    Scalar  `json:"lightness"`
	Chroma       Scalar  `json:"chroma"`
	LightingBias float64 `json:"lighting_bias"`

	Corrections []Correction `json:"corrections,omitempty"`

	// SeasonSource is SourceModel when the season table ran on reported
	// lightness and clarity, SourceLab when it used at least one Lab value,
	// and SourceDefault for an estimate with no fields at all.
	SeasonSource Source `json:"season_source"`
}

// Reconciler applies the correction rules and season table with a fixed set of
// thresholds. The zero value is not usable; use NewReconciler or Classify.
type Reconciler struct {
	thresholds Thresholds
}

// NewReconciler creates a Reconciler after validating the thresholds.
func NewReconciler(t Thresholds) (Reconciler, error) {
	if err := t.Validate(); err != nil {
		return Reconciler{}, fmt.Errorf("invalid thresholds: %w", err)
	}
	return Reconciler{thresholds: t}, nil
}

// DefaultReconciler returns a Reconciler using DefaultThresholds.
func DefaultReconciler() Reconciler {
	return Reconciler{thresholds: DefaultThresholds()}
}

// Thresholds returns the thresholds in use.
func (r Reconciler) Thresholds() Thresholds {
	return r.thresholds
}

// Classify reconciles an estimate using the default thresholds.
func Classify(e Estimate) Verdict {
	return DefaultReconciler().Classify(e)
}

// Classify reconciles an estimate and returns only the verdict.
func (r Reconciler) Classify(e Estimate) Verdict {
	return r.Reconcile(e).Verdict
}

// Reconcile canonicalises the estimate, corrects its temperature against the
// Lab evidence and derives the season from the season table. A missing or
// malformed colour is replaced by the fallback sample before measuring. An
// estimate with no fields at all yields DefaultVerdict.
func (r Reconciler) Reconcile(e Estimate) Report {
	th := r.thresholds

	sample, ok := colour.ParseSample(e.ColorHex)
	if !ok {
		sample = colour.DefaultSample()
	}
	m := colour.Measure(sample)

	report := Report{
		ModelTemperature: CanonicalTemperature(e.Temperature),
		ModelSeason:      CanonicalSeason(e.Season),
		Metrics:          m,
		ColourFallback:   !ok,
		LightingBias:     clampOptional(e.LightingBias, -1, 1, 0),
		Lightness:        Scalar{Value: m.Lightness, Source: SourceLab},
		Chroma:           Scalar{Value: m.NormalisedChroma, Source: SourceLab},
	}

	if e.IsZero() {
		report.Verdict = DefaultVerdict()
		report.SeasonSource = SourceDefault
		return report
	}

	temp := report.ModelTemperature
	if temp == TemperatureWarm && report.LightingBias > th.WarmLightBias &&
		m.Lab.B < th.WarmLightMaxB && m.Lab.A < th.WarmLightMaxA {
		report.Corrections = append(report.Corrections, Correction{Rule: RuleWarmLight, From: temp, To: TemperatureCool})
		temp = TemperatureCool
	}

	if temp == TemperatureNeutral && m.NormalisedChroma > th.NeutralChroma {
		to := TemperatureCool
		if m.Lab.B >= 0 {
			to = TemperatureWarm
		}
		report.Corrections = append(report.Corrections, Correction{Rule: RuleNeutralChroma, From: temp, To: to})
		temp = to
	}

	if v, ok := unitValue(e.Lightness); ok {
		report.Lightness = Scalar{Value: v, Source: SourceModel}
	}
	if v, ok := unitValue(e.Clarity); ok {
		report.Chroma = Scalar{Value: v, Source: SourceModel}
	}

	report.SeasonSource = SourceLab
	if report.Lightness.Source == SourceModel && report.Chroma.Source == SourceModel {
		report.SeasonSource = SourceModel
	}

	report.Verdict = Verdict{
		Temperature: temp,
		Season:      th.Season(temp, report.Lightness.Value, report.Chroma.Value),
		ColorHex:    sample.Hex(),
	}
	return report
}

// unitValue returns a finite reported value clamped to [0, 1].
func unitValue(v *float64) (float64, bool) {
	if v == nil || !isFinite(*v) {
		return 0, false
	}
	return math.Max(0, math.Min(1, *v)), true
}

func clampOptional(v *float64, lo, hi, fallback float64) float64 {
	if v == nil || !isFinite(*v) {
		return fallback
	}
	return math.Max(lo, math.Min(hi, *v))
}
