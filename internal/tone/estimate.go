package tone

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Estimate is a vision model's raw answer. Every field is optional and may be
// malformed; the reconciler substitutes defaults rather than failing.
type Estimate struct {
	Temperature string `json:"temperature,omitempty"`
	Season      string `json:"season,omitempty"`
	ColorHex    string `json:"colorHex,omitempty"`

	// Lightness and Clarity are expected in [0, 1].
	Lightness *float64 `json:"lightness,omitempty"`
	Clarity   *float64 `json:"clarity,omitempty"`

	// LightingBias is expected in [-1, 1]. Negative means the model believes
	// the ambient light skewed cool, positive that it skewed warm.
	LightingBias *float64 `json:"lightingBias,omitempty"`
}

// Float returns a pointer to v, for building estimates in code.
func Float(v float64) *float64 {
	return &v
}

// IsZero reports whether the estimate carries no field at all. Blank strings
// count as absent.
func (e Estimate) IsZero() bool {
	return strings.TrimSpace(e.Temperature) == "" &&
		strings.TrimSpace(e.Season) == "" &&
		strings.TrimSpace(e.ColorHex) == "" &&
		e.Lightness == nil && e.Clarity == nil && e.LightingBias == nil
}

// Field aliases, keyed by the lower-cased name with '_' and '-' removed.
var (
	temperatureKeys  = []string{"temperature", "skintemp", "undertone"}
	seasonKeys       = []string{"season", "skinseason"}
	colorHexKeys     = []string{"colorhex", "colourhex", "hex", "color", "colour"}
	lightnessKeys    = []string{"lightness"}
	clarityKeys      = []string{"clarity"}
	lightingBiasKeys = []string{"lightingbias"}
)

// UnmarshalJSON decodes an estimate tolerantly. Any syntactically valid JSON
// is accepted: non-object documents decode as an empty estimate, and fields of
// the wrong type decode as absent. Numeric fields may also be given as strings.
func (e *Estimate) UnmarshalJSON(data []byte) error {
	*e = Estimate{}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	fields := make(map[string]json.RawMessage, len(raw))
	for k, v := range raw {
		fields[normaliseKey(k)] = v
	}

	e.Temperature = stringField(fields, temperatureKeys)
	e.Season = stringField(fields, seasonKeys)
	e.ColorHex = stringField(fields, colorHexKeys)
	e.Lightness = numberField(fields, lightnessKeys)
	e.Clarity = numberField(fields, clarityKeys)
	e.LightingBias = numberField(fields, lightingBiasKeys)
	return nil
}

// ParseEstimate extracts an estimate from a model's text answer. The answer may
// wrap the JSON object in prose or a markdown code fence, and the prose may
// itself contain braces. Text without a JSON object yields an empty estimate.
func ParseEstimate(text string) Estimate {
	var e Estimate
	body, ok := firstObject(text)
	if !ok {
		return e
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return Estimate{}
	}
	return e
}

// firstObject returns the first complete JSON object embedded in s. Each '{'
// is tried in turn as the start of a value; a candidate that does not decode
// is skipped.
func firstObject(s string) (json.RawMessage, bool) {
	for i := 0; i < len(s); i++ {
		j := strings.IndexByte(s[i:], '{')
		if j < 0 {
			return nil, false
		}
		i += j

		var raw json.RawMessage
		if err := json.NewDecoder(strings.NewReader(s[i:])).Decode(&raw); err == nil {
			return raw, true
		}
	}
	return nil, false
}

func normaliseKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(k)
}

func stringField(fields map[string]json.RawMessage, keys []string) string {
	for _, k := range keys {
		raw, ok := fields[k]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func numberField(fields map[string]json.RawMessage, keys []string) *float64 {
	for _, k := range keys {
		raw, ok := fields[k]
		if !ok {
			continue
		}

		var f float64
		if err := json.Unmarshal(raw, &f); err == nil {
			return &f
		}

		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && isFinite(f) {
				return &f
			}
		}
	}
	return nil
}
