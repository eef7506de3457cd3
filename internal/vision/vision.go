// Package vision defines the boundary to the external model that estimates a
// skin tone from a photo. The classifier in package tone only ever sees the
// resulting tone.Estimate.
package vision

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmylchreest/undertone/internal/tone"
)

var (
	// ErrEmptyRequest is returned when a request carries no image.
	ErrEmptyRequest = errors.New("request has no image data")

	// ErrNoResponse is returned when the model answers with no usable text.
	ErrNoResponse = errors.New("model returned no response")
)

// Request is a single estimation request.
type Request struct {
	// Image is the encoded photo.
	Image []byte

	// MIMEType is the image's media type, e.g. "image/jpeg".
	MIMEType string

	// Hints are user-supplied notes ("olive skin", "photo taken under tungsten light").
	// The model may use them to refine its answer but should override obvious errors.
	Hints []string
}

// Estimator produces a raw skin-tone estimate for a photo.
type Estimator interface {
	Estimate(ctx context.Context, req Request) (tone.Estimate, error)
}

// EstimatorFunc adapts a function to the Estimator interface.
type EstimatorFunc func(ctx context.Context, req Request) (tone.Estimate, error)

// Estimate calls f(ctx, req).
func (f EstimatorFunc) Estimate(ctx context.Context, req Request) (tone.Estimate, error) {
	return f(ctx, req)
}

// Prompt is the instruction sent alongside the image.
const Prompt = `You are a personal colour analyst. Analyse the skin of the person in this photo.

Return ONLY JSON with this exact shape:

{
  "temperature": "warm | cool | neutral",
  "season": "spring | summer | autumn | winter",
  "colorHex": "#RRGGBB",
  "lightness": 0.0-1.0,
  "clarity": 0.0-1.0,
  "lightingBias": -1.0-1.0
}

Guidance:
- colorHex is a representative skin colour sampled from the cheek or forehead, not hair, lips or background.
- lightness is how light the skin reads (0 = deepest, 1 = lightest).
- clarity is how saturated the skin reads (0 = muted, 1 = vivid).
- lightingBias is your estimate of the ambient light tint: negative if it skews cool (daylight, shade, screens), positive if it skews warm (tungsten, sunset), 0 if neutral.
- If lighting is tinted, infer the true skin colour and report the tint in lightingBias.
- No prose, no markdown.`

// BuildPrompt returns Prompt followed by any non-blank user hints.
func BuildPrompt(hints []string) string {
	var cleaned []string
	for _, h := range hints {
		if h = strings.TrimSpace(h); h != "" {
			cleaned = append(cleaned, h)
		}
	}
	if len(cleaned) == 0 {
		return Prompt
	}

	var b strings.Builder
	b.WriteString(Prompt)
	b.WriteString("\n\nUser-provided hints (use to refine, but override if obviously wrong):\n")
	for _, h := range cleaned {
		fmt.Fprintf(&b, "- %s\n", h)
	}
	return strings.TrimRight(b.String(), "\n")
}
