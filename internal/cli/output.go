package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/undertone/internal/colour"
	"github.com/jmylchreest/undertone/internal/tone"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
)

// swatchWidth fits "#RRGGBB" with a space either side.
const swatchWidth = 9

// outputOptions controls how a report is written.
type outputOptions struct {
	format  string
	explain bool
	preview bool
}

func registerOutputFlags(fs *pflag.FlagSet, o *outputOptions) {
	fs.StringVarP(&o.format, "format", "f", formatText, "output format (text, json)")
	fs.BoolVar(&o.explain, "explain", false, "show the evidence behind the verdict")
	fs.BoolVar(&o.preview, "preview", false, "show a colour swatch in terminal output")
}

func (o outputOptions) validate() error {
	switch o.format {
	case formatText, formatJSON:
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (valid formats: %s, %s)", o.format, formatText, formatJSON)
	}
}

// writeReport writes the verdict, or with explain the whole report.
func writeReport(w io.Writer, report tone.Report, o outputOptions) error {
	if o.format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if o.explain {
			return enc.Encode(report)
		}
		return enc.Encode(report.Verdict)
	}

	if o.explain {
		if _, err := io.WriteString(w, explainTable(report).Render()+"\n"); err != nil {
			return err
		}
	}

	v := report.Verdict
	hex := formatHex(v.ColorHex, o.preview && colour.SupportsANSIColours(w))

	_, err := fmt.Fprintf(w, "temperature: %s\nseason:      %s\ncolorHex:    %s\n", v.Temperature, v.Season, hex)
	return err
}

// formatHex renders the verdict colour, as a labelled swatch when ansi is set.
func formatHex(hex string, ansi bool) string {
	if !ansi {
		return hex
	}
	sample := colour.SampleOrDefault(hex)
	return colour.PreviewWithText(sample, sample.Hex(), swatchWidth)
}

// explainTable lays out the evidence in the order it was applied.
func explainTable(r tone.Report) *Table {
	table := NewTable("Evidence", "Value", "Source")
	table.SetColumnMaxWidth(1, 48)

	table.AddRow("model answer", fmt.Sprintf("%s / %s", r.ModelTemperature, r.ModelSeason), string(tone.SourceModel))

	lab := r.Metrics.Lab.String()
	labSource := tone.SourceLab
	if r.ColourFallback {
		lab += " of fallback " + tone.DefaultHex
		labSource = tone.SourceDefault
	}
	table.AddRow("lab", lab, string(labSource))
	table.AddRow("chroma", fmt.Sprintf("%.2f", r.Metrics.Chroma), string(labSource))

	table.AddRow("lighting bias", fmt.Sprintf("%+.2f", r.LightingBias), string(tone.SourceModel))
	table.AddRow("lightness", fmt.Sprintf("%.3f", r.Lightness.Value), string(r.Lightness.Source))
	table.AddRow("clarity", fmt.Sprintf("%.3f", r.Chroma.Value), string(r.Chroma.Source))

	for _, c := range r.Corrections {
		table.AddRow("correction", c.String(), "rule")
	}

	season := string(r.Verdict.Season)
	if r.SeasonSource == tone.SourceDefault {
		season += " (empty estimate)"
	}
	table.AddRow("season", season, string(r.SeasonSource))

	return table
}
