package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/undertone/internal/tone"
	"github.com/jmylchreest/undertone/internal/vision"
)

type classifyOptions struct {
	root *rootOptions

	estimatePath string
	temperature  string
	season       string
	colorHex     string
	lightness    float64
	clarity      float64
	lightingBias float64

	output     outputOptions
	thresholds tone.Thresholds
}

func newClassifyCmd(root *rootOptions) *cobra.Command {
	opts := &classifyOptions{root: root}

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a skin-tone estimate",
		Long: `Classify a raw skin-tone estimate into a temperature, season and colour.

The estimate is read from a JSON document (as returned by a vision model) and/or
given with flags. Flags override fields from the document. Missing or malformed
values fall back to defaults; classify always produces a complete verdict.

Examples:
  # Classify a saved model answer
  undertone classify --estimate answer.json

  # Read the answer from stdin
  echo '{"skinTemp":"warm","hex":"#8D5524"}' | undertone classify --estimate -

  # Classify from flags, showing the evidence
  undertone classify --temperature warm --color "#A0A8C0" --lighting-bias 0.5 --explain

  # Output JSON
  undertone classify --color "#E0A070" --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClassify(cmd, opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&opts.estimatePath, "estimate", "e", "", "JSON estimate file (- for stdin)")
	fs.StringVar(&opts.temperature, "temperature", "", "skin temperature (warm, cool, neutral)")
	fs.StringVar(&opts.season, "season", "", "season (spring, summer, autumn, winter)")
	fs.StringVar(&opts.colorHex, "color", "", "representative skin colour (#RRGGBB)")
	fs.Float64Var(&opts.lightness, "lightness", 0, "reported lightness (0-1)")
	fs.Float64Var(&opts.clarity, "clarity", 0, "reported clarity (0-1)")
	fs.Float64Var(&opts.lightingBias, "lighting-bias", 0, "reported lighting bias (-1 cool to 1 warm)")
	registerOutputFlags(fs, &opts.output)
	registerThresholdFlags(fs, &opts.thresholds)

	return cmd
}

func runClassify(cmd *cobra.Command, opts *classifyOptions) error {
	if err := opts.output.validate(); err != nil {
		return err
	}

	reconciler, err := tone.NewReconciler(opts.thresholds)
	if err != nil {
		return err
	}

	logger := opts.root.logger(cmd.ErrOrStderr()).Named("classify")

	var estimate tone.Estimate
	if opts.estimatePath != "" {
		source := vision.NewFileEstimator(opts.estimatePath)
		source.Stdin = cmd.InOrStdin()
		estimate, err = source.Estimate(commandContext(cmd), vision.Request{})
		if err != nil {
			return fmt.Errorf("failed to load estimate: %w", err)
		}
		logger.Debug("loaded estimate", "path", opts.estimatePath)
	}

	applyEstimateFlags(cmd, opts, &estimate)

	report := reconciler.Reconcile(estimate)
	for _, c := range report.Corrections {
		logger.Debug("applied correction", "rule", c.Rule, "from", c.From, "to", c.To)
	}

	return writeReport(cmd.OutOrStdout(), report, opts.output)
}

// applyEstimateFlags overrides estimate fields with the flags the user set.
// Numeric flags only count as reported when changed.
func applyEstimateFlags(cmd *cobra.Command, opts *classifyOptions, e *tone.Estimate) {
	fs := cmd.Flags()
	if fs.Changed("temperature") {
		e.Temperature = opts.temperature
	}
	if fs.Changed("season") {
		e.Season = opts.season
	}
	if fs.Changed("color") {
		e.ColorHex = opts.colorHex
	}
	if fs.Changed("lightness") {
		e.Lightness = tone.Float(opts.lightness)
	}
	if fs.Changed("clarity") {
		e.Clarity = tone.Float(opts.clarity)
	}
	if fs.Changed("lighting-bias") {
		e.LightingBias = tone.Float(opts.lightingBias)
	}
}
