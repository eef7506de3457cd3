package cli

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/undertone/internal/image"
	"github.com/jmylchreest/undertone/internal/tone"
	"github.com/jmylchreest/undertone/internal/vision"
	"github.com/jmylchreest/undertone/internal/vision/gemini"
)

// newEstimator creates the vision estimator used by analyse.
var newEstimator = func(ctx context.Context, cfg gemini.Config, logger hclog.Logger) (vision.Estimator, error) {
	est, err := gemini.New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return est, nil
}

type analyseOptions struct {
	root *rootOptions

	hints   []string
	model   string
	backend string
	strict  bool
	dryRun  bool

	output     outputOptions
	thresholds tone.Thresholds
}

func newAnalyseCmd(root *rootOptions) *cobra.Command {
	opts := &analyseOptions{root: root}

	cmd := &cobra.Command{
		Use:     "analyse <image|url>",
		Aliases: []string{"analyze"},
		Short:   "Analyse a photo with a vision model and classify the result",
		Long: `Analyse a photo with a Gemini vision model and classify its estimate.

The image is checked (JPEG, PNG, GIF or WebP, at most 20 MiB) and sent with any
hints to the model. The model's answer is then corrected against the measured
Lab colour and mapped to a season. If the model call fails the empty estimate
is classified and a warning is logged, unless --strict is set.

Environment:
  GOOGLE_API_KEY           API key for the gemini-api backend
  UNDERTONE_MODEL          default model
  UNDERTONE_GENAI_BACKEND  default backend (gemini-api, vertex-ai)

Examples:
  # Analyse a local photo
  undertone analyse selfie.jpg

  # Add hints and explain the verdict
  undertone analyse --hint "photo taken under tungsten light" --explain selfie.jpg

  # Analyse a remote image with a specific model
  undertone analyse --model gemini-2.5-pro https://example.com/portrait.png

  # Show what would be sent without calling the model
  undertone analyse --dry-run selfie.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyse(cmd, opts, args[0])
		},
	}

	fs := cmd.Flags()
	fs.StringArrayVar(&opts.hints, "hint", nil, "hint for the model (repeatable)")
	fs.StringVarP(&opts.model, "model", "m", gemini.DefaultModel, "Gemini model (env: "+gemini.EnvModel+")")
	fs.StringVar(&opts.backend, "genai-backend", gemini.DefaultBackend, "Gen AI backend: gemini-api or vertex-ai (env: "+gemini.EnvBackend+")")
	fs.BoolVar(&opts.strict, "strict", false, "fail instead of falling back when the model call fails")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "print the request without calling the model")
	registerOutputFlags(fs, &opts.output)
	registerThresholdFlags(fs, &opts.thresholds)

	return cmd
}

func runAnalyse(cmd *cobra.Command, opts *analyseOptions, path string) error {
	if err := opts.output.validate(); err != nil {
		return err
	}

	reconciler, err := tone.NewReconciler(opts.thresholds)
	if err != nil {
		return err
	}

	if err := image.ValidateImagePath(path); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	ctx := commandContext(cmd)
	logger := opts.root.logger(cmd.ErrOrStderr())
	log := logger.Named("analyse")

	log.Debug("loading image", "source", path)
	img, err := image.NewSmartLoader().Load(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	log.Debug("image loaded", "format", img.Format, "width", img.Width, "height", img.Height, "bytes", len(img.Data))

	cfg := gemini.DefaultConfig().WithEnv()
	if cmd.Flags().Changed("model") {
		cfg.Model = opts.model
	}
	if cmd.Flags().Changed("genai-backend") {
		cfg.Backend = opts.backend
	}

	req := vision.Request{Image: img.Data, MIMEType: img.MIMEType, Hints: opts.hints}

	if opts.dryRun {
		return writeDryRun(cmd, cfg, img, req)
	}

	estimator, err := newEstimator(ctx, cfg, logger)
	if err != nil {
		return err
	}

	estimate, err := estimator.Estimate(ctx, req)
	if err != nil {
		if opts.strict {
			return fmt.Errorf("estimate failed: %w", err)
		}
		log.Warn("estimate failed, classifying without a model answer", "error", err)
		estimate = tone.Estimate{}
	}

	report := reconciler.Reconcile(estimate)
	for _, c := range report.Corrections {
		log.Debug("applied correction", "rule", c.Rule, "from", c.From, "to", c.To)
	}

	return writeReport(cmd.OutOrStdout(), report, opts.output)
}

func writeDryRun(cmd *cobra.Command, cfg gemini.Config, img *image.Image, req vision.Request) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(),
		"image:   %s (%s, %dx%d, %d bytes)\nmodel:   %s\nbackend: %s\n\n%s\n",
		img.Source, img.MIMEType, img.Width, img.Height, len(img.Data),
		cfg.Model, cfg.Backend, vision.BuildPrompt(req.Hints))
	return err
}
