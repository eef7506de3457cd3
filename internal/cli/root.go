// Package cli provides the command-line interface for undertone.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/undertone/internal/colour"
	"github.com/jmylchreest/undertone/internal/version"
)

// rootOptions holds the global flags shared by every command.
type rootOptions struct {
	verbose bool
	quiet   bool
	noColor bool
}

// NewRootCmd builds the undertone command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "undertone",
		Short: "Classify skin undertone and seasonal colour palette",
		Long: `Undertone classifies a person's skin undertone (warm, cool or neutral) and
seasonal colour palette (spring, summer, autumn or winter).

A vision model provides a first estimate from a photo. Undertone then checks
that estimate against the measured CIE Lab colour of the skin sample, corrects
warm-light false positives and ambiguous neutrals, and derives the season from
a fixed lightness/chroma table so the same input always gives the same answer.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			colour.DisableColourOutput = opts.noColor
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colour output (also NO_COLOR)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.SetVersionTemplate(version.String() + "\n")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newClassifyCmd(opts))
	cmd.AddCommand(newAnalyseCmd(opts))
	cmd.AddCommand(newModelsCmd(opts))

	return cmd
}

// logger creates the root logger for a command, writing to w.
func (o *rootOptions) logger(w io.Writer) hclog.Logger {
	level := hclog.Info
	switch {
	case o.verbose:
		level = hclog.Debug
	case o.quiet:
		level = hclog.Error
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "undertone",
		Output: w,
		Level:  level,
	})
}

// commandContext returns the command's context, or a background context when
// the command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(version.GetInfo())
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")

	return cmd
}
