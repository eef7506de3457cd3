package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/undertone/internal/vision/gemini"
)

func newModelsCmd(root *rootOptions) *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List Gemini models that accept image input",
		Long: `List Gemini models that can analyse a photo.

The list is fetched from the API when credentials are available; otherwise a
built-in list of known models is shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := commandContext(cmd)
			logger := root.logger(cmd.ErrOrStderr())

			cfg := gemini.DefaultConfig().WithEnv()
			if cmd.Flags().Changed("genai-backend") {
				cfg.Backend = backend
			}

			models := gemini.KnownModels()
			if est, err := gemini.New(ctx, cfg, logger); err != nil {
				logger.Warn("cannot query the API, showing known models", "error", err)
			} else {
				models, err = est.ListModels(ctx)
				if err != nil {
					return err
				}
			}

			table := NewTable("Model", "Name", "Description")
			table.SetColumnMaxWidth(2, 60)
			for _, m := range models {
				id := m.ID
				if id == cfg.Model {
					id += " *"
				}
				table.AddRow(id, m.DisplayName, m.Description)
			}

			_, err := fmt.Fprint(cmd.OutOrStdout(), table.Render())
			return err
		},
	}
	cmd.Flags().StringVar(&backend, "genai-backend", gemini.DefaultBackend, "Gen AI backend: gemini-api or vertex-ai (env: "+gemini.EnvBackend+")")

	return cmd
}
