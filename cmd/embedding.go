package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/koopa0/scout/internal/i18n"
)

// newEmbeddingCmd creates the embedding command (factory pattern).
func newEmbeddingCmd(a *app) *cobra.Command {
	embeddingCmd := &cobra.Command{
		Use:   "embedding",
		Short: "Inspect and edit embedding-model settings",
	}

	embeddingCmd.AddCommand(newEmbeddingShowCmd(a))
	embeddingCmd.AddCommand(newEmbeddingSetCmd(a))

	return embeddingCmd
}

func newEmbeddingShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current embedding settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := a.client.GetSearchSettings(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, i18n.T("embedding.title"))
			fmt.Fprintf(out, "Model:          %s\n", settings.ModelName)
			fmt.Fprintf(out, "Dimensions:     %d\n", settings.ModelDim)
			fmt.Fprintf(out, "Normalize:      %s\n", onOff(settings.NormalizeEmbeddings))
			fmt.Fprintf(out, "Query prefix:   %s\n", settings.QueryPrefix)
			fmt.Fprintf(out, "Passage prefix: %s\n", settings.PassagePrefix)
			fmt.Fprintf(out, "Provider:       %s\n", settings.Provider)
			return nil
		},
	}
}

func newEmbeddingSetCmd(a *app) *cobra.Command {
	var (
		model         string
		dim           int
		normalize     bool
		queryPrefix   string
		passagePrefix string
		provider      string
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update the embedding settings (triggers re-embedding)",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Start from the current settings so unset flags keep their
			// server-side values.
			settings, err := a.client.GetSearchSettings(cmd.Context())
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("model") {
				settings.ModelName = model
			}
			if cmd.Flags().Changed("dim") {
				settings.ModelDim = dim
			}
			if cmd.Flags().Changed("normalize") {
				settings.NormalizeEmbeddings = normalize
			}
			if cmd.Flags().Changed("query-prefix") {
				settings.QueryPrefix = queryPrefix
			}
			if cmd.Flags().Changed("passage-prefix") {
				settings.PassagePrefix = passagePrefix
			}
			if cmd.Flags().Changed("provider") {
				settings.Provider = provider
			}

			if _, err := a.client.UpdateSearchSettings(cmd.Context(), *settings); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("embedding.updated"))
			return nil
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "embedding model name")
	cmd.Flags().IntVar(&dim, "dim", 0, "embedding dimensions")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "normalize embeddings")
	cmd.Flags().StringVar(&queryPrefix, "query-prefix", "", "query prefix")
	cmd.Flags().StringVar(&passagePrefix, "passage-prefix", "", "passage prefix")
	cmd.Flags().StringVar(&provider, "provider", "", "embedding provider")
	return cmd
}
