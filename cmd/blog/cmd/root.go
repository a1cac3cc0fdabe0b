package cmd

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/templui/portfolio/internal/app"
	"github.com/templui/portfolio/internal/config"
	"github.com/templui/portfolio/internal/logger"
)

func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "blog",
		Short:        "Load, query and render the portfolio blog",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(ListCmd())
	rootCmd.AddCommand(ShowCmd())
	rootCmd.AddCommand(TagsCmd())
	rootCmd.AddCommand(RenderCmd())
	rootCmd.AddCommand(SitemapCmd())

	return rootCmd
}

// newApp loads config from the environment and wires the services.
func newApp(cmd *cobra.Command) (*app.App, error) {
	cfg := config.Load()
	log := logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)
	return app.New(cmd.Context(), cfg, log)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
