package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/templui/portfolio/internal/service"
)

func RenderCmd() *cobra.Command {
	var htmlOnly bool

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Parse a local markdown file the same way loaded posts are parsed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			blog := service.NewBlogService(nil, nil, service.BlogOptions{})
			post := blog.ParsePost(filepath.Base(args[0]), data)

			if htmlOnly {
				_, err := io.WriteString(cmd.OutOrStdout(), post.HTMLContent)
				return err
			}
			return writeJSON(cmd.OutOrStdout(), post)
		},
	}

	cmd.Flags().BoolVar(&htmlOnly, "html", false, "print only the rendered HTML")

	return cmd
}
