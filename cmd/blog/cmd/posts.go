package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/templui/portfolio/internal/model"
	"github.com/templui/portfolio/internal/service"
)

func ListCmd() *cobra.Command {
	var (
		featured bool
		tag      string
		report   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			collection, err := a.BlogService.Load(cmd.Context())
			if err != nil {
				return err
			}
			if report {
				return writeJSON(cmd.OutOrStdout(), collection)
			}

			posts := make([]*model.BlogPost, 0, len(collection.Posts))
			for _, post := range collection.Posts {
				if featured && !post.Featured {
					continue
				}
				if tag != "" && !post.HasTag(tag) {
					continue
				}
				posts = append(posts, post)
			}
			return writeJSON(cmd.OutOrStdout(), posts)
		},
	}

	cmd.Flags().BoolVar(&featured, "featured", false, "only featured posts")
	cmd.Flags().StringVar(&tag, "tag", "", "only posts with this tag (case-insensitive)")
	cmd.Flags().BoolVar(&report, "report", false, "print the whole collection with its load report")

	return cmd
}

func ShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <slug>",
		Short: "Print a single post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			post, err := a.BlogService.Post(cmd.Context(), args[0])
			if errors.Is(err, service.ErrPostNotFound) {
				return fmt.Errorf("no post with slug %q", args[0])
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), post)
		},
	}
}

func TagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags with their post counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			tags, err := a.BlogService.Tags(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), tags)
		},
	}
}
