package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PaulBratslavsky/wm-migration-example-script/wordpress"
)

var listPostsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List posts available on the source",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := wordpress.NewAPI(SourceBase, SourcePostsPath)
		if err != nil {
			return fmt.Errorf("cmd: source API creation failed: %w", err)
		}

		posts, err := source.GetAllPosts(cmd.Context(), wordpress.GetPostsQuery{})
		if err != nil {
			return fmt.Errorf("cmd: Couldn't list source posts: %w", err)
		}

		fmt.Printf("Found %d posts on %s:\n\n", len(posts), SourceBase)
		for _, post := range posts {
			fmt.Printf("  %6d  %-40s  %s\n", post.ID, post.Slug, post.Title.Rendered)
		}

		return nil
	},
}

func init() {
	listCmd.AddCommand(listPostsCmd)
}
