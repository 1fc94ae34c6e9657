package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/h0rv/showcase/internal/domain"
	"github.com/h0rv/showcase/internal/logger"
	"github.com/h0rv/showcase/internal/posts"
	"github.com/h0rv/showcase/internal/textutil"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

const printWidth = 72

func newPostsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "posts [id]",
		Short: "Print the latest posts, or a single post, without the UI",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := 0
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("invalid post id %q", args[0])
				}
				id = n
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			source, err := newSource(cfg.API, logger.Nop())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if id == 0 {
				return printList(ctx, cmd.OutOrStdout(), source)
			}
			return printPost(ctx, cmd.OutOrStdout(), source, id)
		},
	}
}

// printList writes one line per post of the bounded list.
func printList(ctx context.Context, w io.Writer, source posts.Source) error {
	list, err := source.List(ctx, posts.ListLimit)
	if err != nil {
		return fmt.Errorf("failed to fetch posts: %w", err)
	}

	fmt.Fprintf(w, "Posts (%d):\n", len(list))
	for _, p := range list {
		title := textutil.Truncate(textutil.Capitalize(textutil.SingleLine(p.Title)), printWidth-12)
		fmt.Fprintf(w, "  #%-3d %s (user %d)\n", p.ID, title, p.UserID)
	}
	return nil
}

// printPost writes the full title and body of one post.
func printPost(ctx context.Context, w io.Writer, source posts.Source, id int) error {
	p, err := source.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch post %d: %w", id, err)
	}
	writePost(w, p)
	return nil
}

func writePost(w io.Writer, p domain.Post) {
	fmt.Fprintf(w, "Post #%d (user %d)\n\n", p.ID, p.UserID)
	fmt.Fprintln(w, wordwrap.String(textutil.Capitalize(p.Title), printWidth))
	fmt.Fprintln(w)
	fmt.Fprintln(w, wordwrap.String(textutil.Capitalize(p.Body), printWidth))
}
