package cmd

import (
	"errors"
	"fmt"
	"strings"

	recordsrender "github.com/bnema/offline-cache/internal/adapters/render/records"
	"github.com/bnema/offline-cache/internal/adapters/repo/schema"
	"github.com/bnema/offline-cache/internal/domain"
	"github.com/spf13/cobra"
)

func newPostCmd(app *app) *cobra.Command {
	cmd := newRecordCmd(app, recordCommand[domain.PostID, domain.Post, schema.Post]{
		singular: "post",
		codec:    schema.Posts,
		parse:    domain.ParsePostID,
		records:  app.store.Posts,
		rows:     recordsrender.PostRows,
	})

	cmd.AddCommand(newPostNewCmd(app))

	return cmd
}

func newPostNewCmd(app *app) *cobra.Command {
	var title string
	var content string
	var authorID string
	var authorName string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Write a post offline; it is pushed on the next sync",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(title) == "" {
				return errors.New("post title is empty")
			}

			ctx, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}

			if authorID == "" {
				authorID = app.store.Session.GetSession(ctx).UserID
			}

			post := domain.MarkDirty(domain.Post{
				ID:         domain.NewPostID(),
				Title:      strings.TrimSpace(title),
				Content:    content,
				AuthorID:   authorID,
				AuthorName: authorName,
				CreatedAt:  app.now(),
			})
			if err := app.store.Posts.Put(ctx, post); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), post.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Post title")
	cmd.Flags().StringVar(&content, "content", "", "Post body")
	cmd.Flags().StringVar(&authorID, "author-id", "", "Author id (defaults to the session user)")
	cmd.Flags().StringVar(&authorName, "author", "", "Author display name")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}
