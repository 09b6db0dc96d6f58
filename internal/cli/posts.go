package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"postboard/internal/client"
	"postboard/internal/models"
	"postboard/internal/validation"
)

func listCmd(opts *options) *cobra.Command {
	var (
		filter string
		output string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(output); err != nil {
				return err
			}
			store, err := opts.store()
			if err != nil {
				return err
			}
			if err := store.FetchPosts(cmd.Context()); err != nil {
				return storeError(store, err)
			}
			store.SetFilter(filter)
			return writePosts(cmd.OutOrStdout(), output, store.FilteredPosts())
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Only show posts whose name contains this text (case-insensitive)")
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "Output format: table, json or yaml")
	return cmd
}

func getCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single live post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(output); err != nil {
				return err
			}
			api, err := opts.postsAPI()
			if err != nil {
				return err
			}
			post, err := api.Get(cmd.Context(), args[0])
			if client.IsNotFound(err) {
				return fmt.Errorf("post %s does not exist or was deleted", args[0])
			}
			if err != nil {
				return err
			}
			return writePost(cmd.OutOrStdout(), output, post)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "Output format: table, json or yaml")
	return cmd
}

func createCmd(opts *options) *cobra.Command {
	var (
		in     validation.CreatePostRequest
		output string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(output); err != nil {
				return err
			}
			if err := validation.ValidateCreatePost(in); err != nil {
				var appErr *models.AppError
				if errors.As(err, &appErr) {
					return errors.New(appErr.Message)
				}
				return err
			}

			store, err := opts.store()
			if err != nil {
				return err
			}
			post, err := store.CreatePost(cmd.Context(), in)
			if err != nil {
				return storeError(store, err)
			}
			return writePost(cmd.OutOrStdout(), output, post)
		},
	}

	cmd.Flags().StringVarP(&in.Name, "name", "n", "", "Post name (required, at most 255 characters)")
	cmd.Flags().StringVarP(&in.Description, "description", "d", "", "Post description (required)")
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "Output format: table, json or yaml")
	return cmd
}

func deleteCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Soft-delete a post",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(output); err != nil {
				return err
			}
			store, err := opts.store()
			if err != nil {
				return err
			}
			post, err := store.DeletePost(cmd.Context(), args[0])
			if err != nil {
				return storeError(store, err)
			}
			return writePost(cmd.OutOrStdout(), output, post)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "Output format: table, json or yaml")
	return cmd
}
