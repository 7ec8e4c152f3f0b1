package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joeshaw/envdecode"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"recipebook"
	"recipebook/slack"
)

func newSearchCommand(opts *globalOptions) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search recipes and show one page of results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := openSession(ctx, opts)
			if err != nil {
				return err
			}
			defer sess.Close(ctx)

			if err := sess.state.LoadSearchResults(ctx, args[0]); err != nil {
				return err
			}
			results := sess.state.SearchResultsPage(page)
			printSearchPage(cmd.OutOrStdout(), sess.state.Search(), results)

			if opts.dump {
				recipebook.Dump(sess.state.Search())
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page of results to show")
	return cmd
}

func newRecipeCommand(opts *globalOptions) *cobra.Command {
	var servings int

	cmd := &cobra.Command{
		Use:   "recipe <id>",
		Short: "Show a recipe, optionally scaled to a number of servings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := openSession(ctx, opts)
			if err != nil {
				return err
			}
			defer sess.Close(ctx)

			if err := sess.state.LoadRecipe(ctx, args[0]); err != nil {
				return err
			}
			if cmd.Flags().Changed("servings") {
				if err := sess.state.UpdateServings(ctx, servings); err != nil {
					return err
				}
			}
			printRecipe(cmd.OutOrStdout(), sess.state.Recipe())

			if opts.dump {
				recipebook.Dump(sess.state.Recipe())
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&servings, "servings", 0, "Scale ingredient quantities to this many servings")
	return cmd
}

func newBookmarksCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmarks",
		Short: "List and manage bookmarked recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := openSession(ctx, opts)
			if err != nil {
				return err
			}
			defer sess.Close(ctx)

			printBookmarks(cmd.OutOrStdout(), sess.state.Bookmarks())
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <id>",
			Short: "Bookmark a recipe",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				sess, err := openSession(ctx, opts)
				if err != nil {
					return err
				}
				defer sess.Close(ctx)

				if err := sess.state.LoadRecipe(ctx, args[0]); err != nil {
					return err
				}
				if err := sess.state.AddBookmark(ctx, sess.state.Recipe()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Bookmarked %s\n", sess.state.Recipe().Title)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Remove a bookmark",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				sess, err := openSession(ctx, opts)
				if err != nil {
					return err
				}
				defer sess.Close(ctx)

				if err := sess.state.DeleteBookmark(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed bookmark %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every bookmark",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				sess, err := openSession(ctx, opts)
				if err != nil {
					return err
				}
				defer sess.Close(ctx)

				return sess.state.ClearBookmarks(ctx)
			},
		},
	)
	return cmd
}

func newUploadCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <recipe.yaml>",
		Short: "Upload a recipe described in a YAML file and bookmark it",
		Long: `Upload a recipe described in a YAML file and bookmark it.

Ingredients are "quantity,unit,description" strings; quantity and unit may be
empty. Example:

  title: Test Rice
  sourceUrl: http://example.com/rice
  image: http://example.com/rice.jpg
  publisher: Me
  cookingTime: "20"
  servings: "2"
  ingredients:
    - 0.5,kg,Rice
    - ",,Salt"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upload, err := readUpload(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			sess, err := openSession(ctx, opts)
			if err != nil {
				return err
			}
			defer sess.Close(ctx)

			if err := sess.state.UploadRecipe(ctx, upload); err != nil {
				return err
			}
			printRecipe(cmd.OutOrStdout(), sess.state.Recipe())
			return nil
		},
	}
}

func newShareCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "share <id>",
		Short: "Post a recipe to the configured Slack channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var slackConfig recipebook.SlackConfig
			if err := envdecode.Decode(&slackConfig); err != nil {
				return fmt.Errorf("failed to decode slack config: %w", err)
			}
			if slackConfig.WebhookURL == "" {
				return fmt.Errorf("SLACK_WEBHOOK_URL must be set to share recipes")
			}

			ctx := cmd.Context()
			sess, err := openSession(ctx, opts)
			if err != nil {
				return err
			}
			defer sess.Close(ctx)

			if err := sess.state.LoadRecipe(ctx, args[0]); err != nil {
				return err
			}

			client := slack.NewClient(slackConfig.WebhookURL, http.DefaultClient)
			if err := client.ShareRecipe(ctx, slackConfig.Channel, sess.state.Recipe()); err != nil {
				return fmt.Errorf("failed to share recipe: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Shared %s to %s\n", sess.state.Recipe().Title, slackConfig.Channel)
			return nil
		},
	}
}

func readUpload(path string) (recipebook.Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return recipebook.Upload{}, fmt.Errorf("failed to read recipe file: %w", err)
	}
	var upload recipebook.Upload
	if err := yaml.Unmarshal(data, &upload); err != nil {
		return recipebook.Upload{}, fmt.Errorf("failed to parse recipe file %s: %w", path, err)
	}
	return upload, nil
}
