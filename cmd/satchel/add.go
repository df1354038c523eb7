// Add command creates or updates a prompt.
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/internal/library"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

var (
	addID       string
	addTitle    string
	addContent  string
	addCategory string
	addTags     string
	addFavorite bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create or update a prompt",
	Long: `Add creates a new prompt, or replaces an existing one when --id is given.

Example:
  satchel add --title "Review checklist" --content "Check the following..."
  satchel add --title "Standup" --content "Yesterday/Today/Blockers" --category Work --tags daily,team`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addID, "id", "", "prompt id to update (default: create new)")
	addCmd.Flags().StringVar(&addTitle, "title", "", "prompt title (required)")
	addCmd.Flags().StringVar(&addContent, "content", "", "prompt content (required)")
	addCmd.Flags().StringVar(&addCategory, "category", "", "category id or name (default: uncategorized)")
	addCmd.Flags().StringVar(&addTags, "tags", "", "comma-separated tags")
	addCmd.Flags().BoolVar(&addFavorite, "favorite", false, "mark as favorite")
	_ = addCmd.MarkFlagRequired("title")
	_ = addCmd.MarkFlagRequired("content")
}

func runAdd(cmd *cobra.Command, args []string) error {
	return withController(func(ctx context.Context, ctrl *library.Controller) error {
		categoryID, err := resolveCategoryID(ctrl.Document(), addCategory)
		if err != nil {
			return err
		}

		id, err := ctrl.UpsertPrompt(library.PromptDraft{
			ID:         addID,
			Title:      addTitle,
			CategoryID: categoryID,
			Content:    addContent,
			Tags:       types.ParseTagList(addTags),
			Favorite:   addFavorite,
		})
		if err != nil {
			return err
		}

		prompt, _ := ctrl.Document().PromptByID(id)
		if flagJSON {
			return printJSON(prompt)
		}
		fmt.Printf("Saved prompt: %s\n", id)
		return nil
	})
}
