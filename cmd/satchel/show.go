// Show command prints one prompt in full.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/internal/library"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a prompt",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	return withController(func(ctx context.Context, ctrl *library.Controller) error {
		doc := ctrl.Document()
		p, ok := doc.PromptByID(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", types.ErrPromptNotFound, args[0])
		}

		if flagJSON {
			return printJSON(p)
		}

		fmt.Printf("ID:        %s\n", p.ID)
		fmt.Printf("Title:     %s\n", p.Title)
		fmt.Printf("Category:  %s\n", categoryName(doc, p.CategoryID))
		fmt.Printf("Tags:      %s\n", strings.Join(p.Tags, ","))
		fmt.Printf("Favorite:  %t\n", p.Favorite)
		fmt.Printf("Created:   %s\n", p.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Updated:   %s\n", p.UpdatedAt.Format("2006-01-02 15:04:05"))
		if p.LastUsedAt != nil {
			fmt.Printf("Last used: %s\n", p.LastUsedAt.Format("2006-01-02 15:04:05"))
		}
		fmt.Println()
		fmt.Println(p.Content)
		return nil
	})
}
