// List command prints prompts with optional filters.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/internal/library"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

var (
	listCategory string
	listTag      string
	listFavorite bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List prompts",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "", "filter by category id or name")
	listCmd.Flags().StringVar(&listTag, "tag", "", "filter by tag (exact match)")
	listCmd.Flags().BoolVar(&listFavorite, "favorite", false, "only favorites")
}

func runList(cmd *cobra.Command, args []string) error {
	return withController(func(ctx context.Context, ctrl *library.Controller) error {
		doc := ctrl.Document()

		categoryID := ""
		if listCategory != "" {
			id, err := resolveCategoryID(doc, listCategory)
			if err != nil {
				return err
			}
			categoryID = id
		}

		var out []types.Prompt
		for _, p := range doc.Prompts {
			if categoryID != "" && p.CategoryID != categoryID {
				continue
			}
			if listFavorite && !p.Favorite {
				continue
			}
			if listTag != "" && !hasTag(p.Tags, listTag) {
				continue
			}
			out = append(out, p)
		}

		if flagJSON {
			if out == nil {
				out = []types.Prompt{}
			}
			return printJSON(out)
		}

		if len(out) == 0 {
			fmt.Println("No prompts found")
			return nil
		}
		for _, p := range out {
			marker := " "
			if p.Favorite {
				marker = "*"
			}
			fmt.Printf("%s %s  %-30s  %s  [%s]\n",
				marker, p.ID, p.Title, categoryName(doc, p.CategoryID),
				strings.Join(p.Tags, ","))
		}
		return nil
	})
}

// hasTag checks set membership under exact string equality; tags carry set
// semantics even though they are stored sorted.
func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
