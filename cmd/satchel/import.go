// Import command merges an exported JSON document into the library.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/internal/library"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a JSON document into the library",
	Long: `Import reads an exported JSON document and merges it into the library.

Categories merge by id, falling back to a case-insensitive name match.
Prompts merge by id; an incoming prompt with a known id replaces the
stored one wholesale.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}

	return withController(func(ctx context.Context, ctrl *library.Controller) error {
		before := ctrl.Document()
		if err := ctrl.Import(data); err != nil {
			return err
		}
		after := ctrl.Document()
		fmt.Printf("Import complete: %d prompt(s), %d categor(ies) added\n",
			len(after.Prompts)-len(before.Prompts),
			len(after.Categories)-len(before.Categories))
		return nil
	})
}
