// Duplicate command clones a prompt.
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/internal/library"
)

var duplicateCmd = &cobra.Command{
	Use:     "duplicate <id>",
	Aliases: []string{"dup"},
	Short:   "Duplicate a prompt",
	Args:    cobra.ExactArgs(1),
	RunE:    runDuplicate,
}

func runDuplicate(cmd *cobra.Command, args []string) error {
	return withController(func(ctx context.Context, ctrl *library.Controller) error {
		id, err := ctrl.DuplicatePrompt(args[0])
		if err != nil {
			return err
		}

		if flagJSON {
			prompt, _ := ctrl.Document().PromptByID(id)
			return printJSON(prompt)
		}
		fmt.Printf("Duplicated prompt: %s\n", id)
		return nil
	})
}
