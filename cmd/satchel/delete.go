// Delete command removes a prompt.
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/internal/library"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a prompt",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	return withController(func(ctx context.Context, ctrl *library.Controller) error {
		if err := ctrl.DeletePrompt(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted prompt: %s\n", args[0])
		return nil
	})
}
