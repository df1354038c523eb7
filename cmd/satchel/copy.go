// Copy command places a prompt's content on the system clipboard.
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/internal/library"
)

var copyCmd = &cobra.Command{
	Use:   "copy <id>",
	Short: "Copy a prompt's content to the clipboard",
	Long:  "Copy places the prompt content on the system clipboard and records\nthe prompt as used. A clipboard failure leaves the prompt untouched.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCopy,
}

func runCopy(cmd *cobra.Command, args []string) error {
	return withController(func(ctx context.Context, ctrl *library.Controller) error {
		if err := ctrl.CopyPrompt(args[0]); err != nil {
			return err
		}
		fmt.Println("Copied to clipboard")
		return nil
	})
}
