// Favorite command toggles a prompt's favorite flag.
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/internal/library"
)

var favoriteOff bool

var favoriteCmd = &cobra.Command{
	Use:     "favorite <id>",
	Aliases: []string{"fav"},
	Short:   "Mark a prompt as favorite",
	Args:    cobra.ExactArgs(1),
	RunE:    runFavorite,
}

func init() {
	favoriteCmd.Flags().BoolVar(&favoriteOff, "off", false, "remove the favorite mark")
}

func runFavorite(cmd *cobra.Command, args []string) error {
	return withController(func(ctx context.Context, ctrl *library.Controller) error {
		if err := ctrl.SetFavorite(args[0], !favoriteOff); err != nil {
			return err
		}
		if favoriteOff {
			fmt.Printf("Unfavorited prompt: %s\n", args[0])
		} else {
			fmt.Printf("Favorited prompt: %s\n", args[0])
		}
		return nil
	})
}
