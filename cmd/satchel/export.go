// Export command writes the library document as JSON.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/internal/library"
	"github.com/mesh-intelligence/satchel/internal/store"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the library as JSON",
	Long:  "Export writes the full library document as pretty-printed JSON to\nstdout, or to a file with --out.",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "write to file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	return withController(func(ctx context.Context, ctrl *library.Controller) error {
		data, err := ctrl.Export()
		if err != nil {
			return err
		}

		if exportOut == "" {
			_, err := os.Stdout.Write(data)
			return err
		}
		if err := store.WriteFileAtomic(exportOut, data); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Printf("Exported library to %s\n", exportOut)
		return nil
	})
}
