// Backup command writes the library to the backup location.
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/internal/backup"
	"github.com/mesh-intelligence/satchel/internal/library"
	"github.com/mesh-intelligence/satchel/internal/paths"
)

var backupDir string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a backup copy of the library",
	Long:  "Backup exports the library to " + backup.FileName + " in the backup\ndirectory (SATCHEL_BACKUP_DIR, default ~/Downloads), overwriting any\nprevious backup.",
	Args:  cobra.NoArgs,
	RunE:  runBackup,
}

func init() {
	backupCmd.Flags().StringVar(&backupDir, "dir", "", "backup directory (default: SATCHEL_BACKUP_DIR or ~/Downloads)")
}

func runBackup(cmd *cobra.Command, args []string) error {
	return withController(func(ctx context.Context, ctrl *library.Controller) error {
		dir := backupDir
		if dir == "" {
			var err error
			dir, err = paths.ResolveBackupDir()
			if err != nil {
				return fmt.Errorf("resolve backup dir: %w", err)
			}
		}

		data, err := ctrl.Export()
		if err != nil {
			return err
		}

		w := backup.NewWriter(dir)
		if err := w.Write(ctx, data); err != nil {
			return fmt.Errorf("write backup: %w", err)
		}
		ctrl.ClearBackupPending()

		fmt.Printf("Backup written to %s\n", w.Path())
		return nil
	})
}
