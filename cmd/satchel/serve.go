// Serve command runs the HTTP bridge.
package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/internal/backup"
	"github.com/mesh-intelligence/satchel/internal/bridge"
	"github.com/mesh-intelligence/satchel/internal/library"
	"github.com/mesh-intelligence/satchel/internal/logger"
	"github.com/mesh-intelligence/satchel/internal/paths"
	"github.com/mesh-intelligence/satchel/internal/watch"
)

const shutdownTimeout = 10 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP bridge",
	Long: `Serve runs the HTTP bridge that lets an external page widget capture
prompts into the library and trigger backups. The bridge writes through
the same validation and normalization as every other command; when a CLI
invocation changes the store, the bridge picks up the new document.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: config listen_addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.New(configLogLevel, configLogPretty)
	defer log.Sync()

	st, err := openStore(log)
	if err != nil {
		return err
	}
	defer st.Close()

	ctrl := library.New(st, log, library.Options{})
	if err := ctrl.Load(ctx); err != nil {
		return err
	}

	backupsTo, err := paths.ResolveBackupDir()
	if err != nil {
		return fmt.Errorf("resolve backup dir: %w", err)
	}

	addr := serveAddr
	if addr == "" {
		addr = configListenAddr
	}

	srv := bridge.New(addr, bridge.Deps{
		Store:   st,
		Log:     log,
		Clock:   time.Now,
		Backup:  backup.NewWriter(backupsTo),
		Library: ctrl,
	})

	// Pick up writes from other invocations so the snapshot endpoint stays
	// fresh. Reload never writes back, so the watcher cannot feed itself.
	go func() {
		err := watch.Store(ctx, st.Path(), log, func() {
			if err := ctrl.Reload(context.Background()); err != nil {
				log.Warn("reload after store change failed", logger.Error(err))
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("store watcher stopped", logger.Error(err))
		}
	}()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return ctrl.Flush(shutdownCtx)
}
