// Init command creates the configuration and data directories and writes
// the initial library document.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/satchel/internal/library"
)

// configFile holds the structure written to config.yaml by init.
type configFile struct {
	Backend    string `yaml:"backend"`
	DataDir    string `yaml:"data_dir,omitempty"`
	ListenAddr string `yaml:"listen_addr"`
	LogLevel   string `yaml:"log_level"`
	LogPretty  bool   `yaml:"log_pretty"`
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the prompt library",
	Long:  "Create configuration and data directories, then write the initial\nlibrary document (one reserved category, no prompts).",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir, err := resolveConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	if err := writeConfigIfMissing(filepath.Join(configDir, configFileExt)); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	// Loading a controller against an empty store creates and persists the
	// default document.
	err = withController(func(ctx context.Context, ctrl *library.Controller) error {
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Satchel initialized successfully")
	return nil
}

// writeConfigIfMissing creates config.yaml reflecting the current flags if
// the file does not exist. Idempotent.
func writeConfigIfMissing(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	backend := resolveBackend()
	if backend == "" {
		backend = defaultBackend
	}
	cfg := configFile{
		Backend:    backend,
		DataDir:    flagDataDir,
		ListenAddr: defaultListenAddr,
		LogLevel:   defaultLogLevel,
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
