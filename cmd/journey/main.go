// Package main provides the journey CLI: a thin operator surface over the
// capability registry for inspecting and invoking the self-improvement
// domains outside the agent runtime.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// configDir is set by the --config flag.
	configDir string

	// dataDir overrides the configured data directory.
	dataDir string

	// app is the global application wiring, initialized on startup.
	app *App
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "journey",
	Short: "Journey manages self-improvement records through capabilities",
	Long: `Journey exposes the self-improvement domain records (safe, profile, mood)
through the same capability registry the chat agent uses. Records live in a
local store selected by configuration (file, sqlite, or memory).`,
	PersistentPreRunE: initApp,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeApp()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default: ~/.journey)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory override")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(invokeCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(watchCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("journey v0.1.0")
	},
}

// initApp loads config and wires the application.
func initApp(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := loadConfig(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dataDir != "" {
		cfg.Set(cfgKeyDataDir, dataDir)
	}

	app, err = newApp(cfg)
	if err != nil {
		return fmt.Errorf("wire app: %w", err)
	}
	return nil
}

// closeApp releases store handles and flushes logs.
func closeApp() error {
	if app != nil {
		return app.Close()
	}
	return nil
}
