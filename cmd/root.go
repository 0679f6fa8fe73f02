/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cristianoliveira/toasts/internal/colors"
	"github.com/cristianoliveira/toasts/internal/config"
	"github.com/cristianoliveira/toasts/internal/errors"
	"github.com/cristianoliveira/toasts/internal/logging"
	"github.com/cristianoliveira/toasts/internal/version"
	"github.com/spf13/cobra"
)

var (
	rootConfigPath string
	rootStore      string
	rootDebug      bool
	rootQuiet      bool
)

var errorHandler errors.ErrorHandler = errors.NewDefaultCLIHandler()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "toasts",
	Short: "Stacked toast notifications in your terminal.",
	Long: `Stacked toast notifications in your terminal.

Temporary toasts count down and disappear on their own. Permanent toasts
stay until you close them, and a closed one never comes back.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupCommand,
	// A bare invocation opens the demo.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(cmd, false)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// The log file is closed here rather than in a post-run hook, which cobra
// skips when the command fails.
func Execute() error {
	defer logging.ShutdownGlobal()
	if err := rootCmd.Execute(); err != nil {
		errorHandler.Error(err.Error())
		return err
	}
	return nil
}

func init() {
	rootCmd.Version = version.String()

	// Hide the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "config file (default is $XDG_CONFIG_HOME/toasts/config.toml)")
	rootCmd.PersistentFlags().StringVar(&rootStore, "store", "", "dismissal store backend: sqlite or memory")
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVar(&rootQuiet, "quiet", false, "only log errors")
}

// setupCommand loads configuration, applies flag overrides and starts
// file logging. Flags win over env and the config file.
func setupCommand(cmd *cobra.Command, args []string) error {
	if rootConfigPath != "" {
		if err := os.Setenv(config.EnvPrefix+"CONFIG_PATH", rootConfigPath); err != nil {
			return fmt.Errorf("set config path: %w", err)
		}
	}
	config.Load()

	if rootStore != "" {
		config.Set("store_backend", strings.ToLower(rootStore))
	}
	if rootDebug {
		config.Set("debug", "true")
	}
	if rootQuiet {
		config.Set("quiet", "true")
	}
	colors.SetDebug(config.GetBool("debug", false))

	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("file logging disabled: %v", err))
	}
	logging.GetGlobal().Debug("command started", "command", cmd.CommandPath())
	return nil
}
