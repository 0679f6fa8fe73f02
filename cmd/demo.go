package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/cristianoliveira/toasts/internal/config"
	"github.com/cristianoliveira/toasts/internal/tui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var demoNoSeed bool

// demoCmd represents the demo command
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Open the interactive toast demo",
	Long: `Open the interactive toast demo.

USAGE:
    toasts demo [OPTIONS]

OPTIONS:
    --no-seed       Start without the sample permanent and temporary toasts
    -h, --help      Show this help

KEYS:
    tab             Next form field
    ctrl+t          Toggle temporary/permanent
    enter           Create the toast
    ctrl+n/ctrl+p   Select a permanent toast
    ctrl+x          Close the selected toast
    esc, ctrl+c     Quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(cmd, demoNoSeed)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().BoolVar(&demoNoSeed, "no-seed", false, "skip the sample toasts")
}

// isTerminal is replaced in tests.
var isTerminal = func() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func runDemo(cmd *cobra.Command, noSeed bool) error {
	if !isTerminal() {
		return fmt.Errorf("demo needs a terminal; use 'toasts run' for headless output")
	}

	s, err := openSession(sessionOptions{})
	if err != nil {
		return err
	}
	defer s.close()

	s.start(!noSeed && config.GetBool("seed_enabled", true))

	return tui.Run(cmd.Context(), s.manager, tui.Options{
		TickInterval: config.GetDuration("tick_interval_ms", time.Millisecond, 50*time.Millisecond),
		MinTTL:       config.GetInt("min_ttl", 1),
		MaxTTL:       config.GetInt("max_ttl", 30),
		DefaultTTL:   config.GetInt("default_ttl", 5),
	})
}
