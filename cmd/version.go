package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cristianoliveira/toasts/internal/version"
	"github.com/spf13/cobra"
)

// versionOutputWriter is the writer used for version output. Can be changed for testing.
var versionOutputWriter io.Writer = os.Stdout

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Show version information.`,
	Args:  cobra.NoArgs,
	// No config or logging needed to print a version.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		PrintVersion()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// PrintVersion writes the version line.
func PrintVersion() {
	fmt.Fprintf(versionOutputWriter, "toasts v%s\n", version.String())
}
