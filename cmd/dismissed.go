package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/cristianoliveira/toasts/internal/storage"
	"github.com/cristianoliveira/toasts/internal/toast"
	"github.com/spf13/cobra"
)

var dismissedFormat string

// dismissedCmd represents the dismissed command
var dismissedCmd = &cobra.Command{
	Use:   "dismissed",
	Short: "List permanent toasts that were closed",
	Long: `List permanent toasts that were closed.

USAGE:
    toasts dismissed [OPTIONS]

OPTIONS:
    --format <format>   Output format: table or ids (default: table)
    -h, --help          Show this help

Closed permanent toasts are remembered by id and never shown again.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return fmt.Errorf("open dismissal store: %w", err)
		}
		defer storage.Close(store)
		return listDismissed(cmd.OutOrStdout(), store, dismissedFormat)
	},
}

func init() {
	rootCmd.AddCommand(dismissedCmd)
	dismissedCmd.Flags().StringVar(&dismissedFormat, "format", "table", "output format: table or ids")
}

func listDismissed(w io.Writer, store storage.Store, format string) error {
	lister, ok := store.(storage.Lister)
	if !ok {
		return fmt.Errorf("store %T cannot list markers", store)
	}
	entries, err := lister.List(toast.DismissalKeyPrefix)
	if err != nil {
		return fmt.Errorf("list dismissals: %w", err)
	}

	switch format {
	case "ids":
		for _, e := range entries {
			if id, ok := toast.ParseDismissalKey(e.Key); ok {
				fmt.Fprintln(w, id)
			}
		}
		return nil
	case "table", "":
	default:
		return fmt.Errorf("invalid format '%s': expected table or ids", format)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No dismissed toasts")
		return nil
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		id, ok := toast.ParseDismissalKey(e.Key)
		if !ok {
			continue
		}
		rows = append(rows, []string{
			strconv.FormatInt(id, 10),
			time.UnixMilli(id).UTC().Format(time.RFC3339),
			e.UpdatedAt,
		})
	}
	fmt.Fprintln(w, renderTable([]string{"ID", "CREATED", "CLOSED"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft}))
	return nil
}
