package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/okreads/internal/config"
)

type statusOutput struct {
	ConfigFile    string     `json:"config_file"`
	BaseURL       string     `json:"base_url"`
	Reachable     bool       `json:"reachable"`
	Error         string     `json:"error,omitempty"`
	Books         int        `json:"books"`
	Unread        int        `json:"unread"`
	SnapshotAt    *time.Time `json:"snapshot_at,omitempty"`
	SnapshotBooks int        `json:"snapshot_books"`
}

func newStatusCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show backend connectivity and reading list statistics",
		Long: `Show which backend okreads talks to, whether it answers, how many
books are on your reading list and how old the offline snapshot is.

Examples:
  okreads status
  okreads status --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := collectStatus(cmd.Context(), cmd.ErrOrStderr())
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			printStatusText(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func collectStatus(ctx context.Context, errOut io.Writer) statusOutput {
	result := statusOutput{ConfigFile: flagConfig, BaseURL: cfg.API.BaseURL}
	if result.ConfigFile == "" {
		result.ConfigFile = config.DefaultPath()
	}

	// Plain API call: status only reads, so no effects are needed.
	items, err := client.GetReadingList(ctx)
	if err != nil {
		result.Error = err.Error()
	} else {
		result.Reachable = true
		result.Books = len(items)
		for _, it := range items {
			if !it.Finished {
				result.Unread++
			}
		}
	}

	snap, err := cacheMgr.LoadReadingList()
	if err != nil {
		warn(errOut, "Could not read offline snapshot: %v", err)
	} else if !snap.SavedAt.IsZero() {
		at := snap.SavedAt
		result.SnapshotAt = &at
		result.SnapshotBooks = len(snap.Items)
	}
	return result
}

func printStatusText(w io.Writer, result statusOutput) {
	header(w, "okreads status")
	fmt.Fprintf(w, "  config:   %s\n", result.ConfigFile)
	fmt.Fprintf(w, "  backend:  %s\n", result.BaseURL)

	if result.Reachable {
		fmt.Fprintf(w, "  %s backend reachable\n", color.GreenString("✓"))
		fmt.Fprintf(w, "  %d book(s) on your reading list, %d unread\n", result.Books, result.Unread)
	} else {
		fmt.Fprintf(w, "  %s backend unreachable: %s\n", color.RedString("✗"), result.Error)
	}

	if result.SnapshotAt == nil {
		fmt.Fprintf(w, "  %s no offline snapshot\n", color.HiBlackString("·"))
		return
	}
	age := time.Since(*result.SnapshotAt).Round(time.Second)
	fmt.Fprintf(w, "  offline snapshot: %d book(s), saved %s ago\n", result.SnapshotBooks, age)
}
