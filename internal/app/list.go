package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/okreads/internal/model"
)

func newListCmd() *cobra.Command {
	var (
		jsonOut bool
		offline bool
		unread  bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show your reading list",
		Long: `Show the books on your reading list.

Every successful load refreshes the offline snapshot. Use --offline to
print that snapshot without contacting the backend.

Examples:
  okreads list
  okreads list --unread
  okreads list --offline --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var items []model.ReadingListItem
			if offline {
				snap, err := cacheMgr.LoadReadingList()
				if err != nil {
					return err
				}
				if snap.SavedAt.IsZero() {
					warn(cmd.ErrOrStderr(), "No offline snapshot yet; run 'okreads list' while online first")
				} else if !jsonOut {
					header(cmd.OutOrStdout(), "Offline snapshot from %s", snap.SavedAt.Local().Format("Jan 2, 2006 15:04"))
				}
				items = snap.Items
			} else {
				err := withReadingList(cmd.Context(), cmd.ErrOrStderr(), func(_ *session, loaded []model.ReadingListItem) error {
					items = loaded
					return nil
				})
				if err != nil {
					return err
				}
			}

			if unread {
				filtered := make([]model.ReadingListItem, 0, len(items))
				for _, it := range items {
					if !it.Finished {
						filtered = append(filtered, it)
					}
				}
				items = filtered
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(items); err != nil {
					return fmt.Errorf("encoding JSON: %w", err)
				}
				return nil
			}
			printReadingList(cmd.OutOrStdout(), items)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&offline, "offline", false, "Read the last saved snapshot instead of the backend")
	cmd.Flags().BoolVar(&unread, "unread", false, "Only show books not marked as finished")
	return cmd
}
