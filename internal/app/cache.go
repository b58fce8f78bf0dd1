package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/okreads/internal/cache"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the offline reading list snapshot",
		Long:  "Manage the local snapshot used by 'okreads list --offline'. The backend is not touched.",
	}

	cmd.AddCommand(
		newCacheClearCmd(),
		newCacheInfoCmd(),
	)

	return cmd
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the offline snapshot",
		Long: `Delete the offline snapshot. It is written again the next time the
reading list loads.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cacheMgr.Exists(cache.ReadingListFile) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cache is already empty.")
				return nil
			}
			if err := cacheMgr.Remove(cache.ReadingListFile); err != nil {
				return fmt.Errorf("removing snapshot: %w", err)
			}
			ok(cmd.OutOrStdout(), "Removed %s", cacheMgr.Path(cache.ReadingListFile))
			return nil
		},
	}
}

func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache location and snapshot size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			path := cacheMgr.Path(cache.ReadingListFile)
			header(w, "Cache: %s", cfg.Cache.Dir)

			info, err := os.Stat(path)
			if os.IsNotExist(err) {
				fmt.Fprintln(w, "  no snapshot")
				return nil
			}
			if err != nil {
				return err
			}
			snap, err := cacheMgr.LoadReadingList()
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "  %s: %d book(s), %s, saved %s\n",
				cache.ReadingListFile, len(snap.Items), humanBytes(info.Size()),
				snap.SavedAt.Local().Format("Jan 2, 2006 15:04"))
			return nil
		},
	}
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
