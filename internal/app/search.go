package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/okreads/internal/action"
	"github.com/blackwell-systems/okreads/internal/store"
)

func newSearchCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search for books to add to your reading list",
		Long: `Search the books API. Results already on your reading list are
marked with a dot.

Examples:
  okreads search "dune"
  okreads search tolkien --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.TrimSpace(args[0])
			if term == "" {
				return fmt.Errorf("search term must not be empty")
			}

			ctx := cmd.Context()
			s := newSession(client, nil, cfg.SnackBar.Duration, log)
			defer func() { _ = s.stop() }()

			// Results are still useful without the reading list; they just
			// cannot be marked.
			if _, err := s.load(ctx); err != nil {
				warn(cmd.ErrOrStderr(), "%v", err)
			}

			_, err := s.dispatchAndWait(ctx, action.SearchBooks{Term: term},
				action.KindSearchBooksSuccess, action.KindSearchBooksFailure)
			if err != nil {
				return err
			}
			books := store.AllBooks(s.store.State())

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(books)
			}
			printSearchResults(cmd.OutOrStdout(), term, books)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
