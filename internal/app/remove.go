package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/okreads/internal/action"
	"github.com/blackwell-systems/okreads/internal/model"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <book-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a book from your reading list",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withReadingList(cmd.Context(), cmd.ErrOrStderr(), func(s *session, items []model.ReadingListItem) error {
				it, err := findItem(items, args[0])
				if err != nil {
					return err
				}
				_, err = s.dispatchAndWait(cmd.Context(), action.RemoveFromReadingList{Item: it},
					action.KindConfirmedRemoveFromReadingList, action.KindFailedRemoveFromReadingList)
				if err != nil {
					return err
				}
				ok(cmd.OutOrStdout(), "Removed %q from your reading list", it.Title)
				return nil
			})
		},
	}
}
