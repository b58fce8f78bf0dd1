package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/okreads/internal/action"
	"github.com/blackwell-systems/okreads/internal/model"
)

func newFinishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "finish <book-id>",
		Short: "Mark a book on your reading list as finished",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withReadingList(cmd.Context(), cmd.ErrOrStderr(), func(s *session, items []model.ReadingListItem) error {
				it, err := findItem(items, args[0])
				if err != nil {
					return err
				}
				if it.Finished {
					warn(cmd.ErrOrStderr(), "%q is already marked as finished", it.Title)
					return nil
				}
				_, err = s.dispatchAndWait(cmd.Context(), action.MarkBookAsFinished{Item: it},
					action.KindConfirmedMarkBookAsFinished, action.KindFailedMarkBookAsFinished)
				if err != nil {
					return err
				}
				ok(cmd.OutOrStdout(), "Marked %q as finished", it.Title)
				return nil
			})
		},
	}
}
