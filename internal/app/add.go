package app

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/okreads/internal/action"
	"github.com/blackwell-systems/okreads/internal/model"
)

func newAddCmd() *cobra.Command {
	var book model.Book

	cmd := &cobra.Command{
		Use:   "add <book-id>",
		Short: "Add a book to your reading list",
		Long: `Add a book to your reading list. Use the id shown by 'okreads search'.

Examples:
  okreads add B00B7NPRY8 --title "Dune" --author "Frank Herbert"
  okreads add abc123 --title "Good Omens" --author "Terry Pratchett" --author "Neil Gaiman"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book.ID = strings.TrimSpace(args[0])
			book.Title = strings.TrimSpace(book.Title)

			return withReadingList(cmd.Context(), cmd.ErrOrStderr(), func(s *session, items []model.ReadingListItem) error {
				if model.ByBookID(items, book.ID) != nil {
					warn(cmd.ErrOrStderr(), "%q is already on your reading list", book.Title)
					return nil
				}
				_, err := s.dispatchAndWait(cmd.Context(), action.AddToReadingList{Book: book},
					action.KindConfirmedAddToReadingList, action.KindFailedAddToReadingList)
				if err != nil {
					return err
				}
				ok(cmd.OutOrStdout(), "Added %q to your reading list", book.Title)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&book.Title, "title", "", "Book title (required)")
	cmd.Flags().StringArrayVar(&book.Authors, "author", nil, "Author (repeatable)")
	cmd.Flags().StringVar(&book.Description, "description", "", "Short description")
	cmd.Flags().StringVar(&book.Publisher, "publisher", "", "Publisher")
	cmd.Flags().StringVar(&book.PublishedDate, "published-date", "", "Publication date, e.g. 1965-08-01")
	cmd.Flags().StringVar(&book.CoverURL, "cover-url", "", "Cover image URL")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}
