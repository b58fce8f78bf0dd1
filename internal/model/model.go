package model

import "time"

// Book is a search result from the books API.
type Book struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Authors       []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	Publisher     string   `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	PublishedDate string   `json:"publishedDate,omitempty" yaml:"published_date,omitempty"`
	CoverURL      string   `json:"coverUrl,omitempty" yaml:"cover_url,omitempty"`
}

// BookView is a Book annotated with whether it is already on the reading list.
// It is also the payload sent when adding to the list; Finished and
// FinishedDate are only set when a removed entry is put back.
type BookView struct {
	Book         `yaml:",inline"`
	IsAdded      bool       `json:"isAdded" yaml:"is_added"`
	Finished     bool       `json:"finished,omitempty" yaml:"finished,omitempty"`
	FinishedDate *time.Time `json:"finishedDate,omitempty" yaml:"finished_date,omitempty"`
}

// ReadingListItem is one entry of the user's reading list.
type ReadingListItem struct {
	BookID        string     `json:"bookId" yaml:"book_id"`
	Title         string     `json:"title" yaml:"title"`
	Authors       []string   `json:"authors,omitempty" yaml:"authors,omitempty"`
	Description   string     `json:"description,omitempty" yaml:"description,omitempty"`
	Publisher     string     `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	PublishedDate string     `json:"publishedDate,omitempty" yaml:"published_date,omitempty"`
	CoverURL      string     `json:"coverUrl,omitempty" yaml:"cover_url,omitempty"`
	Finished      bool       `json:"finished" yaml:"finished"`
	FinishedDate  *time.Time `json:"finishedDate,omitempty" yaml:"finished_date,omitempty"`
}

// ItemFromBook builds the reading list entry for b.
func ItemFromBook(b Book) ReadingListItem {
	return ReadingListItem{
		BookID:        b.ID,
		Title:         b.Title,
		Authors:       append([]string(nil), b.Authors...),
		Description:   b.Description,
		Publisher:     b.Publisher,
		PublishedDate: b.PublishedDate,
		CoverURL:      b.CoverURL,
	}
}

// ViewFromItem is the add payload that puts it back on the list as it was.
func ViewFromItem(it ReadingListItem) BookView {
	return BookView{
		Book:         BookFromItem(it),
		IsAdded:      true,
		Finished:     it.Finished,
		FinishedDate: it.FinishedDate,
	}
}

// BookFromItem recovers the Book an item was created from.
func BookFromItem(it ReadingListItem) Book {
	return Book{
		ID:            it.BookID,
		Title:         it.Title,
		Authors:       append([]string(nil), it.Authors...),
		Description:   it.Description,
		Publisher:     it.Publisher,
		PublishedDate: it.PublishedDate,
		CoverURL:      it.CoverURL,
	}
}
