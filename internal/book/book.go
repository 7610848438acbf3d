package book

import (
	"errors"
	"strings"
	"time"
	"unicode"
)

var (
	// ErrNotFound is returned when a book is not found.
	ErrNotFound = errors.New("book not found")

	// ErrDuplicate is returned when a book with the same ISBN is already stored.
	ErrDuplicate = errors.New("book with this isbn already exists")
)

// Book represents a catalogued book.
type Book struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Authors       string    `json:"authors"`
	Genre         string    `json:"genre,omitempty"`
	ISBN          string    `json:"isbn"`
	PublishedDate string    `json:"published_date,omitempty"`
	NumberOfPages *int      `json:"number_of_pages,omitempty"`
	CoverURL      string    `json:"cover_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// SortKey names a column the collection can be ordered by.
type SortKey string

const (
	SortNone    SortKey = ""
	SortAuthors SortKey = "authors"
	SortGenre   SortKey = "genre"
	SortTitle   SortKey = "title"
)

// ParseSortKey maps a user supplied value onto a SortKey. Unknown values become SortNone.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortAuthors, SortGenre, SortTitle:
		return SortKey(s)
	}
	return SortNone
}

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection maps a user supplied value onto a Direction, defaulting to Asc.
func ParseDirection(s string) Direction {
	if Direction(strings.ToLower(s)) == Desc {
		return Desc
	}
	return Asc
}

// Query defines the ordering for listing books.
// A zero Query lists newest first.
type Query struct {
	Sort SortKey
	Dir  Direction
}

// NormalizeISBN strips hyphens and whitespace from a raw ISBN.
func NormalizeISBN(raw string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
}

// MaxNumberOfPages is the largest page count both stores can hold (int4).
const MaxNumberOfPages = 1<<31 - 1

// ValidISBNLength reports whether a normalized ISBN has 10 or 13 characters.
func ValidISBNLength(isbn string) bool {
	n := len(isbn)
	return n == 10 || n == 13
}
