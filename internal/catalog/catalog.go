package catalog

import (
	"errors"
	"strings"

	"bookshelf/internal/book"
)

var (
	// ErrInvalidInput is wrapped by every *ValidationError.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLookupFailed is returned when no bibliographic source knows the ISBN.
	ErrLookupFailed = errors.New("isbn lookup failed")

	// ErrAlreadyExists is returned when the ISBN is already catalogued. The
	// collection is left unchanged.
	ErrAlreadyExists = errors.New("book already catalogued")
)

// PlaceholderTitle is stored when a lookup returns no title.
const PlaceholderTitle = "(no title)"

// ManualInput is a user supplied record.
type ManualInput struct {
	Title         string `json:"title" validate:"required,max=500"`
	Authors       string `json:"authors" validate:"max=500"`
	Genre         string `json:"genre" validate:"max=100"`
	ISBN          string `json:"isbn" validate:"required,max=20,isbn_length"`
	PublishedDate string `json:"published_date" validate:"max=100"`
	NumberOfPages *int   `json:"number_of_pages" validate:"omitempty,gte=0,lte=2147483647"`
	CoverURL      string `json:"cover_url" validate:"omitempty,max=2048,url"`
}

func (in *ManualInput) trim() {
	in.Title = strings.TrimSpace(in.Title)
	in.Authors = strings.TrimSpace(in.Authors)
	in.Genre = strings.TrimSpace(in.Genre)
	in.ISBN = strings.TrimSpace(in.ISBN)
	in.PublishedDate = strings.TrimSpace(in.PublishedDate)
	in.CoverURL = strings.TrimSpace(in.CoverURL)
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists the offending fields of a rejected input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Message
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// ColumnToggle is the state a sortable column header needs: the direction a
// click should request next and the glyph showing the current order.
type ColumnToggle struct {
	NextDir   book.Direction `json:"next_dir"`
	Indicator string         `json:"indicator"`
}

// Listing is the result of List.
type Listing struct {
	Books   []book.Book             `json:"books"`
	Sort    book.SortKey            `json:"sort"`
	Dir     book.Direction          `json:"dir,omitempty"`
	Columns map[string]ColumnToggle `json:"columns"`
}

const (
	IndicatorAsc  = "▲"
	IndicatorDesc = "▼"
)

// sortableColumns are the columns the listing can be toggled on.
var sortableColumns = []book.SortKey{book.SortAuthors, book.SortGenre}

func listable(k book.SortKey) bool {
	for _, c := range sortableColumns {
		if c == k {
			return true
		}
	}
	return false
}

// Toggle computes the header state of column given the active sort.
func Toggle(column, active book.SortKey, dir book.Direction) ColumnToggle {
	if column != active {
		return ColumnToggle{NextDir: book.Asc}
	}
	if dir == book.Desc {
		return ColumnToggle{NextDir: book.Asc, Indicator: IndicatorDesc}
	}
	return ColumnToggle{NextDir: book.Desc, Indicator: IndicatorAsc}
}
