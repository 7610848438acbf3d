package store

import "bookshelf/internal/book"

// orderBy renders the ORDER BY expression for q. collate is appended to the sort
// column so both dialects compare text byte-wise.
func orderBy(q book.Query, collate string) string {
	var col string
	switch q.Sort {
	case book.SortAuthors:
		col = "authors"
	case book.SortGenre:
		col = "genre"
	case book.SortTitle:
		col = "title"
	default:
		return "created_at DESC, id DESC"
	}

	dir := "ASC"
	if q.Dir == book.Desc {
		dir = "DESC"
	}
	return col + collate + " " + dir + ", id ASC"
}
