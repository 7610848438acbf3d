package resolver

import (
	"strings"

	"bookshelf/internal/platform/googlebooks"
	"bookshelf/internal/platform/openlibrary"

	"golang.org/x/text/cases"
)

// Metadata is the source independent result of an ISBN lookup.
type Metadata struct {
	Title         string
	Authors       string
	PublishedDate string
	NumberOfPages *int
	CoverURL      string
}

// FromOpenLibrary maps an Open Library record.
func FromOpenLibrary(d openlibrary.BookDetails) Metadata {
	names := make([]string, 0, len(d.Authors))
	for _, a := range d.Authors {
		names = append(names, a.Name)
	}
	return Metadata{
		Title:         d.Title,
		Authors:       JoinAuthors(names),
		PublishedDate: d.PublishDate,
		NumberOfPages: d.NumberOfPages,
		CoverURL:      FirstNonEmpty(d.Cover.Large, d.Cover.Medium, d.Cover.Small),
	}
}

// FromGoogleBooks maps a Google Books volume.
func FromGoogleBooks(v googlebooks.VolumeInfo) Metadata {
	m := Metadata{
		Title:         v.Title,
		Authors:       JoinAuthors(v.Authors),
		PublishedDate: v.PublishedDate,
		NumberOfPages: v.PageCount,
	}
	if v.ImageLinks != nil {
		m.CoverURL = FirstNonEmpty(v.ImageLinks.Thumbnail, v.ImageLinks.SmallThumbnail)
	}
	return m
}

// JoinAuthors joins author names with ", ", skipping blank entries.
func JoinAuthors(names []string) string {
	kept := names[:0:0]
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			kept = append(kept, n)
		}
	}
	return strings.Join(kept, ", ")
}

// FirstNonEmpty returns the first non-empty value in preference order.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ChooseTitle returns translated when it is non-empty and differs from original
// after trimming both and applying Unicode case folding, so "ß" and "ss" compare
// equal. Otherwise original is kept.
func ChooseTitle(original, translated string) string {
	t := strings.TrimSpace(translated)
	if t == "" {
		return original
	}
	// Casers are stateful, so each call gets its own.
	fold := cases.Fold()
	if fold.String(t) == fold.String(strings.TrimSpace(original)) {
		return original
	}
	return t
}
