// Package export renders the collection as an XLSX workbook.
package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"bookshelf/internal/book"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "My Library"
	FileName    = "bookshelf.xlsx"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	TimeLayout  = "2006-01-02 15:04:05"
)

// Header is the first row of the sheet.
var Header = []string{"Title", "Authors", "Genre", "ISBN", "Publication date", "Pages", "Cover URL", "Registered at"}

var columnWidths = map[string]float64{"A": 40, "B": 30, "C": 16, "D": 16, "E": 18, "F": 8, "G": 40, "H": 20}

type Exporter struct {
	repo book.Repository
	loc  *time.Location
}

// NewExporter renders timestamps in loc, or UTC when loc is nil.
func NewExporter(repo book.Repository, loc *time.Location) *Exporter {
	if loc == nil {
		loc = time.UTC
	}
	return &Exporter{repo: repo, loc: loc}
}

// ExportAll writes every record, ordered by title, as a workbook to w.
func (e *Exporter) ExportAll(ctx context.Context, w io.Writer) error {
	books, err := e.repo.List(ctx, book.Query{Sort: book.SortTitle, Dir: book.Asc})
	if err != nil {
		return fmt.Errorf("list books: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	for i, row := range Rows(books, e.loc) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, style); err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	for col, width := range columnWidths {
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("column width: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Rows returns the header followed by one row per book. Missing page counts are "".
func Rows(books []book.Book, loc *time.Location) [][]interface{} {
	rows := make([][]interface{}, 0, len(books)+1)

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	rows = append(rows, header)

	for _, b := range books {
		var pages interface{} = ""
		if b.NumberOfPages != nil {
			pages = *b.NumberOfPages
		}
		rows = append(rows, []interface{}{
			b.Title,
			b.Authors,
			b.Genre,
			b.ISBN,
			b.PublishedDate,
			pages,
			b.CoverURL,
			b.CreatedAt.In(loc).Format(TimeLayout),
		})
	}
	return rows
}
