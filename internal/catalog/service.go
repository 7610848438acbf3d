package catalog

import (
	"context"
	"errors"
	"fmt"

	"bookshelf/internal/book"
	"bookshelf/internal/metrics"
	"bookshelf/internal/resolver"

	"go.uber.org/zap"
)

// MetadataResolver resolves an ISBN to metadata. It returns resolver.ErrNotFound
// when no source knows the ISBN.
type MetadataResolver interface {
	Resolve(ctx context.Context, isbn string) (resolver.Metadata, error)
}

type Service struct {
	repo     book.Repository
	resolver MetadataResolver
	log      *zap.Logger
}

func NewService(repo book.Repository, res MetadataResolver, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, resolver: res, log: log.Named("catalog")}
}

// AddByISBN enriches raw through the resolver and stores the result.
func (s *Service) AddByISBN(ctx context.Context, raw string) (*book.Book, error) {
	isbn := book.NormalizeISBN(raw)
	if !book.ValidISBNLength(isbn) {
		metrics.IncAddition("isbn", metrics.OutcomeInvalid)
		return nil, &ValidationError{Fields: []FieldError{isbnFieldError()}}
	}

	meta, err := s.resolver.Resolve(ctx, isbn)
	if err != nil {
		if errors.Is(err, resolver.ErrNotFound) {
			metrics.IncAddition("isbn", metrics.OutcomeNotFound)
			return nil, fmt.Errorf("%w: %s", ErrLookupFailed, isbn)
		}
		return nil, fmt.Errorf("resolve isbn %s: %w", isbn, err)
	}

	title := meta.Title
	if title == "" {
		title = PlaceholderTitle
	}
	b := &book.Book{
		Title:         truncate(title, 500),
		Authors:       truncate(meta.Authors, 500),
		ISBN:          isbn,
		PublishedDate: truncate(meta.PublishedDate, 100),
		NumberOfPages: storablePages(meta.NumberOfPages),
		CoverURL:      meta.CoverURL,
	}
	return s.insert(ctx, "isbn", b)
}

// AddManual validates in and stores it as given.
func (s *Service) AddManual(ctx context.Context, in ManualInput) (*book.Book, error) {
	in.trim()
	if err := validateStruct(in); err != nil {
		metrics.IncAddition("manual", metrics.OutcomeInvalid)
		return nil, err
	}

	b := &book.Book{
		Title:         in.Title,
		Authors:       in.Authors,
		Genre:         in.Genre,
		ISBN:          book.NormalizeISBN(in.ISBN),
		PublishedDate: in.PublishedDate,
		NumberOfPages: in.NumberOfPages,
		CoverURL:      in.CoverURL,
	}
	return s.insert(ctx, "manual", b)
}

func (s *Service) insert(ctx context.Context, flow string, b *book.Book) (*book.Book, error) {
	if err := s.repo.Insert(ctx, b); err != nil {
		if errors.Is(err, book.ErrDuplicate) {
			metrics.IncAddition(flow, metrics.OutcomeExisting)
			return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, b.ISBN)
		}
		return nil, err
	}
	metrics.IncAddition(flow, metrics.OutcomeCreated)
	s.log.Info("book added", zap.String("flow", flow), zap.Int64("id", b.ID), zap.String("isbn", b.ISBN))
	return b, nil
}

// List returns the collection in the requested order together with the
// toggle state of each sortable column. Unknown keys list newest first.
func (s *Service) List(ctx context.Context, sortKey, dir string) (Listing, error) {
	q := book.Query{Sort: book.ParseSortKey(sortKey)}
	if !listable(q.Sort) {
		q.Sort = book.SortNone
	}
	if q.Sort != book.SortNone {
		q.Dir = book.ParseDirection(dir)
	}

	books, err := s.repo.List(ctx, q)
	if err != nil {
		return Listing{}, err
	}

	columns := make(map[string]ColumnToggle, len(sortableColumns))
	for _, c := range sortableColumns {
		columns[string(c)] = Toggle(c, q.Sort, q.Dir)
	}
	return Listing{Books: books, Sort: q.Sort, Dir: q.Dir, Columns: columns}, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("book deleted", zap.Int64("id", id))
	return nil
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}

// storablePages drops page counts outside [0, book.MaxNumberOfPages].
func storablePages(n *int) *int {
	if n == nil || *n < 0 || *n > book.MaxNumberOfPages {
		return nil
	}
	return n
}
