package catalog

import (
	"context"
	"errors"
	"testing"

	"bookshelf/internal/book"
	"bookshelf/internal/resolver"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, isbn string) (resolver.Metadata, error) {
	args := m.Called(ctx, isbn)
	return args.Get(0).(resolver.Metadata), args.Error(1)
}

func newTestService(t *testing.T) (*Service, *book.MockRepository, *mockResolver) {
	ctrl := gomock.NewController(t)
	repo := book.NewMockRepository(ctrl)
	res := new(mockResolver)
	return NewService(repo, res, nil), repo, res
}

func TestService_AddByISBN(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid length makes no calls", func(t *testing.T) {
		svc, _, res := newTestService(t)

		_, err := svc.AddByISBN(ctx, "12345")
		assert.ErrorIs(t, err, ErrInvalidInput)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "isbn", verr.Fields[0].Field)
		res.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
	})

	t.Run("normalizes and stores", func(t *testing.T) {
		svc, repo, res := newTestService(t)
		pages := 416
		res.On("Resolve", ctx, "9780140449136").Return(resolver.Metadata{
			Title: "República", Authors: "Plato", PublishedDate: "2007", NumberOfPages: &pages, CoverURL: "http://c",
		}, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b *book.Book) error {
			assert.Equal(t, "9780140449136", b.ISBN)
			assert.Equal(t, "República", b.Title)
			b.ID = 7
			return nil
		})

		b, err := svc.AddByISBN(ctx, "978-0-14-044913-6")
		require.NoError(t, err)
		assert.Equal(t, int64(7), b.ID)
		assert.Equal(t, "Plato", b.Authors)
		assert.Equal(t, 416, *b.NumberOfPages)
		res.AssertExpectations(t)
	})

	t.Run("drops page counts the store cannot hold", func(t *testing.T) {
		svc, repo, res := newTestService(t)
		oversized := book.MaxNumberOfPages + 1
		res.On("Resolve", ctx, "1234567890").Return(resolver.Metadata{Title: "Big", NumberOfPages: &oversized}, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		b, err := svc.AddByISBN(ctx, "1234567890")
		require.NoError(t, err)
		assert.Nil(t, b.NumberOfPages)
	})

	t.Run("placeholder title", func(t *testing.T) {
		svc, repo, res := newTestService(t)
		res.On("Resolve", ctx, "1234567890").Return(resolver.Metadata{Authors: "Anon"}, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		b, err := svc.AddByISBN(ctx, "1234567890")
		require.NoError(t, err)
		assert.Equal(t, PlaceholderTitle, b.Title)
	})

	t.Run("lookup failed", func(t *testing.T) {
		svc, _, res := newTestService(t)
		res.On("Resolve", ctx, "0000000000").Return(resolver.Metadata{}, resolver.ErrNotFound)

		_, err := svc.AddByISBN(ctx, "0000000000")
		assert.ErrorIs(t, err, ErrLookupFailed)
	})

	t.Run("duplicate", func(t *testing.T) {
		svc, repo, res := newTestService(t)
		res.On("Resolve", ctx, "9780140449136").Return(resolver.Metadata{Title: "República"}, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(book.ErrDuplicate)

		_, err := svc.AddByISBN(ctx, "9780140449136")
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("store failure", func(t *testing.T) {
		svc, repo, res := newTestService(t)
		res.On("Resolve", ctx, "9780140449136").Return(resolver.Metadata{Title: "República"}, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

		_, err := svc.AddByISBN(ctx, "9780140449136")
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrAlreadyExists))
	})

	t.Run("negative pages dropped", func(t *testing.T) {
		svc, repo, res := newTestService(t)
		pages := -3
		res.On("Resolve", ctx, "1234567890").Return(resolver.Metadata{Title: "T", NumberOfPages: &pages}, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		b, err := svc.AddByISBN(ctx, "1234567890")
		require.NoError(t, err)
		assert.Nil(t, b.NumberOfPages)
	})
}

func TestService_AddManual(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b *book.Book) error {
			assert.Equal(t, "014044913X", b.ISBN)
			assert.Equal(t, "Philosophy", b.Genre)
			return nil
		})

		_, err := svc.AddManual(ctx, ManualInput{
			Title: " The Republic ", Authors: "Plato", Genre: "Philosophy", ISBN: "0-14-044913-X",
		})
		require.NoError(t, err)
	})

	t.Run("invalid fields", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		pages := -1

		_, err := svc.AddManual(ctx, ManualInput{Title: "  ", ISBN: "123", NumberOfPages: &pages, CoverURL: "not a url"})
		assert.ErrorIs(t, err, ErrInvalidInput)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))

		fields := map[string]bool{}
		for _, f := range verr.Fields {
			fields[f.Field] = true
		}
		assert.True(t, fields["title"])
		assert.True(t, fields["isbn"])
		assert.True(t, fields["number_of_pages"])
		assert.True(t, fields["cover_url"])
	})

	t.Run("duplicate", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(book.ErrDuplicate)

		_, err := svc.AddManual(ctx, ManualInput{Title: "Dup", ISBN: "9780140449136"})
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("default", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.EXPECT().List(gomock.Any(), book.Query{}).Return([]book.Book{{Title: "A"}}, nil)

		listing, err := svc.List(ctx, "", "desc")
		require.NoError(t, err)
		assert.Len(t, listing.Books, 1)
		assert.Equal(t, book.SortNone, listing.Sort)
		assert.Equal(t, ColumnToggle{NextDir: book.Asc}, listing.Columns["authors"])
		assert.Equal(t, ColumnToggle{NextDir: book.Asc}, listing.Columns["genre"])
	})

	t.Run("authors defaults to asc", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.EXPECT().List(gomock.Any(), book.Query{Sort: book.SortAuthors, Dir: book.Asc}).Return([]book.Book{}, nil)

		listing, err := svc.List(ctx, "authors", "")
		require.NoError(t, err)
		assert.Equal(t, ColumnToggle{NextDir: book.Desc, Indicator: IndicatorAsc}, listing.Columns["authors"])
		assert.Equal(t, ColumnToggle{NextDir: book.Asc}, listing.Columns["genre"])
	})

	t.Run("genre desc", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.EXPECT().List(gomock.Any(), book.Query{Sort: book.SortGenre, Dir: book.Desc}).Return([]book.Book{}, nil)

		listing, err := svc.List(ctx, "genre", "desc")
		require.NoError(t, err)
		assert.Equal(t, ColumnToggle{NextDir: book.Asc, Indicator: IndicatorDesc}, listing.Columns["genre"])
	})

	t.Run("unknown key", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.EXPECT().List(gomock.Any(), book.Query{}).Return([]book.Book{}, nil)

		listing, err := svc.List(ctx, "price", "asc")
		require.NoError(t, err)
		assert.Equal(t, book.SortNone, listing.Sort)
	})

	t.Run("store error", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		_, err := svc.List(ctx, "", "")
		assert.Error(t, err)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)

	repo.EXPECT().Delete(gomock.Any(), int64(3)).Return(nil)
	assert.NoError(t, svc.Delete(ctx, 3))

	repo.EXPECT().Delete(gomock.Any(), int64(99)).Return(book.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 99), book.ErrNotFound)
}

func TestToggle_TwiceReturnsToStart(t *testing.T) {
	first := Toggle(book.SortAuthors, book.SortAuthors, book.Asc)
	require.Equal(t, book.Desc, first.NextDir)

	second := Toggle(book.SortAuthors, book.SortAuthors, first.NextDir)
	assert.Equal(t, book.Asc, second.NextDir)
	assert.Equal(t, IndicatorDesc, second.Indicator)
}
