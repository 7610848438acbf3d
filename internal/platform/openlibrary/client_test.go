package openlibrary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookshelf/internal/platform/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return NewClient(upstream.New(time.Second, "bookshelf-test"), server.URL+"/")
}

func TestClient_GetBookByISBN(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/books", r.URL.Path)
		assert.Equal(t, "ISBN:9780261103344", r.URL.Query().Get("bibkeys"))
		assert.Equal(t, "data", r.URL.Query().Get("jscmd"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		_, _ = w.Write([]byte(`{
			"ISBN:9780261103344": {
				"title": "The Hobbit",
				"publish_date": "1995",
				"number_of_pages": 310,
				"authors": [{"url": "https://openlibrary.org/authors/OL26320A", "name": "J.R.R. Tolkien"}],
				"cover": {"small": "s.jpg", "medium": "m.jpg", "large": "l.jpg"}
			}
		}`))
	})

	details, err := c.GetBookByISBN(context.Background(), "9780261103344")
	require.NoError(t, err)
	assert.Equal(t, "The Hobbit", details.Title)
	assert.Equal(t, "1995", details.PublishDate)
	require.NotNil(t, details.NumberOfPages)
	assert.Equal(t, 310, *details.NumberOfPages)
	require.Len(t, details.Authors, 1)
	assert.Equal(t, "J.R.R. Tolkien", details.Authors[0].Name)
	assert.Equal(t, Cover{Small: "s.jpg", Medium: "m.jpg", Large: "l.jpg"}, details.Cover)
}

func TestClient_GetBookByISBN_MissingKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := c.GetBookByISBN(context.Background(), "0000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_GetBookByISBN_Non200(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.GetBookByISBN(context.Background(), "9780261103344")
	var statusErr *upstream.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestClient_GetBookByISBN_NoPages(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ISBN:014044913X": {"title": "Republic"}}`))
	})

	details, err := c.GetBookByISBN(context.Background(), "014044913X")
	require.NoError(t, err)
	assert.Nil(t, details.NumberOfPages)
	assert.Empty(t, details.Authors)
}
