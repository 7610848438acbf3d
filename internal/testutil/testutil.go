package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/store"
)

// TestBook is a sample record for tests
var TestBook = book.Book{
	Title:         "The Republic",
	Authors:       "Plato",
	Genre:         "Philosophy",
	ISBN:          "9780140449136",
	PublishedDate: "2007",
	CoverURL:      "https://covers.example/republic.jpg",
}

// NewSQLiteRepo returns a migrated in-memory store closed when the test ends.
func NewSQLiteRepo(t testing.TB) *store.BookSQLite {
	t.Helper()
	db, err := store.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db, store.DriverSQLite); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return store.NewBookSQLite(db, time.Second)
}

// NewStubServer starts an httptest server closed when the test ends and returns its URL.
func NewStubServer(t testing.TB, h http.HandlerFunc) string {
	t.Helper()
	s := httptest.NewServer(h)
	t.Cleanup(s.Close)
	return s.URL
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
	Raw    []byte
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		_ = json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
		Raw:    bodyBytes,
	}
}

// Data returns the "data" member of a success envelope as a map.
func (r RecordResponse) Data() map[string]interface{} {
	m, _ := r.Body["data"].(map[string]interface{})
	return m
}

// AssertResponseCode checks if the response code matches expected
func AssertResponseCode(t interface {
	Errorf(format string, args ...any)
}, got, want int) {
	if got != want {
		t.Errorf("got status code %d, want %d", got, want)
	}
}
