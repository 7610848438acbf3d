package catalog

import (
	"errors"
	"strings"
	"testing"

	"bookshelf/internal/book"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct(t *testing.T) {
	pages := 10
	negative := -1
	maxPages := book.MaxNumberOfPages
	oversized := book.MaxNumberOfPages + 1

	tests := []struct {
		name      string
		input     ManualInput
		wantField string
	}{
		{"valid minimal", ManualInput{Title: "T", ISBN: "1234567890"}, ""},
		{"valid full", ManualInput{Title: "T", ISBN: "978-0-14-044913-6", NumberOfPages: &pages, CoverURL: "https://x.example/c.jpg"}, ""},
		{"zero pages", ManualInput{Title: "T", ISBN: "1234567890", NumberOfPages: new(int)}, ""},
		{"missing title", ManualInput{ISBN: "1234567890"}, "title"},
		{"long title", ManualInput{Title: strings.Repeat("a", 501), ISBN: "1234567890"}, "title"},
		{"long genre", ManualInput{Title: "T", Genre: strings.Repeat("g", 101), ISBN: "1234567890"}, "genre"},
		{"missing isbn", ManualInput{Title: "T"}, "isbn"},
		{"short isbn", ManualInput{Title: "T", ISBN: "12345"}, "isbn"},
		{"eleven chars", ManualInput{Title: "T", ISBN: "12345678901"}, "isbn"},
		{"negative pages", ManualInput{Title: "T", ISBN: "1234567890", NumberOfPages: &negative}, "number_of_pages"},
		{"max pages", ManualInput{Title: "T", ISBN: "1234567890", NumberOfPages: &maxPages}, ""},
		{"oversized pages", ManualInput{Title: "T", ISBN: "1234567890", NumberOfPages: &oversized}, "number_of_pages"},
		{"bad url", ManualInput{Title: "T", ISBN: "1234567890", CoverURL: "nope"}, "cover_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateStruct(tt.input)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.wantField, verr.Fields[0].Field)
			assert.NotEmpty(t, verr.Fields[0].Message)
		})
	}
}

func TestValidationError_Is(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{{Field: "isbn", Message: "bad"}}}
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "bad")
}
