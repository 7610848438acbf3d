package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"bookshelf/internal/book"
	"bookshelf/internal/catalog"
)

var (
	genres  = []string{"Fiction", "Science Fiction", "History", "Science", "Technology", "Romance", "Mystery", "Biography", "Philosophy", "Art"}
	authors = []string{"Austen", "Borges", "Calvino", "Dickens", "Eco", "Lem", "Le Guin", "Morrison", "Murakami", "Woolf"}
	words   = []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
)

type manualAdder interface {
	AddManual(ctx context.Context, in catalog.ManualInput) (*book.Book, error)
}

type result struct {
	created int
	skipped int
}

// checkCount rejects counts generate cannot honour.
func checkCount(n int) error {
	if n < 0 {
		return fmt.Errorf("count must be zero or positive, got %d", n)
	}
	return nil
}

// generate builds n manual entries with distinct 13-digit ISBNs.
func generate(rnd *rand.Rand, n int) []catalog.ManualInput {
	out := make([]catalog.ManualInput, 0, n)
	for i := 0; i < n; i++ {
		pages := 100 + rnd.Intn(800)
		out = append(out, catalog.ManualInput{
			Title:         fmt.Sprintf("The %s of %s", pick(rnd, words), pick(rnd, words)),
			Authors:       pick(rnd, authors),
			Genre:         pick(rnd, genres),
			ISBN:          fmt.Sprintf("979%010d", i+1),
			PublishedDate: fmt.Sprintf("%d", 1950+rnd.Intn(75)),
			NumberOfPages: &pages,
		})
	}
	return out
}

// seed adds every entry, counting ISBNs already catalogued as skipped.
func seed(ctx context.Context, svc manualAdder, entries []catalog.ManualInput) (result, error) {
	var res result
	for _, in := range entries {
		_, err := svc.AddManual(ctx, in)
		switch {
		case err == nil:
			res.created++
		case errors.Is(err, catalog.ErrAlreadyExists):
			res.skipped++
		default:
			return res, fmt.Errorf("add %s: %w", in.ISBN, err)
		}
	}
	return res, nil
}

func pick(rnd *rand.Rand, from []string) string {
	return from[rnd.Intn(len(from))]
}
