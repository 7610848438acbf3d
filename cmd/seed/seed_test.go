package main

import (
	"context"
	"math/rand"
	"testing"

	"bookshelf/internal/catalog"
	"bookshelf/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_DistinctValidEntries(t *testing.T) {
	entries := generate(rand.New(rand.NewSource(1)), 50)
	require.Len(t, entries, 50)

	seen := map[string]bool{}
	for _, e := range entries {
		assert.Len(t, e.ISBN, 13)
		assert.False(t, seen[e.ISBN], "duplicate isbn %s", e.ISBN)
		seen[e.ISBN] = true
		assert.NotEmpty(t, e.Title)
	}
}

func TestSeed_SkipsExistingISBNs(t *testing.T) {
	svc := catalog.NewService(testutil.NewSQLiteRepo(t), nil, nil)
	ctx := context.Background()
	entries := generate(rand.New(rand.NewSource(2)), 5)

	res, err := seed(ctx, svc, entries)
	require.NoError(t, err)
	assert.Equal(t, result{created: 5}, res)

	res, err = seed(ctx, svc, entries)
	require.NoError(t, err)
	assert.Equal(t, result{skipped: 5}, res)

	listing, err := svc.List(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, listing.Books, 5)
}

func TestSeed_StopsOnInvalidEntry(t *testing.T) {
	svc := catalog.NewService(testutil.NewSQLiteRepo(t), nil, nil)

	res, err := seed(context.Background(), svc, []catalog.ManualInput{{Title: "", ISBN: "123"}})
	assert.ErrorIs(t, err, catalog.ErrInvalidInput)
	assert.Zero(t, res.created)
}

func TestCheckCount(t *testing.T) {
	assert.NoError(t, checkCount(0))
	assert.NoError(t, checkCount(25))
	assert.Error(t, checkCount(-1))
}
