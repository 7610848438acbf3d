package export

import (
	"bytes"
	"context"
	"testing"

	"bookshelf/internal/book"
	"bookshelf/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporter_OrdersByTitle(t *testing.T) {
	repo := testutil.NewSQLiteRepo(t)

	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, &book.Book{Title: "Zeta", ISBN: "9999999999"}))
	require.NoError(t, repo.Insert(ctx, &book.Book{Title: "Alpha", ISBN: "1111111111"}))

	var buf bytes.Buffer
	require.NoError(t, NewExporter(repo, nil).ExportAll(ctx, &buf))

	rows := readRows(t, buf.Bytes())
	require.Len(t, rows, 3)
	assert.Equal(t, "Alpha", rows[1][0])
	assert.Equal(t, "Zeta", rows[2][0])
}
