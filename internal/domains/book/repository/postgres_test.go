package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/shared/query"
)

func TestFindDataset_TitleAndAuthorAreAnded(t *testing.T) {
	filter := model.Filter{Title: "senhor", Author: "Tolkien"}.Predicate()

	sql, args, err := findDataset(filter).Prepared(true).ToSQL()
	require.NoError(t, err)

	assert.Contains(t, sql, `FROM "books" AS "b"`)
	assert.Contains(t, sql, `("b"."title" ILIKE $1) AND ("b"."author" ILIKE $2)`)
	assert.Contains(t, sql, `ORDER BY "b"."created_at" ASC, "b"."id" ASC`)
	assert.Equal(t, []interface{}{"%senhor%", "%Tolkien%"}, args)
}

func TestFindDataset_BlankFilterSelectsEverything(t *testing.T) {
	sql, args, err := findDataset(model.Filter{Title: "  "}.Predicate()).Prepared(true).ToSQL()
	require.NoError(t, err)

	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)
}

func TestFindDataset_Paginated(t *testing.T) {
	ds := query.Paginate(findDataset(query.None()), query.PageRequest{Number: 2, Size: 10})

	sql, args, err := ds.Prepared(true).ToSQL()
	require.NoError(t, err)

	assert.Contains(t, sql, "LIMIT $1 OFFSET $2")
	assert.Len(t, args, 2)
}
