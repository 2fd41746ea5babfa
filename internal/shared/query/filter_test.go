package query_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/shared/query"
)

func Test_Filter_DropsBlankConditions(t *testing.T) {
	tests := []struct {
		name       string
		filter     query.Filter
		wantActive int
	}{
		{
			name:       "all_blank_is_empty",
			filter:     query.All(query.Eq("b.isbn", ""), query.ContainsFold("b.title", "   "), query.Eq("l.book_id", uuid.Nil)),
			wantActive: 0,
		},
		{
			name:       "one_of_two_set",
			filter:     query.Any(query.Eq("b.isbn", "123"), query.Eq("l.customer", "")),
			wantActive: 1,
		},
		{
			name:       "not_true_is_always_active",
			filter:     query.All(query.NotTrue("l.returned"), query.LessThan("l.loan_date", time.Time{})),
			wantActive: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, tt.filter.Conditions(), tt.wantActive)
			assert.Equal(t, tt.wantActive == 0, tt.filter.IsEmpty())
		})
	}
}

func Test_Filter_Matches(t *testing.T) {
	returned := true
	notReturned := false
	cutoff := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter query.Filter
		row    query.Row
		want   bool
	}{
		{
			name:   "empty_filter_matches_everything",
			filter: query.None(),
			row:    query.Row{"b.isbn": "999"},
			want:   true,
		},
		{
			name:   "any_matches_on_customer_only",
			filter: query.Any(query.Eq("b.isbn", "123"), query.Eq("l.customer", "Maria")),
			row:    query.Row{"b.isbn": "999", "l.customer": "Maria"},
			want:   true,
		},
		{
			name:   "any_fails_when_nothing_matches",
			filter: query.Any(query.Eq("b.isbn", "123"), query.Eq("l.customer", "Maria")),
			row:    query.Row{"b.isbn": "999", "l.customer": "Fulano"},
			want:   false,
		},
		{
			name:   "all_requires_every_condition",
			filter: query.All(query.ContainsFold("b.title", "senhor"), query.ContainsFold("b.author", "tolkien")),
			row:    query.Row{"b.title": "O Senhor dos Aneis", "b.author": "Machado"},
			want:   false,
		},
		{
			name:   "contains_fold_ignores_case",
			filter: query.All(query.ContainsFold("b.title", "SENHOR"), query.ContainsFold("b.author", "tolk")),
			row:    query.Row{"b.title": "O Senhor dos Aneis", "b.author": "J. R. R. Tolkien"},
			want:   true,
		},
		{
			name:   "not_true_accepts_nil",
			filter: query.All(query.NotTrue("l.returned")),
			row:    query.Row{"l.returned": (*bool)(nil)},
			want:   true,
		},
		{
			name:   "not_true_accepts_false",
			filter: query.All(query.NotTrue("l.returned")),
			row:    query.Row{"l.returned": &notReturned},
			want:   true,
		},
		{
			name:   "not_true_rejects_true",
			filter: query.All(query.NotTrue("l.returned")),
			row:    query.Row{"l.returned": &returned},
			want:   false,
		},
		{
			name:   "less_than_is_strict",
			filter: query.All(query.LessThan("l.loan_date", cutoff)),
			row:    query.Row{"l.loan_date": cutoff},
			want:   false,
		},
		{
			name:   "less_than_before_cutoff",
			filter: query.All(query.LessThan("l.loan_date", cutoff)),
			row:    query.Row{"l.loan_date": cutoff.AddDate(0, 0, -1)},
			want:   true,
		},
		{
			name:   "eq_on_uuid",
			filter: query.All(query.Eq("l.book_id", uuid.MustParse("7b6c1d8e-4f1a-4d55-9a55-6a4c2e0f9b11"))),
			row:    query.Row{"l.book_id": uuid.MustParse("7b6c1d8e-4f1a-4d55-9a55-6a4c2e0f9b11")},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(tt.row))
		})
	}
}

func Test_Filter_CompilesToSQL(t *testing.T) {
	base := query.Dialect().From("loans").Select("id").Prepared(true)

	t.Run("or_semantics", func(t *testing.T) {
		f := query.Any(query.Eq("b.isbn", "123"), query.Eq("l.customer", "Maria"))

		sql, args, err := f.Apply(base).ToSQL()
		require.NoError(t, err)

		assert.Contains(t, sql, `"b"."isbn" = $1`)
		assert.Contains(t, sql, `"l"."customer" = $2`)
		assert.Contains(t, sql, " OR ")
		assert.Equal(t, []interface{}{"123", "Maria"}, args)
	})

	t.Run("and_semantics_with_escaped_like", func(t *testing.T) {
		f := query.All(query.ContainsFold("b.title", "50%_off"), query.ContainsFold("b.author", "Jorge"))

		sql, args, err := f.Apply(base).ToSQL()
		require.NoError(t, err)

		assert.Contains(t, sql, `"b"."title" ILIKE $1`)
		assert.Contains(t, sql, " AND ")
		assert.Equal(t, []interface{}{`%50\%\_off%`, "%Jorge%"}, args)
	})

	t.Run("late_loan_predicate", func(t *testing.T) {
		cutoff := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
		f := query.All(query.NotTrue("l.returned"), query.LessThan("l.loan_date", cutoff))

		sql, args, err := f.Apply(base).ToSQL()
		require.NoError(t, err)

		assert.Contains(t, sql, `"l"."returned" IS NOT TRUE`)
		assert.Contains(t, sql, `"l"."loan_date" < $1`)
		assert.Equal(t, []interface{}{cutoff}, args)
	})

	t.Run("empty_filter_has_no_where", func(t *testing.T) {
		sql, _, err := query.None().Apply(base).ToSQL()
		require.NoError(t, err)
		assert.NotContains(t, sql, "WHERE")
	})
}
