//go:build property
// +build property

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/shared"
)

// TestCatalogProperties checks ISBN uniqueness and update immutability
func TestCatalogProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: of two books sharing an isbn, exactly one is created
	properties.Property("isbn uniqueness", prop.ForAll(
		func(isbn, title1, title2 string) bool {
			ctx := context.Background()
			svc := NewBookService(newMemoryRepository())

			_, err1 := svc.Create(ctx, &model.Book{Title: title1, Author: "a", ISBN: isbn})
			_, err2 := svc.Create(ctx, &model.Book{Title: title2, Author: "b", ISBN: isbn})

			return err1 == nil && errors.Is(err2, shared.ErrDuplicateKey)
		},
		gen.RegexMatch(`^[0-9]{1,13}$`),
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
	))

	// Property: update only ever changes title and author
	properties.Property("update keeps id and isbn", prop.ForAll(
		func(isbn, otherISBN, title, author string) bool {
			ctx := context.Background()
			svc := NewBookService(newMemoryRepository())

			created, err := svc.Create(ctx, &model.Book{Title: "t", Author: "a", ISBN: isbn})
			if err != nil {
				return false
			}

			updated, err := svc.Update(ctx, &model.Book{ID: created.ID, Title: title, Author: author, ISBN: otherISBN})
			if err != nil {
				return false
			}

			return updated.ID == created.ID &&
				updated.ISBN == created.ISBN &&
				updated.Title == title &&
				updated.Author == author
		},
		gen.RegexMatch(`^[0-9]{1,13}$`),
		gen.RegexMatch(`^[0-9]{1,13}$`),
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
	))

	properties.TestingRun(t)
}
