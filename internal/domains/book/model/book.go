package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/shared/query"
)

// Table and qualified column names used by repositories and query filters.
const (
	Table = "books"
	Alias = "b"

	ColID        = "b.id"
	ColTitle     = "b.title"
	ColAuthor    = "b.author"
	ColISBN      = "b.isbn"
	ColCreatedAt = "b.created_at"
	ColUpdatedAt = "b.updated_at"
)

// Book is a catalog entry. ID and ISBN never change once stored.
type Book struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Author    string    `json:"author" db:"author"`
	ISBN      string    `json:"isbn" db:"isbn"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (b *Book) HasID() bool {
	return b != nil && b.ID != uuid.Nil
}

// Normalize trims the user supplied text fields.
func (b *Book) Normalize() {
	b.Title = strings.TrimSpace(b.Title)
	b.Author = strings.TrimSpace(b.Author)
	b.ISBN = strings.TrimSpace(b.ISBN)
}

func (b Book) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&b.Author, validation.Required, validation.Length(1, 255)),
		validation.Field(&b.ISBN, validation.Required, validation.Length(1, 32)),
	)
}

// Row exposes the book under its qualified column names so in-memory stores
// can evaluate the same query.Filter the SQL repository compiles.
func (b Book) Row() query.Row {
	return query.Row{
		ColID:     b.ID,
		ColTitle:  b.Title,
		ColAuthor: b.Author,
		ColISBN:   b.ISBN,
	}
}

// Filter holds the optional search fields of Catalog.Find. Blank fields are
// ignored; the rest must all match (case-insensitive substring).
type Filter struct {
	Title  string `form:"title"`
	Author string `form:"author"`
}

func (f Filter) Predicate() query.Filter {
	return query.All(
		query.ContainsFold(ColTitle, f.Title),
		query.ContainsFold(ColAuthor, f.Author),
	)
}
