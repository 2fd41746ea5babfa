package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/shared/query"
)

// ========================================
// REQUESTS
// ========================================

type CreateBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required")),
		validation.Field(&r.Author, validation.Required.Error("author is required")),
		validation.Field(&r.ISBN, validation.Required.Error("isbn is required")),
	)
}

func (r CreateBookRequest) ToEntity() *Book {
	b := &Book{Title: r.Title, Author: r.Author, ISBN: r.ISBN}
	b.Normalize()
	return b
}

// UpdateBookRequest only carries the mutable fields. An isbn in the body is
// accepted for compatibility but never applied.
type UpdateBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn,omitempty"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required")),
		validation.Field(&r.Author, validation.Required.Error("author is required")),
	)
}

// ApplyTo copies title and author onto an existing book.
func (r UpdateBookRequest) ApplyTo(b *Book) {
	b.Title = r.Title
	b.Author = r.Author
	b.Normalize()
}

type ListBooksRequest struct {
	Filter
	query.PageRequest
}

// ========================================
// RESPONSES
// ========================================

type BookResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	ISBN      string    `json:"isbn"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToResponse(b Book) BookResponse {
	return BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		ISBN:      b.ISBN,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
