package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
	"library-backend/internal/shared"
	"library-backend/internal/shared/query"
)

type bookService struct {
	repo repository.RepositoryInterface
}

func NewBookService(repo repository.RepositoryInterface) ServiceInterface {
	return &bookService{repo: repo}
}

// Create rejects a book whose ISBN is already registered. The pre-check
// gives the common case a clean error; the unique index catches races and
// the repository reports them with the same error.
func (s *bookService) Create(ctx context.Context, book *model.Book) (*model.Book, error) {
	book.Normalize()
	if err := book.Validate(); err != nil {
		return nil, shared.NewInvalidArgumentError("BOOK_INVALID", "Invalid book").Wrap(err)
	}

	exists, err := s.repo.ExistsByISBN(ctx, book.ISBN)
	if err != nil {
		return nil, fmt.Errorf("check isbn: %w", err)
	}
	if exists {
		return nil, model.ErrISBNAlreadyExists
	}

	return s.repo.Create(ctx, book)
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, bool, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *bookService) GetByISBN(ctx context.Context, isbn string) (*model.Book, bool, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return nil, false, nil
	}
	return s.repo.FindByISBN(ctx, isbn)
}

// Update overwrites title and author of the book with book.ID. Callers
// fetch first when they need to tell a missing book apart.
func (s *bookService) Update(ctx context.Context, book *model.Book) (*model.Book, error) {
	if !book.HasID() {
		return nil, model.ErrBookIDRequired
	}

	book.Normalize()
	if err := book.Validate(); err != nil {
		return nil, shared.NewInvalidArgumentError("BOOK_INVALID", "Invalid book").Wrap(err)
	}

	return s.repo.Update(ctx, book)
}

func (s *bookService) Delete(ctx context.Context, book *model.Book) error {
	if !book.HasID() {
		return model.ErrBookIDRequired
	}
	return s.repo.Delete(ctx, book.ID)
}

// Find returns the page of books matching every non-blank filter field.
// TotalElements is the store's count of matching rows.
func (s *bookService) Find(ctx context.Context, filter model.Filter, page query.PageRequest) (query.Page[model.Book], error) {
	page = query.NewPageRequest(page.Number, page.Size)
	return s.repo.Find(ctx, filter.Predicate(), page)
}
