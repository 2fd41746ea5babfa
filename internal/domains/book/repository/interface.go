package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/shared/query"
)

// RepositoryInterface is the book store. The unique index on isbn is the
// authority for ISBN uniqueness; Create reports a violation as
// model.ErrISBNAlreadyExists.
type RepositoryInterface interface {
	Create(ctx context.Context, book *model.Book) (*model.Book, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Book, bool, error)
	FindByISBN(ctx context.Context, isbn string) (*model.Book, bool, error)
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)
	Update(ctx context.Context, book *model.Book) (*model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Find(ctx context.Context, filter query.Filter, page query.PageRequest) (query.Page[model.Book], error)
}
