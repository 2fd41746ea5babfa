package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/shared/query"
)

// ServiceInterface is the catalog: it owns books and ISBN uniqueness.
type ServiceInterface interface {
	Create(ctx context.Context, book *model.Book) (*model.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, bool, error)
	GetByISBN(ctx context.Context, isbn string) (*model.Book, bool, error)
	Update(ctx context.Context, book *model.Book) (*model.Book, error)
	Delete(ctx context.Context, book *model.Book) error
	Find(ctx context.Context, filter model.Filter, page query.PageRequest) (query.Page[model.Book], error)
}

// BulkServiceInterface moves books in and out of spreadsheets.
type BulkServiceInterface interface {
	Import(ctx context.Context, filename string, r io.Reader) (*model.ImportResult, error)
	Export(ctx context.Context, filter model.Filter) (*excelize.File, error)
}
