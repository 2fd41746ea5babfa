package service

import (
	"context"

	"github.com/google/uuid"

	bookModel "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/loan/model"
	"library-backend/internal/shared/query"
)

// ServiceInterface is the ledger: it owns loans and the rule that a book has
// at most one outstanding loan.
type ServiceInterface interface {
	Create(ctx context.Context, loan *model.Loan) (*model.Loan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Loan, bool, error)
	MarkReturned(ctx context.Context, loan *model.Loan) (*model.Loan, error)
	Find(ctx context.Context, filter model.Filter, page query.PageRequest) (query.Page[model.Loan], error)
	GetLoansByBook(ctx context.Context, book *bookModel.Book, page query.PageRequest) (query.Page[model.Loan], error)
	GetAllLateLoans(ctx context.Context) ([]model.Loan, error)
}
