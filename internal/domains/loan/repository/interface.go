package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/loan/model"
	"library-backend/internal/shared/query"
)

// RepositoryInterface is the loan store.
//
// Create must be atomic with respect to the one-outstanding-loan-per-book
// rule: of two concurrent creates for the same book at most one commits, the
// other fails with model.ErrBookAlreadyLoaned.
type RepositoryInterface interface {
	Create(ctx context.Context, loan *model.Loan) (*model.Loan, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Loan, bool, error)
	ExistsWhere(ctx context.Context, filter query.Filter) (bool, error)
	UpdateReturned(ctx context.Context, loan *model.Loan) (*model.Loan, error)
	Find(ctx context.Context, filter query.Filter, page query.PageRequest) (query.Page[model.Loan], error)
	FindAll(ctx context.Context, filter query.Filter) ([]model.Loan, error)
}
