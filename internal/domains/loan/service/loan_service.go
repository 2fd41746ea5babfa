package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	bookModel "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/repository"
	"library-backend/internal/shared"
	"library-backend/internal/shared/query"
)

type loanService struct {
	repo  repository.RepositoryInterface
	clock shared.Clock
}

func NewLoanService(repo repository.RepositoryInterface, clock shared.Clock) ServiceInterface {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	return &loanService{
		repo:  repo,
		clock: clock,
	}
}

// Create opens a loan unless the book already has an outstanding one. The
// store repeats the check under a row lock, so two racing creates cannot
// both commit.
func (s *loanService) Create(ctx context.Context, loan *model.Loan) (*model.Loan, error) {
	if loan == nil || loan.ResolvedBookID() == uuid.Nil {
		return nil, model.ErrLoanBookRequired
	}

	loan.Customer = strings.TrimSpace(loan.Customer)
	loan.CustomerEmail = strings.TrimSpace(loan.CustomerEmail)
	if err := loan.Validate(); err != nil {
		return nil, model.ErrLoanInvalid.Wrap(err)
	}

	outstanding, err := s.repo.ExistsWhere(ctx, model.OutstandingFor(loan.ResolvedBookID()))
	if err != nil {
		return nil, fmt.Errorf("check outstanding loan: %w", err)
	}
	if outstanding {
		return nil, model.ErrBookAlreadyLoaned
	}

	if loan.LoanDate.IsZero() {
		loan.LoanDate = shared.Today(s.clock)
	} else {
		loan.LoanDate = shared.DateOf(loan.LoanDate)
	}

	return s.repo.Create(ctx, loan)
}

func (s *loanService) GetByID(ctx context.Context, id uuid.UUID) (*model.Loan, bool, error) {
	return s.repo.FindByID(ctx, id)
}

// MarkReturned persists the caller's Returned flag. A nil flag means the
// caller asked for a plain return and is stored as true.
func (s *loanService) MarkReturned(ctx context.Context, loan *model.Loan) (*model.Loan, error) {
	if !loan.HasID() {
		return nil, model.ErrLoanIDRequired
	}
	if loan.Returned == nil {
		loan.Returned = model.BoolPtr(true)
	}
	return s.repo.UpdateReturned(ctx, loan)
}

// Find matches loans whose book ISBN equals filter.ISBN or whose customer
// equals filter.Customer. Blank fields are ignored; no fields returns all.
func (s *loanService) Find(ctx context.Context, filter model.Filter, page query.PageRequest) (query.Page[model.Loan], error) {
	page = query.NewPageRequest(page.Number, page.Size)
	return s.repo.Find(ctx, filter.Predicate(), page)
}

func (s *loanService) GetLoansByBook(ctx context.Context, book *bookModel.Book, page query.PageRequest) (query.Page[model.Loan], error) {
	if !book.HasID() {
		return query.Page[model.Loan]{}, bookModel.ErrBookIDRequired
	}
	page = query.NewPageRequest(page.Number, page.Size)
	return s.repo.Find(ctx, model.ByBook(book.ID), page)
}

// GetAllLateLoans returns every outstanding loan taken more than
// LateThresholdDays before today.
func (s *loanService) GetAllLateLoans(ctx context.Context) ([]model.Loan, error) {
	return s.repo.FindAll(ctx, model.Late(shared.Today(s.clock)))
}
