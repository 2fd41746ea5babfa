package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	bookModel "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/loan/model"
	"library-backend/internal/shared/query"
)

// memoryRepository is an in-memory loan store. Create and UpdateReturned
// enforce the one-outstanding-loan rule under the mutex, standing in for
// the partial unique index.
type memoryRepository struct {
	mu    sync.Mutex
	loans []model.Loan // insertion order
	books map[uuid.UUID]bookModel.Book

	// forced failures
	findAllErr error
}

func newMemoryRepository(books ...bookModel.Book) *memoryRepository {
	r := &memoryRepository{books: make(map[uuid.UUID]bookModel.Book)}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

func (r *memoryRepository) outstandingLocked(bookID uuid.UUID, except uuid.UUID) bool {
	for _, l := range r.loans {
		if l.BookID == bookID && l.ID != except && l.IsOutstanding() {
			return true
		}
	}
	return false
}

func (r *memoryRepository) Create(_ context.Context, loan *model.Loan) (*model.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookID := loan.ResolvedBookID()
	book, ok := r.books[bookID]
	if !ok {
		return nil, bookModel.NewBookNotFoundError(bookID)
	}
	if r.outstandingLocked(bookID, uuid.Nil) {
		return nil, model.ErrBookAlreadyLoaned
	}

	stored := *loan
	stored.ID = uuid.New()
	stored.BookID = bookID
	stored.Book = &book
	stored.CreatedAt = time.Date(2024, 1, 1, 0, 0, len(r.loans), 0, time.UTC)
	r.loans = append(r.loans, stored)

	out := stored
	return &out, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Loan, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range r.loans {
		if l.ID == id {
			found := l
			return &found, true, nil
		}
	}
	return nil, false, nil
}

func (r *memoryRepository) ExistsWhere(_ context.Context, filter query.Filter) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range r.loans {
		if filter.Matches(l.Row()) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepository) UpdateReturned(_ context.Context, loan *model.Loan) (*model.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, l := range r.loans {
		if l.ID != loan.ID {
			continue
		}
		if loan.IsOutstanding() && r.outstandingLocked(l.BookID, l.ID) {
			return nil, model.ErrBookAlreadyLoaned
		}
		r.loans[i].Returned = loan.Returned
		updated := r.loans[i]
		return &updated, nil
	}
	return nil, model.NewLoanNotFoundError(loan.ID)
}

func (r *memoryRepository) Find(ctx context.Context, filter query.Filter, page query.PageRequest) (query.Page[model.Loan], error) {
	matched, err := r.FindAll(ctx, filter)
	if err != nil {
		return query.Page[model.Loan]{}, err
	}
	return query.Slice(matched, page), nil
}

func (r *memoryRepository) FindAll(_ context.Context, filter query.Filter) ([]model.Loan, error) {
	if r.findAllErr != nil {
		return nil, r.findAllErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]model.Loan, 0, len(r.loans))
	for _, l := range r.loans {
		if filter.Matches(l.Row()) {
			matched = append(matched, l)
		}
	}
	return matched, nil
}

// fixedClock pins "now" to noon UTC of the given date.
func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	}
}
