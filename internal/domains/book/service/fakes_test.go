package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/shared/query"
)

// memoryRepository is an in-memory book store. It evaluates query.Filter
// with Filter.Matches and enforces ISBN uniqueness like the unique index.
type memoryRepository struct {
	mu    sync.Mutex
	books map[uuid.UUID]model.Book
	seq   int

	// forced failures
	existsErr error
	findErr   error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{books: make(map[uuid.UUID]model.Book)}
}

func (r *memoryRepository) Create(_ context.Context, book *model.Book) (*model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.books {
		if b.ISBN == book.ISBN {
			return nil, model.ErrISBNAlreadyExists
		}
	}

	r.seq++
	stored := *book
	stored.ID = uuid.New()
	stored.CreatedAt = time.Date(2024, 1, 1, 0, 0, r.seq, 0, time.UTC)
	stored.UpdatedAt = stored.CreatedAt
	r.books[stored.ID] = stored
	return &stored, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Book, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok {
		return nil, false, nil
	}
	return &b, true, nil
}

func (r *memoryRepository) FindByISBN(_ context.Context, isbn string) (*model.Book, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.books {
		if b.ISBN == isbn {
			found := b
			return &found, true, nil
		}
	}
	return nil, false, nil
}

func (r *memoryRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	if r.existsErr != nil {
		return false, r.existsErr
	}
	_, found, err := r.FindByISBN(ctx, isbn)
	return found, err
}

func (r *memoryRepository) Update(_ context.Context, book *model.Book) (*model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.books[book.ID]
	if !ok {
		return nil, model.NewBookNotFoundError(book.ID)
	}
	stored.Title = book.Title
	stored.Author = book.Author
	stored.UpdatedAt = stored.UpdatedAt.Add(time.Minute)
	r.books[book.ID] = stored
	return &stored, nil
}

func (r *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return model.NewBookNotFoundError(id)
	}
	delete(r.books, id)
	return nil
}

func (r *memoryRepository) Find(_ context.Context, filter query.Filter, page query.PageRequest) (query.Page[model.Book], error) {
	if r.findErr != nil {
		return query.Page[model.Book]{}, r.findErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]model.Book, 0, len(r.books))
	for _, b := range r.books {
		if filter.Matches(b.Row()) {
			matched = append(matched, b)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	return query.Slice(matched, page), nil
}
