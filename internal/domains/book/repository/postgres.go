package repository

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/shared/query"
	"library-backend/pkg/cache"
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository builds the book store. cache may be nil, in which
// case FindByID always reads through to PostgreSQL.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

var returningColumns = []interface{}{"id", "title", "author", "isbn", "created_at", "updated_at"}

func selectBooks() *goqu.SelectDataset {
	return query.Dialect().
		From(goqu.T(model.Table).As(model.Alias)).
		Select(
			goqu.I(model.ColID),
			goqu.I(model.ColTitle),
			goqu.I(model.ColAuthor),
			goqu.I(model.ColISBN),
			goqu.I(model.ColCreatedAt),
			goqu.I(model.ColUpdatedAt),
		)
}

func findDataset(filter query.Filter) *goqu.SelectDataset {
	return filter.Apply(selectBooks()).
		Order(goqu.I(model.ColCreatedAt).Asc(), goqu.I(model.ColID).Asc())
}

func scanBook(row pgx.CollectableRow) (model.Book, error) {
	var b model.Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// ========================================
// WRITE
// ========================================

func (r *postgresRepository) Create(ctx context.Context, book *model.Book) (*model.Book, error) {
	sql, args, err := query.Dialect().
		Insert(model.Table).
		Rows(goqu.Record{
			"title":  book.Title,
			"author": book.Author,
			"isbn":   book.ISBN,
		}).
		Returning(returningColumns...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build insert book: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}

	created, err := pgx.CollectExactlyOneRow(rows, scanBook)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, model.ErrISBNAlreadyExists.Wrap(err)
		}
		return nil, fmt.Errorf("insert book: %w", err)
	}

	return &created, nil
}

// Update overwrites title and author of the row keyed by book.ID. ISBN is
// not part of the statement. A row deleted since the caller's fetch is
// reported as NotFound.
func (r *postgresRepository) Update(ctx context.Context, book *model.Book) (*model.Book, error) {
	sql, args, err := query.Dialect().
		Update(model.Table).
		Set(goqu.Record{
			"title":      book.Title,
			"author":     book.Author,
			"updated_at": goqu.L("NOW()"),
		}).
		Where(goqu.C("id").Eq(book.ID)).
		Returning(returningColumns...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build update book: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	updated, err := pgx.CollectExactlyOneRow(rows, scanBook)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, model.NewBookNotFoundError(book.ID)
		}
		return nil, fmt.Errorf("update book: %w", err)
	}

	r.invalidate(ctx, book.ID)
	return &updated, nil
}

// Delete removes the row; a book with loans is ErrBookHasLoans and a row
// that is already gone is NotFound.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := query.Dialect().
		Delete(model.Table).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete book: %w", err)
	}

	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return model.ErrBookHasLoans.Wrap(err)
		}
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewBookNotFoundError(id)
	}

	r.invalidate(ctx, id)
	return nil
}

// ========================================
// READ
// ========================================

// FindByID is cache-aside: Redis first, PostgreSQL on miss. Cache failures
// are logged and never fail the lookup.
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, bool, error) {
	key := model.BookCacheKey(id)

	if r.cache != nil {
		var cached model.Book
		found, err := r.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("[BookRepository] cache read failed")
		}
		if found {
			return &cached, true, nil
		}
	}

	book, found, err := r.findOne(ctx, goqu.I(model.ColID).Eq(id))
	if err != nil || !found {
		return nil, false, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, book, model.BookCacheTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("[BookRepository] cache write failed")
		}
	}

	return book, true, nil
}

func (r *postgresRepository) FindByISBN(ctx context.Context, isbn string) (*model.Book, bool, error) {
	return r.findOne(ctx, goqu.I(model.ColISBN).Eq(isbn))
}

func (r *postgresRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	sql, args, err := query.Dialect().
		From(model.Table).
		Select(goqu.L("1")).
		Where(goqu.C("isbn").Eq(isbn)).
		Limit(1).
		Prepared(true).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build exists book: %w", err)
	}

	var one int
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&one); err != nil {
		if database.IsNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("check isbn exists: %w", err)
	}
	return true, nil
}

func (r *postgresRepository) Find(ctx context.Context, filter query.Filter, page query.PageRequest) (query.Page[model.Book], error) {
	return database.QueryPage(ctx, r.pool, findDataset(filter), page, scanBook)
}

func (r *postgresRepository) findOne(ctx context.Context, where exp.Expression) (*model.Book, bool, error) {
	items, err := database.QueryAll(ctx, r.pool, selectBooks().Where(where).Limit(1), scanBook)
	if err != nil {
		return nil, false, fmt.Errorf("find book: %w", err)
	}
	if len(items) == 0 {
		return nil, false, nil
	}
	return &items[0], true, nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, model.BookCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("book_id", id.String()).Msg("[BookRepository] cache invalidation failed")
	}
}
