package repository

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	bookModel "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/loan/model"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/shared/query"
	"library-backend/internal/shared/utils"
	txdb "library-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// selectLoans joins every loan with its book so ISBN filters and the
// enriched response come from one query.
func selectLoans() *goqu.SelectDataset {
	return query.Dialect().
		From(goqu.T(model.Table).As(model.Alias)).
		InnerJoin(
			goqu.T(bookModel.Table).As(bookModel.Alias),
			goqu.On(goqu.I(model.ColBookID).Eq(goqu.I(bookModel.ColID))),
		).
		Select(
			goqu.I(model.ColID),
			goqu.I(model.ColBookID),
			goqu.I(model.ColCustomer),
			goqu.I(model.ColCustomerEmail),
			goqu.I(model.ColLoanDate),
			goqu.I(model.ColReturned),
			goqu.I(model.ColCreatedAt),
			goqu.I(bookModel.ColTitle),
			goqu.I(bookModel.ColAuthor),
			goqu.I(bookModel.ColISBN),
			goqu.I(bookModel.ColCreatedAt),
			goqu.I(bookModel.ColUpdatedAt),
		)
}

// findDataset orders by insertion so page boundaries are stable.
func findDataset(filter query.Filter) *goqu.SelectDataset {
	return filter.Apply(selectLoans()).
		Order(goqu.I(model.ColCreatedAt).Asc(), goqu.I(model.ColID).Asc())
}

func scanLoan(row pgx.CollectableRow) (model.Loan, error) {
	var (
		l     model.Loan
		b     bookModel.Book
		email *string
	)
	err := row.Scan(
		&l.ID,
		&l.BookID,
		&l.Customer,
		&email,
		&l.LoanDate,
		&l.Returned,
		&l.CreatedAt,
		&b.Title,
		&b.Author,
		&b.ISBN,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return l, err
	}
	if email != nil {
		l.CustomerEmail = *email
	}
	b.ID = l.BookID
	l.Book = &b
	return l, nil
}

// ========================================
// WRITE
// ========================================

// Create locks the book row, re-checks for an outstanding loan and inserts,
// all in one transaction. The partial unique index on loans(book_id) where
// returned is not true backs this up for writers that skip the lock.
func (r *postgresRepository) Create(ctx context.Context, loan *model.Loan) (*model.Loan, error) {
	bookID := loan.ResolvedBookID()

	created, err := txdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Loan, error) {
		book, err := lockBook(ctx, tx, bookID)
		if err != nil {
			return nil, err
		}

		outstanding, err := existsWhere(ctx, tx, model.OutstandingFor(bookID))
		if err != nil {
			return nil, err
		}
		if outstanding {
			return nil, model.ErrBookAlreadyLoaned
		}

		sql, args, err := query.Dialect().
			Insert(model.Table).
			Rows(goqu.Record{
				"book_id":        bookID,
				"customer":       loan.Customer,
				"customer_email": utils.TrimToNil(loan.CustomerEmail),
				"loan_date":      loan.LoanDate,
				"returned":       loan.Returned,
			}).
			Returning("id", "created_at").
			Prepared(true).
			ToSQL()
		if err != nil {
			return nil, fmt.Errorf("build insert loan: %w", err)
		}

		stored := *loan
		if err := tx.QueryRow(ctx, sql, args...).Scan(&stored.ID, &stored.CreatedAt); err != nil {
			return nil, err
		}
		stored.BookID = bookID
		stored.Book = book
		return &stored, nil
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, model.ErrBookAlreadyLoaned.Wrap(err)
		}
		return nil, err
	}

	return created, nil
}

// UpdateReturned persists loan.Returned as given. Reopening a loan while the
// book is out again violates the partial unique index and is reported as
// model.ErrBookAlreadyLoaned.
func (r *postgresRepository) UpdateReturned(ctx context.Context, loan *model.Loan) (*model.Loan, error) {
	sql, args, err := query.Dialect().
		Update(model.Table).
		Set(goqu.Record{"returned": loan.Returned}).
		Where(goqu.C("id").Eq(loan.ID)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build update loan: %w", err)
	}

	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, model.ErrBookAlreadyLoaned.Wrap(err)
		}
		return nil, fmt.Errorf("update loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.NewLoanNotFoundError(loan.ID)
	}

	updated, found, err := r.FindByID(ctx, loan.ID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, model.NewLoanNotFoundError(loan.ID)
	}
	return updated, nil
}

// ========================================
// READ
// ========================================

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Loan, bool, error) {
	items, err := database.QueryAll(ctx, r.pool, selectLoans().Where(goqu.I(model.ColID).Eq(id)).Limit(1), scanLoan)
	if err != nil {
		return nil, false, fmt.Errorf("find loan: %w", err)
	}
	if len(items) == 0 {
		return nil, false, nil
	}
	return &items[0], true, nil
}

func (r *postgresRepository) ExistsWhere(ctx context.Context, filter query.Filter) (bool, error) {
	return existsWhere(ctx, r.pool, filter)
}

func (r *postgresRepository) Find(ctx context.Context, filter query.Filter, page query.PageRequest) (query.Page[model.Loan], error) {
	return database.QueryPage(ctx, r.pool, findDataset(filter), page, scanLoan)
}

func (r *postgresRepository) FindAll(ctx context.Context, filter query.Filter) ([]model.Loan, error) {
	return database.QueryAll(ctx, r.pool, findDataset(filter), scanLoan)
}

// ========================================
// HELPERS
// ========================================

func lockBook(ctx context.Context, q database.Querier, id uuid.UUID) (*bookModel.Book, error) {
	sql, args, err := query.Dialect().
		From(goqu.T(bookModel.Table).As(bookModel.Alias)).
		Select(
			goqu.I(bookModel.ColID),
			goqu.I(bookModel.ColTitle),
			goqu.I(bookModel.ColAuthor),
			goqu.I(bookModel.ColISBN),
			goqu.I(bookModel.ColCreatedAt),
			goqu.I(bookModel.ColUpdatedAt),
		).
		Where(goqu.I(bookModel.ColID).Eq(id)).
		ForUpdate(exp.Wait).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build lock book: %w", err)
	}

	var b bookModel.Book
	err = q.QueryRow(ctx, sql, args...).Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, bookModel.NewBookNotFoundError(id)
		}
		return nil, fmt.Errorf("lock book: %w", err)
	}
	return &b, nil
}

func existsWhere(ctx context.Context, q database.Querier, filter query.Filter) (bool, error) {
	sql, args, err := filter.Apply(selectLoans()).
		ClearSelect().
		Select(goqu.L("1")).
		Limit(1).
		Prepared(true).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build exists loan: %w", err)
	}

	var one int
	if err := q.QueryRow(ctx, sql, args...).Scan(&one); err != nil {
		if database.IsNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("check loan exists: %w", err)
	}
	return true, nil
}
