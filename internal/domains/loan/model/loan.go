package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	bookModel "library-backend/internal/domains/book/model"
	"library-backend/internal/shared/query"
)

// LateThresholdDays is the lending period: a loan older than this many days
// and not returned is late.
const LateThresholdDays = 4

// Table and qualified column names used by repositories and query filters.
const (
	Table = "loans"
	Alias = "l"

	ColID            = "l.id"
	ColBookID        = "l.book_id"
	ColCustomer      = "l.customer"
	ColCustomerEmail = "l.customer_email"
	ColLoanDate      = "l.loan_date"
	ColReturned      = "l.returned"
	ColCreatedAt     = "l.created_at"
)

// Loan is one checkout of a book. Returned is tri-state: nil and false both
// mean outstanding.
type Loan struct {
	ID            uuid.UUID       `json:"id"`
	BookID        uuid.UUID       `json:"book_id"`
	Book          *bookModel.Book `json:"book,omitempty"`
	Customer      string          `json:"customer"`
	CustomerEmail string          `json:"customer_email"`
	LoanDate      time.Time       `json:"loan_date"`
	Returned      *bool           `json:"returned"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (l *Loan) HasID() bool {
	return l != nil && l.ID != uuid.Nil
}

// IsOutstanding reports whether the loan still holds its book.
func (l Loan) IsOutstanding() bool {
	return l.Returned == nil || !*l.Returned
}

// ResolvedBookID prefers the attached book over BookID.
func (l Loan) ResolvedBookID() uuid.UUID {
	if l.Book != nil && l.Book.ID != uuid.Nil {
		return l.Book.ID
	}
	return l.BookID
}

func (l Loan) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Customer, validation.Required, validation.Length(1, 255)),
	)
}

func (l Loan) Row() query.Row {
	row := query.Row{
		ColID:            l.ID,
		ColBookID:        l.ResolvedBookID(),
		ColCustomer:      l.Customer,
		ColCustomerEmail: l.CustomerEmail,
		ColLoanDate:      l.LoanDate,
		ColReturned:      l.Returned,
	}
	if l.Book != nil {
		row[bookModel.ColISBN] = l.Book.ISBN
	}
	return row
}

// Filter holds the optional search fields of Ledger.Find. When both are set
// a loan matching either one is returned.
type Filter struct {
	ISBN     string `form:"isbn"`
	Customer string `form:"customer"`
}

func (f Filter) Predicate() query.Filter {
	return query.Any(
		query.Eq(bookModel.ColISBN, strings.TrimSpace(f.ISBN)),
		query.Eq(ColCustomer, strings.TrimSpace(f.Customer)),
	)
}

// ByBook selects the whole loan history of one book.
func ByBook(bookID uuid.UUID) query.Filter {
	return query.All(query.Eq(ColBookID, bookID))
}

// LateCutoff is the first loan date that is not late yet on day today.
func LateCutoff(today time.Time) time.Time {
	return today.AddDate(0, 0, -LateThresholdDays)
}

// Late selects outstanding loans taken strictly before LateCutoff(today).
func Late(today time.Time) query.Filter {
	return query.All(
		query.NotTrue(ColReturned),
		query.LessThan(ColLoanDate, LateCutoff(today)),
	)
}

// OutstandingFor selects the open loan of a book, if any.
func OutstandingFor(bookID uuid.UUID) query.Filter {
	return query.All(
		query.Eq(ColBookID, bookID),
		query.NotTrue(ColReturned),
	)
}

func BoolPtr(b bool) *bool {
	return &b
}
