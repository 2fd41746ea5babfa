package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	bookModel "library-backend/internal/domains/book/model"
	"library-backend/internal/shared/query"
)

const DateLayout = "2006-01-02"

// ========================================
// REQUESTS
// ========================================

// CreateLoanRequest identifies the book by ISBN, as the lending desk does.
type CreateLoanRequest struct {
	ISBN     string `json:"isbn"`
	Customer string `json:"customer"`
	Email    string `json:"email"`
}

func (r CreateLoanRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ISBN, validation.Required.Error("isbn is required")),
		validation.Field(&r.Customer, validation.Required.Error("customer is required")),
		validation.Field(&r.Email, is.EmailFormat.Error("email must be a valid address")),
	)
}

func (r CreateLoanRequest) ToEntity(book *bookModel.Book) *Loan {
	return &Loan{
		BookID:        book.ID,
		Book:          book,
		Customer:      r.Customer,
		CustomerEmail: r.Email,
	}
}

type CreateLoanResponse struct {
	ID uuid.UUID `json:"id"`
}

// ReturnLoanRequest is the PATCH body; returned is mandatory.
type ReturnLoanRequest struct {
	Returned *bool `json:"returned"`
}

func (r ReturnLoanRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Returned, validation.NotNil.Error("returned is required")),
	)
}

type ListLoansRequest struct {
	Filter
	query.PageRequest
}

// ========================================
// RESPONSES
// ========================================

type LoanResponse struct {
	ID       uuid.UUID               `json:"id"`
	ISBN     string                  `json:"isbn,omitempty"`
	Customer string                  `json:"customer"`
	Email    string                  `json:"email,omitempty"`
	LoanDate string                  `json:"loan_date"`
	Returned bool                    `json:"returned"`
	Book     *bookModel.BookResponse `json:"book,omitempty"`
}

func ToResponse(l Loan) LoanResponse {
	resp := LoanResponse{
		ID:       l.ID,
		Customer: l.Customer,
		Email:    l.CustomerEmail,
		LoanDate: l.LoanDate.Format(DateLayout),
		Returned: !l.IsOutstanding(),
	}
	if l.Book != nil {
		book := bookModel.ToResponse(*l.Book)
		resp.Book = &book
		resp.ISBN = l.Book.ISBN
	}
	return resp
}
