package model

import (
	"fmt"

	"github.com/google/uuid"

	"library-backend/internal/shared"
)

var (
	ErrBookAlreadyLoaned  = shared.NewBusinessRuleError("BOOK_ALREADY_LOANED", "Book already loaned")
	ErrLoanIDRequired     = shared.NewInvalidArgumentError("LOAN_ID_REQUIRED", "Loan id is required")
	ErrLoanBookRequired   = shared.NewInvalidArgumentError("LOAN_BOOK_REQUIRED", "Loan must reference a book")
	ErrLoanInvalid        = shared.NewInvalidArgumentError("LOAN_INVALID", "Invalid loan")
	ErrLoanNotFound       = shared.NewNotFoundError("LOAN_NOT_FOUND", "Loan not found")
	ErrInvalidLoanID      = shared.NewInvalidArgumentError("LOAN_ID_INVALID", "Loan id must be a valid UUID")
	ErrBookNotFoundByISBN = shared.NewInvalidArgumentError("LOAN_BOOK_NOT_FOUND", "Book not found for passed isbn")
)

func NewLoanNotFoundError(id uuid.UUID) error {
	err := *ErrLoanNotFound
	err.Message = fmt.Sprintf("Loan %s not found", id)
	return &err
}
