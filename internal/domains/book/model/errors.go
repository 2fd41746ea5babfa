package model

import (
	"fmt"

	"github.com/google/uuid"

	"library-backend/internal/shared"
)

var (
	ErrISBNAlreadyExists = shared.NewDuplicateKeyError("BOOK_ISBN_EXISTS", "ISBN already registered")
	ErrBookIDRequired    = shared.NewInvalidArgumentError("BOOK_ID_REQUIRED", "Book id is required")
	ErrBookHasLoans      = shared.NewBusinessRuleError("BOOK_HAS_LOANS", "Book has loans and cannot be deleted")
	ErrBookNotFound      = shared.NewNotFoundError("BOOK_NOT_FOUND", "Book not found")
	ErrInvalidBookID     = shared.NewInvalidArgumentError("BOOK_ID_INVALID", "Book id must be a valid UUID")
)

// Import errors reject the whole file before any row is created.
var (
	ErrImportFormat      = shared.NewInvalidArgumentError("IMPORT_FORMAT", "Only .csv and .xlsx files are supported")
	ErrImportEmpty       = shared.NewInvalidArgumentError("IMPORT_EMPTY", "File has no data rows")
	ErrImportHeader      = shared.NewInvalidArgumentError("IMPORT_HEADER", "Header must contain title, author and isbn columns")
	ErrImportTooManyRows = shared.NewInvalidArgumentError("IMPORT_TOO_MANY_ROWS", "File exceeds the maximum number of rows")
	ErrImportUnreadable  = shared.NewInvalidArgumentError("IMPORT_UNREADABLE", "File could not be parsed")
)

// NewBookNotFoundError names the missing id in the message.
func NewBookNotFoundError(id uuid.UUID) error {
	err := *ErrBookNotFound
	err.Message = fmt.Sprintf("Book %s not found", id)
	return &err
}
