package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	bookModel "library-backend/internal/domains/book/model"
	bookService "library-backend/internal/domains/book/service"
	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/service"
	"library-backend/internal/shared/query"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
	books   bookService.ServiceInterface
}

func NewHandler(service service.ServiceInterface, books bookService.ServiceInterface) *Handler {
	return &Handler{
		service: service,
		books:   books,
	}
}

// CreateLoan - POST /api/v1/loans
func (h *Handler) CreateLoan(c *gin.Context) {
	var req model.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(c, err)
		return
	}

	ctx := c.Request.Context()
	book, found, err := h.books.GetByISBN(ctx, strings.TrimSpace(req.ISBN))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	if !found {
		response.HandleError(c, model.ErrBookNotFoundByISBN)
		return
	}

	loan, err := h.service.Create(ctx, req.ToEntity(book))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	log.Info().
		Str("loan_id", loan.ID.String()).
		Str("book_id", book.ID.String()).
		Str("customer", loan.Customer).
		Msg("[LoanHandler] Loan created")

	response.Success(c, http.StatusCreated, "Loan created successfully", model.CreateLoanResponse{ID: loan.ID})
}

// ReturnLoan - PATCH /api/v1/loans/:id
func (h *Handler) ReturnLoan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.HandleError(c, model.ErrInvalidLoanID)
		return
	}

	var req model.ReturnLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(c, err)
		return
	}

	ctx := c.Request.Context()
	loan, found, err := h.service.GetByID(ctx, id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	if !found {
		response.HandleError(c, model.NewLoanNotFoundError(id))
		return
	}

	loan.Returned = req.Returned
	updated, err := h.service.MarkReturned(ctx, loan)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Loan updated successfully", model.ToResponse(*updated))
}

// ListLoans - GET /api/v1/loans?isbn=&customer=&page=&size=
func (h *Handler) ListLoans(c *gin.Context) {
	var req model.ListLoansRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	page, err := h.service.Find(c.Request.Context(), req.Filter, query.NewPageRequest(req.Number, req.Size))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	result := query.MapPage(page, model.ToResponse)
	response.SuccessWithMeta(c, http.StatusOK, "Get loans successfully", result.Content, response.MetaFromPage(result))
}

// ListBookLoans - GET /api/v1/books/:id/loans?page=&size=
func (h *Handler) ListBookLoans(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.HandleError(c, bookModel.ErrInvalidBookID)
		return
	}

	var req query.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	ctx := c.Request.Context()
	book, found, err := h.books.GetByID(ctx, id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	if !found {
		response.HandleError(c, bookModel.NewBookNotFoundError(id))
		return
	}

	page, err := h.service.GetLoansByBook(ctx, book, query.NewPageRequest(req.Number, req.Size))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	result := query.MapPage(page, model.ToResponse)
	response.SuccessWithMeta(c, http.StatusOK, "Get book loans successfully", result.Content, response.MetaFromPage(result))
}
