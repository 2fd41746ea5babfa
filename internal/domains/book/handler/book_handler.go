package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/service"
	"library-backend/internal/shared/query"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// CreateBook - POST /api/v1/books
func (h *Handler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(c, err)
		return
	}

	book, err := h.service.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	log.Info().
		Str("book_id", book.ID.String()).
		Str("isbn", book.ISBN).
		Msg("[BookHandler] Book created")

	response.Success(c, http.StatusCreated, "Book created successfully", model.ToResponse(*book))
}

// GetBook - GET /api/v1/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	book, ok := h.loadBook(c)
	if !ok {
		return
	}

	response.Success(c, http.StatusOK, "Get book successfully", model.ToResponse(*book))
}

// UpdateBook - PUT /api/v1/books/:id
// Only title and author are applied; the book is fetched first so a missing
// id answers 404.
func (h *Handler) UpdateBook(c *gin.Context) {
	book, ok := h.loadBook(c)
	if !ok {
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(c, err)
		return
	}

	req.ApplyTo(book)
	updated, err := h.service.Update(c.Request.Context(), book)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Book updated successfully", model.ToResponse(*updated))
}

// DeleteBook - DELETE /api/v1/books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	book, ok := h.loadBook(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), book); err != nil {
		response.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListBooks - GET /api/v1/books?title=&author=&page=&size=
func (h *Handler) ListBooks(c *gin.Context) {
	var req model.ListBooksRequest
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
	response.SuccessWithMeta(c, http.StatusOK, "Get books successfully", result.Content, response.MetaFromPage(result))
}

// loadBook resolves :id or writes the 400/404 response itself.
func (h *Handler) loadBook(c *gin.Context) (*model.Book, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.HandleError(c, model.ErrInvalidBookID)
		return nil, false
	}

	book, found, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return nil, false
	}
	if !found {
		response.HandleError(c, model.NewBookNotFoundError(id))
		return nil, false
	}

	return book, true
}
