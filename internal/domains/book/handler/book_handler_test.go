package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/shared/query"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) Create(ctx context.Context, book *model.Book) (*model.Book, error) {
	args := m.Called(ctx, book)
	b, _ := args.Get(0).(*model.Book)
	return b, args.Error(1)
}

func (m *mockCatalog) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, bool, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*model.Book)
	return b, args.Bool(1), args.Error(2)
}

func (m *mockCatalog) GetByISBN(ctx context.Context, isbn string) (*model.Book, bool, error) {
	args := m.Called(ctx, isbn)
	b, _ := args.Get(0).(*model.Book)
	return b, args.Bool(1), args.Error(2)
}

func (m *mockCatalog) Update(ctx context.Context, book *model.Book) (*model.Book, error) {
	args := m.Called(ctx, book)
	b, _ := args.Get(0).(*model.Book)
	return b, args.Error(1)
}

func (m *mockCatalog) Delete(ctx context.Context, book *model.Book) error {
	return m.Called(ctx, book).Error(0)
}

func (m *mockCatalog) Find(ctx context.Context, filter model.Filter, page query.PageRequest) (query.Page[model.Book], error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).(query.Page[model.Book]), args.Error(1)
}

func newRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/books", h.CreateBook)
	r.GET("/books", h.ListBooks)
	r.GET("/books/:id", h.GetBook)
	r.PUT("/books/:id", h.UpdateBook)
	r.DELETE("/books/:id", h.DeleteBook)
	return r
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Page  int   `json:"page"`
		Size  int   `json:"size"`
		Total int64 `json:"total"`
	} `json:"meta"`
}

func doRequest(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestCreateBook(t *testing.T) {
	catalog := new(mockCatalog)
	id := uuid.New()
	catalog.On("Create", mock.Anything, mock.MatchedBy(func(b *model.Book) bool {
		return b.ISBN == "152478" && b.Title == "Vingadores"
	})).Return(&model.Book{ID: id, Title: "Vingadores", Author: "Jorge", ISBN: "152478"}, nil)

	w, env := doRequest(t, newRouter(NewHandler(catalog)), http.MethodPost, "/books",
		model.CreateBookRequest{Title: "Vingadores", Author: "Jorge", ISBN: "152478"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), id.String())
	catalog.AssertExpectations(t)
}

func TestCreateBook_DuplicateISBN(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("Create", mock.Anything, mock.Anything).Return(nil, model.ErrISBNAlreadyExists)

	w, env := doRequest(t, newRouter(NewHandler(catalog)), http.MethodPost, "/books",
		model.CreateBookRequest{Title: "Vingadores", Author: "Jorge", ISBN: "152478"})

	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BOOK_ISBN_EXISTS", env.Error.Code)
}

func TestCreateBook_ValidationFailure(t *testing.T) {
	catalog := new(mockCatalog)

	w, env := doRequest(t, newRouter(NewHandler(catalog)), http.MethodPost, "/books",
		model.CreateBookRequest{Title: "Vingadores"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	catalog.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetBook(t *testing.T) {
	id := uuid.New()
	catalog := new(mockCatalog)
	catalog.On("GetByID", mock.Anything, id).Return(&model.Book{ID: id, ISBN: "1"}, true, nil)
	missing := uuid.New()
	catalog.On("GetByID", mock.Anything, missing).Return(nil, false, nil)

	r := newRouter(NewHandler(catalog))

	w, _ := doRequest(t, r, http.MethodGet, "/books/"+id.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env := doRequest(t, r, http.MethodGet, "/books/"+missing.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "BOOK_NOT_FOUND", env.Error.Code)

	w, _ = doRequest(t, r, http.MethodGet, "/books/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateBook_KeepsISBN(t *testing.T) {
	id := uuid.New()
	catalog := new(mockCatalog)
	catalog.On("GetByID", mock.Anything, id).Return(&model.Book{ID: id, Title: "Old", Author: "Old", ISBN: "1"}, true, nil)
	catalog.On("Update", mock.Anything, mock.MatchedBy(func(b *model.Book) bool {
		return b.ID == id && b.ISBN == "1" && b.Title == "New"
	})).Return(&model.Book{ID: id, Title: "New", Author: "Author", ISBN: "1"}, nil)

	w, _ := doRequest(t, newRouter(NewHandler(catalog)), http.MethodPut, "/books/"+id.String(),
		model.UpdateBookRequest{Title: "New", Author: "Author", ISBN: "2"})

	assert.Equal(t, http.StatusOK, w.Code)
	catalog.AssertExpectations(t)
}

func TestDeleteBook(t *testing.T) {
	id := uuid.New()
	book := &model.Book{ID: id, ISBN: "1"}
	catalog := new(mockCatalog)
	catalog.On("GetByID", mock.Anything, id).Return(book, true, nil)
	catalog.On("Delete", mock.Anything, book).Return(nil)

	w, _ := doRequest(t, newRouter(NewHandler(catalog)), http.MethodDelete, "/books/"+id.String(), nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	catalog.AssertExpectations(t)
}

func TestDeleteBook_WithLoans(t *testing.T) {
	id := uuid.New()
	catalog := new(mockCatalog)
	catalog.On("GetByID", mock.Anything, id).Return(&model.Book{ID: id}, true, nil)
	catalog.On("Delete", mock.Anything, mock.Anything).Return(model.ErrBookHasLoans)

	w, _ := doRequest(t, newRouter(NewHandler(catalog)), http.MethodDelete, "/books/"+id.String(), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListBooks(t *testing.T) {
	catalog := new(mockCatalog)
	page := query.NewPage([]model.Book{{ID: uuid.New(), Title: "O Hobbit", ISBN: "2"}}, query.PageRequest{Number: 1, Size: 1}, 2)
	catalog.On("Find", mock.Anything, model.Filter{Author: "tolkien"}, query.PageRequest{Number: 1, Size: 1}).Return(page, nil)

	w, env := doRequest(t, newRouter(NewHandler(catalog)), http.MethodGet, "/books?author=tolkien&page=1&size=1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(2), env.Meta.Total)
	assert.Equal(t, 1, env.Meta.Page)
	assert.Contains(t, string(env.Data), "O Hobbit")
}

func TestListBooks_DefaultPage(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("Find", mock.Anything, model.Filter{}, query.PageRequest{Number: 0, Size: query.DefaultPageSize}).
		Return(query.NewPage[model.Book](nil, query.PageRequest{Number: 0, Size: query.DefaultPageSize}, 0), nil)

	w, env := doRequest(t, newRouter(NewHandler(catalog)), http.MethodGet, "/books", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", string(env.Data))
}
