package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"library-backend/internal/domains/book/model"
)

type mockBulk struct {
	mock.Mock
}

func (m *mockBulk) Import(ctx context.Context, filename string, r io.Reader) (*model.ImportResult, error) {
	body, _ := io.ReadAll(r)
	args := m.Called(ctx, filename, string(body))
	res, _ := args.Get(0).(*model.ImportResult)
	return res, args.Error(1)
}

func (m *mockBulk) Export(ctx context.Context, filter model.Filter) (*excelize.File, error) {
	args := m.Called(ctx, filter)
	f, _ := args.Get(0).(*excelize.File)
	return f, args.Error(1)
}

func newBulkRouter(h *BulkHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/books/import", h.ImportBooks)
	r.GET("/books/export", h.ExportBooks)
	return r
}

func uploadRequest(t *testing.T, r http.Handler, filename, content string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/books/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestImportBooks(t *testing.T) {
	csv := "title,author,isbn\nVingadores,Jorge,152478\n"
	bulk := new(mockBulk)
	bulk.On("Import", mock.Anything, "books.csv", csv).Return(&model.ImportResult{
		TotalRows: 1,
		Created:   []model.BookResponse{{Title: "Vingadores", Author: "Jorge", ISBN: "152478"}},
	}, nil)

	w, env := uploadRequest(t, newBulkRouter(NewBulkHandler(bulk)), "books.csv", csv)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), "152478")
	bulk.AssertExpectations(t)
}

func TestImportBooks_NothingCreated(t *testing.T) {
	bulk := new(mockBulk)
	bulk.On("Import", mock.Anything, "books.csv", mock.Anything).Return(&model.ImportResult{
		TotalRows: 1,
		Failed:    []model.ImportRowError{{Line: 2, ISBN: "152478", Code: "ISBN_ALREADY_EXISTS"}},
	}, nil)

	w, _ := uploadRequest(t, newBulkRouter(NewBulkHandler(bulk)), "books.csv", "title,author,isbn\nA,B,152478\n")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestImportBooks_UnsupportedFormat(t *testing.T) {
	bulk := new(mockBulk)
	bulk.On("Import", mock.Anything, "books.txt", mock.Anything).Return(nil, model.ErrImportFormat)

	w, env := uploadRequest(t, newBulkRouter(NewBulkHandler(bulk)), "books.txt", "whatever")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "IMPORT_FORMAT", env.Error.Code)
}

func TestImportBooks_MissingFile(t *testing.T) {
	bulk := new(mockBulk)

	req := httptest.NewRequest(http.MethodPost, "/books/import", nil)
	w := httptest.NewRecorder()
	newBulkRouter(NewBulkHandler(bulk)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	bulk.AssertNotCalled(t, "Import", mock.Anything, mock.Anything, mock.Anything)
}

func TestExportBooks(t *testing.T) {
	f := excelize.NewFile()
	bulk := new(mockBulk)
	bulk.On("Export", mock.Anything, model.Filter{Author: "Tolkien"}).Return(f, nil)

	req := httptest.NewRequest(http.MethodGet, "/books/export?author=Tolkien", nil)
	w := httptest.NewRecorder()
	newBulkRouter(NewBulkHandler(bulk)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "books_")
	assert.NotZero(t, w.Body.Len())
	bulk.AssertExpectations(t)
}
