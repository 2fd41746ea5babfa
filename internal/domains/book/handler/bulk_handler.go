package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/service"
	"library-backend/internal/shared/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type BulkHandler struct {
	service service.BulkServiceInterface
}

func NewBulkHandler(service service.BulkServiceInterface) *BulkHandler {
	return &BulkHandler{service: service}
}

// ImportBooks - POST /api/v1/books/import (multipart field "file")
func (h *BulkHandler) ImportBooks(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required (multipart/form-data)")
		return
	}
	if file.Size > model.ImportMaxFileSize {
		response.BadRequest(c, "file exceeds maximum size (5MB)")
		return
	}

	log.Info().
		Str("file_name", file.Filename).
		Int64("file_size", file.Size).
		Msg("[BulkHandler] Received import request")

	src, err := file.Open()
	if err != nil {
		response.BadRequest(c, "file could not be opened")
		return
	}
	defer src.Close()

	result, err := h.service.Import(c.Request.Context(), file.Filename, src)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	status := http.StatusCreated
	if result.SuccessCount() == 0 {
		status = http.StatusUnprocessableEntity
	}
	response.Success(c, status, "Import finished", result)
}

// ExportBooks - GET /api/v1/books/export?title=&author=
func (h *BulkHandler) ExportBooks(c *gin.Context) {
	var filter model.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	f, err := h.service.Export(c.Request.Context(), filter)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("books_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := f.Write(c.Writer); err != nil {
		log.Error().Err(err).Msg("[BulkHandler] Failed to write export")
	}
}
