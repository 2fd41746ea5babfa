package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"library-backend/internal/shared"
	"library-backend/internal/shared/query"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Meta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// MetaFromPage copies pagination metadata out of a page.
func MetaFromPage[T any](p query.Page[T]) *Meta {
	return &Meta{
		Page:       p.PageNumber,
		Size:       p.PageSize,
		Total:      p.TotalElements,
		TotalPages: p.TotalPages(),
	}
}

// Success responses
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SuccessWithMeta(c *gin.Context, statusCode int, message string, data interface{}, meta *Meta) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message)
}

func Conflict(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, "CONFLICT", message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}

// ========================================
// DOMAIN ERROR TRANSLATION
// ========================================

var kindStatus = map[shared.ErrorKind]int{
	shared.KindDuplicateKey:    http.StatusConflict,
	shared.KindBusinessRule:    http.StatusUnprocessableEntity,
	shared.KindInvalidArgument: http.StatusBadRequest,
	shared.KindNotFound:        http.StatusNotFound,
}

// StatusFor maps err to the HTTP status the API answers with.
func StatusFor(err error) int {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return http.StatusBadRequest
	}
	if kind, ok := shared.KindOf(err); ok {
		if status, found := kindStatus[kind]; found {
			return status
		}
	}
	return http.StatusInternalServerError
}

// HandleError writes err as an error envelope. Domain errors keep their code
// and message, validation errors list the offending fields, anything else is
// logged and hidden behind a 500.
func HandleError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", verrs)
		return
	}

	var de *shared.DomainError
	if errors.As(err, &de) {
		code := de.Code
		if code == "" {
			code = string(de.Kind)
		}
		ErrorResponse(c, StatusFor(err), code, de.Message)
		return
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.Request.URL.Path).
		Msg("Unhandled error")
	InternalServerError(c, "Internal server error")
}
